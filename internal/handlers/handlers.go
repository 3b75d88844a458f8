package handlers

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/middleware"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/rbac"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — зависимости хендлеров.
type Services struct {
	Users    *service.UserService
	Cadernos *service.CadernoService
	Esps     *service.EspService
	Arquivos *service.ArquivoService
	Items    *service.ItemService
	Audit    *service.AuditService
	Seeder   *service.Seeder
}

// NewHandler разводящий для хендлеров
func NewHandler(
	svc Services,
	policy *rbac.Policy,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover)
	r.Use(chimw.RequestID)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithGzip)
	r.Use(middleware.CORS(config.Origins()))
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	authHandler := NewAuthHandler(svc.Users, logger, config)
	userHandler := NewUserHandler(svc.Users, logger, config)
	cadernoHandler := NewCadernoHandler(svc.Cadernos, logger, config)
	espHandler := NewEspHandler(svc.Esps, logger, config)
	fileHandler := NewFileHandler(svc.Arquivos, logger, config)
	itemHandler := NewItemHandler(svc.Items, logger, config)
	logHandler := NewLogHandler(svc.Audit, logger, config)
	adminHandler := NewAdminHandler(svc.Seeder, policy, logger, config)

	perm := func(a rbac.Action) func(http.Handler) http.Handler {
		return middleware.RequirePermission(policy, a)
	}
	limiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", adminHandler.Health)
		r.Get("/docs", adminHandler.Docs)

		// Auth routes
		r.With(middleware.IPRateLimit(limiter)).Post("/auth/register", authHandler.Register)
		r.With(middleware.IPRateLimit(limiter)).Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			// Users
			r.With(perm(rbac.UsersManage)).Get("/users", userHandler.List)
			r.With(perm(rbac.UsersManage)).Post("/users/{id}/desativar", userHandler.Deactivate)

			// Cadernos
			r.Get("/cadernos", cadernoHandler.List)
			r.Get("/cadernos/{id}", cadernoHandler.Get)
			r.With(perm(rbac.CadernoCreate)).Post("/cadernos", cadernoHandler.Create)
			r.With(perm(rbac.CadernoEdit)).Patch("/cadernos/{id}", cadernoHandler.Update)
			r.With(perm(rbac.CadernoDelete)).Delete("/cadernos/{id}", cadernoHandler.Delete)

			// ESP
			r.Get("/esp", espHandler.List)
			r.Get("/esp/{id}", espHandler.Get)
			r.With(perm(rbac.EspCreate)).Post("/esp", espHandler.Create)
			r.With(perm(rbac.EspCreate)).Post("/esp/nova", espHandler.QuickCreate)
			r.With(perm(rbac.EspEdit)).Patch("/esp/{id}", espHandler.Update)
			r.With(perm(rbac.EspDelete)).Delete("/esp/{id}", espHandler.Delete)

			// Files
			r.With(perm(rbac.ArquivoUpload)).Post("/files/upload", fileHandler.Upload)
			r.Get("/files/{espId}/files", fileHandler.ListByEsp)
			r.Get("/files/{id}/download", fileHandler.Download)
			r.With(perm(rbac.ArquivoDelete)).Delete("/files/{id}", fileHandler.Delete)

			// Catalog items
			r.Get("/itens-especificacao", itemHandler.List)
			r.Post("/itens-especificacao", itemHandler.Create)
			r.Get("/itens-especificacao/{id}", itemHandler.Get)
			r.Patch("/itens-especificacao/{id}", itemHandler.Update)
			r.Delete("/itens-especificacao/{id}", itemHandler.Delete)
			r.Get("/catalog/{kind}", itemHandler.Catalog)

			// Audit log, admin
			r.With(perm(rbac.LogsView)).Get("/logs", logHandler.List)
			r.With(perm(rbac.SeedRun)).Post("/admin/seed", adminHandler.Seed)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return &Handler{Router: r}
}
