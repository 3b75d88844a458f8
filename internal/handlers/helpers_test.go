package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/handlers"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/middleware"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/rbac"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testPassword = "segredo123"

// stack — полный роутер поверх in-memory SQLite.
type stack struct {
	router http.Handler
	cfg    *config.Config
	db     *gorm.DB
	svc    handlers.Services
}

func testConfig() *config.Config {
	return &config.Config{
		AuthSecret:     "test-secret",
		AppEnv:         "production",
		FileMaxSizeMB:  1,
		EmailPattern:   `@.*\.gov\.br$`,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
}

func newStack(t *testing.T, mutate ...func(*config.Config)) *stack {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	db, err := repo.InitDB("file:"+uuid.NewString()+"?mode=memory&cache=shared", zap.NewNop().Sugar())
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	logger := zap.NewNop().Sugar()
	users := repo.NewUserRepository(db)
	cadernos := repo.NewCadernoRepository(db)
	esps := repo.NewEspRepository(db)
	audit := service.NewAuditService(repo.NewLogRepository(db), logger)

	svc := handlers.Services{
		Users:    service.NewUserService(users, audit, cfg.EmailPattern),
		Cadernos: service.NewCadernoService(cadernos, audit, logger, cfg.StrictStatusFlow),
		Esps:     service.NewEspService(esps, cadernos, audit, logger),
		Arquivos: service.NewArquivoService(repo.NewArquivoRepository(db), esps, audit, logger, int64(cfg.FileMaxSizeMB)<<20),
		Items:    service.NewItemService(repo.NewItemRepository(db), audit),
		Audit:    audit,
		Seeder:   service.NewSeeder(users, cadernos, esps, audit, logger),
	}
	h := handlers.NewHandler(svc, rbac.DefaultPolicy(), logger, cfg)
	return &stack{router: h.Router, cfg: cfg, db: db, svc: svc}
}

// user регистрирует пользователя и возвращает его вместе с bearer-токеном.
func (s *stack) user(t *testing.T, perfil model.Perfil) (*model.User, string) {
	t.Helper()
	u, err := s.svc.Users.Register(context.Background(), service.RegisterInput{
		Nome:   "Usuário " + string(perfil),
		Email:  uuid.NewString()[:8] + "@seedf.df.gov.br",
		Senha:  testPassword,
		Perfil: perfil,
	})
	require.NoError(t, err)
	return u, bearer(t, s.cfg, u)
}

func bearer(t *testing.T, cfg *config.Config, u *model.User) string {
	t.Helper()
	tok, err := middleware.BuildJWT(middleware.Identity{ID: u.ID, Email: u.Email, Perfil: u.Perfil}, cfg.AuthSecret)
	require.NoError(t, err)
	return tok
}

func (s *stack) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, s.router, method, path, body, token)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m), rr.Body.String())
	return m
}

func errorOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decode(t, rr)["error"].(string)
	return msg
}

// createCaderno через API, возвращает id.
func (s *stack) createCaderno(t *testing.T, token, titulo string) string {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/api/cadernos", map[string]any{"titulo": titulo}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode(t, rr)["caderno"].(map[string]any)["id"].(string)
}

func (s *stack) createEsp(t *testing.T, token, codigo, cadernoID string) string {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/api/esp", espBody(codigo, cadernoID), token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode(t, rr)["esp"].(map[string]any)["id"].(string)
}

func espBody(codigo, cadernoID string) map[string]any {
	return map[string]any{
		"codigo":         codigo,
		"titulo":         "Pintura de paredes internas",
		"tipologia":      "Acabamento",
		"revisao":        "1.0",
		"dataPublicacao": "2025-01-15",
		"cadernoId":      cadernoID,
	}
}

func (s *stack) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Table(table).Count(&n).Error)
	return n
}
