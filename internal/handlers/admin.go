package handlers

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/rbac"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const serviceName = "SEEDF ESP System"

// AdminHandler — служебные маршруты.
type AdminHandler struct {
	Seeder *service.Seeder
	Policy *rbac.Policy
	Logger *zap.SugaredLogger
	Config *config.Config
}

func NewAdminHandler(seeder *service.Seeder, policy *rbac.Policy, logger *zap.SugaredLogger, cfg *config.Config) *AdminHandler {
	return &AdminHandler{Seeder: seeder, Policy: policy, Logger: logger, Config: cfg}
}

func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   serviceName,
	})
}

// Seed — повторный запуск ничего не дублирует
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.Seeder.Seed(r.Context(), identity(r).ID)
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "Seed", err)
		return
	}
	h.Logger.Infow("Seed executed", "user_id", identity(r).ID, "users", res.UsersCreated, "cadernos", res.CadernosCreated, "esps", res.EspsCreated)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Banco de dados populado com sucesso",
		"result":  res,
	})
}
