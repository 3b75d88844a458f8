package handlers

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// LogHandler — журнал действий.
type LogHandler struct {
	AuditService *service.AuditService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

func NewLogHandler(auditService *service.AuditService, logger *zap.SugaredLogger, cfg *config.Config) *LogHandler {
	return &LogHandler{AuditService: auditService, Logger: logger, Config: cfg}
}

// List ?userId= — от новых к старым
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.AuditService.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "ListLogs", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}
