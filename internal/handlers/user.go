package handlers

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler — управление учётными записями (только DIRETOR).
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "ListUsers", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Deactivate отзывает доступ; уже выданные токены действуют до истечения срока.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.Deactivate(r.Context(), identity(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "DeactivateUser", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
