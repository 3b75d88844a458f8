package handlers

import (
	"encoding/json"
	"errors"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/middleware"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor сопоставляет ошибку сервиса HTTP-статусу; 0 — внутренняя ошибка.
func statusFor(err error) int {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrCodigoTaken),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrInUse),
		errors.Is(err, repo.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return 0
}

// writeServiceError пишет {"error"} по типу ошибки. Текст внутренних ошибок
// уходит клиенту только в development.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, cfg *config.Config, op string, err error) {
	if status := statusFor(err); status != 0 {
		msg := err.Error()
		if errors.Is(err, repo.ErrConflict) && !errors.Is(err, service.ErrEmailTaken) && !errors.Is(err, service.ErrCodigoTaken) {
			msg = "resource already exists"
		}
		logger.Infow(op+": rejected", "status", status, "error", err, "request_id", chimw.GetReqID(r.Context()))
		middleware.WriteError(w, status, msg)
		return
	}

	logger.Errorw(op+": internal error", "error", err, "request_id", chimw.GetReqID(r.Context()))
	msg := "internal error"
	if cfg != nil && cfg.IsDevelopment() {
		msg = err.Error()
	}
	middleware.WriteError(w, http.StatusInternalServerError, msg)
}

// identity достаёт пользователя; маршрут уже закрыт RequireAuth.
func identity(r *http.Request) middleware.Identity {
	id, _ := middleware.GetIdentity(r.Context())
	return id
}
