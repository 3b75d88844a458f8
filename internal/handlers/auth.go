package handlers

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/middleware"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// AuthHandler — регистрация, вход, выход и текущий пользователь.
type AuthHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewAuthHandler создаёт хендлер auth
func NewAuthHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{UserService: userService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Nome   string       `json:"nome" validate:"required,min=3"`
	Email  string       `json:"email" validate:"required,email"`
	Senha  string       `json:"senha" validate:"required,min=6"`
	Perfil model.Perfil `json:"perfil" validate:"required,oneof=ARQUITETO CHEFE_DE_NUCLEO GERENTE DIRETOR"`
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// Register регистрация пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("Register: invalid request", "error", err)
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.UserService.Register(r.Context(), service.RegisterInput{
		Nome:   req.Nome,
		Email:  req.Email,
		Senha:  req.Senha,
		Perfil: req.Perfil,
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "Register", err)
		return
	}

	h.Logger.Infow("User registered", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Usuário criado com sucesso",
		"user":    user,
	})
}

// Login авторизация пользователя: cookie + токен в теле для bearer-клиентов
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("Login: invalid request", "error", err)
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Email, req.Senha)
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "Login", err)
		return
	}

	token, err := middleware.SetLoginCookie(w, middleware.Identity{
		ID:     user.ID,
		Email:  user.Email,
		Perfil: user.Perfil,
	}, h.Config.AuthSecret, h.Config.EnableHTTPS)
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "Login", err)
		return
	}

	h.Logger.Infow("User logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login realizado com sucesso",
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w, h.Config.EnableHTTPS)
	h.Logger.Infow("User logged out", "user_id", identity(r).ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout realizado com sucesso"})
}

// Me перечитывает пользователя из БД: неактивный пользователь получает 401
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.Me(r.Context(), identity(r).ID)
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "Me", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
