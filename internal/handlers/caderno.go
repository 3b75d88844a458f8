package handlers

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/middleware"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CadernoHandler — CRUD cadernos.
type CadernoHandler struct {
	CadernoService *service.CadernoService
	Logger         *zap.SugaredLogger
	Config         *config.Config
}

func NewCadernoHandler(cadernoService *service.CadernoService, logger *zap.SugaredLogger, cfg *config.Config) *CadernoHandler {
	return &CadernoHandler{CadernoService: cadernoService, Logger: logger, Config: cfg}
}

type cadernoRequest struct {
	Titulo    *string              `json:"titulo" validate:"omitempty,min=3"`
	Descricao *string              `json:"descricao"`
	Status    *model.StatusCaderno `json:"status" validate:"omitempty,oneof=EM_ANDAMENTO APROVADO OBSOLETO"`
}

// List ?status=&autorId=
func (h *CadernoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cadernos, err := h.CadernoService.List(r.Context(), repo.CadernoFilter{
		Status:  model.StatusCaderno(q.Get("status")),
		AutorID: q.Get("autorId"),
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "ListCadernos", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cadernos": cadernos})
}

func (h *CadernoHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.CadernoService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "GetCaderno", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"caderno": c})
}

func (h *CadernoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cadernoRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Titulo == nil {
		middleware.WriteError(w, http.StatusBadRequest, "titulo is required")
		return
	}

	c, err := h.CadernoService.Create(r.Context(), identity(r).ID, service.CadernoInput{
		Titulo:    *req.Titulo,
		Descricao: req.Descricao,
		Status:    req.Status,
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "CreateCaderno", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"caderno": c})
}

func (h *CadernoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req cadernoRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.CadernoService.Update(r.Context(), identity(r).ID, chi.URLParam(r, "id"), service.CadernoPatch{
		Titulo:    req.Titulo,
		Descricao: req.Descricao,
		Status:    req.Status,
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "UpdateCaderno", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"caderno": c})
}

func (h *CadernoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.CadernoService.Delete(r.Context(), identity(r).ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "DeleteCaderno", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Caderno deletado com sucesso"})
}
