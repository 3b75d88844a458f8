package handlers

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/middleware"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler — справочник элементов спецификации и списки выбора.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger, cfg *config.Config) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger, Config: cfg}
}

type itemRequest struct {
	Titulo       *string                 `json:"titulo" validate:"omitempty,min=1"`
	Categoria    *model.CategoriaItem    `json:"categoria"`
	Subcategoria *model.SubcategoriaItem `json:"subcategoria"`
	Descricao    *string                 `json:"descricao"`
	Ativo        *bool                   `json:"ativo"`
}

func (req itemRequest) input() service.ItemInput {
	return service.ItemInput{
		Titulo:       req.Titulo,
		Categoria:    req.Categoria,
		Subcategoria: req.Subcategoria,
		Descricao:    req.Descricao,
		Ativo:        req.Ativo,
	}
}

// List ?categoria=&subcategoria=&ativo=
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := service.ItemListFilter{
		Categoria:    model.CategoriaItem(q.Get("categoria")),
		Subcategoria: model.SubcategoriaItem(q.Get("subcategoria")),
	}
	if v := q.Get("ativo"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "ativo must be true or false")
			return
		}
		f.Ativo = &b
	}

	itens, err := h.ItemService.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "ListItens", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"itens": itens})
}

// Get возвращает элемент и в неактивном состоянии
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.ItemService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "GetItem", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": it})
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	it, err := h.ItemService.Create(r.Context(), identity(r).ID, req.input())
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "CreateItem", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"item": it})
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	it, err := h.ItemService.Update(r.Context(), identity(r).ID, chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "UpdateItem", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": it})
}

// Delete — мягкое удаление
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ItemService.Delete(r.Context(), identity(r).ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "DeleteItem", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Catalog — GET /catalog/{kind}, ключ ответа в camelCase: fichas-recebimento → fichasRecebimento
func (h *ItemHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	entries, err := h.ItemService.Catalog(r.Context(), kind)
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "Catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{catalogKey(kind): entries})
}

func catalogKey(kind string) string {
	parts := strings.Split(kind, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
