package handlers

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/middleware"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EspHandler — документы ESP.
type EspHandler struct {
	EspService *service.EspService
	Logger     *zap.SugaredLogger
	Config     *config.Config
}

func NewEspHandler(espService *service.EspService, logger *zap.SugaredLogger, cfg *config.Config) *EspHandler {
	return &EspHandler{EspService: espService, Logger: logger, Config: cfg}
}

// espRequest — тело POST и PATCH; отсутствующие поля не меняются.
type espRequest struct {
	Codigo         *string     `json:"codigo" validate:"omitempty,min=3"`
	Titulo         *string     `json:"titulo" validate:"omitempty,min=3"`
	Tipologia      *string     `json:"tipologia" validate:"omitempty,min=1"`
	Revisao        *string     `json:"revisao"`
	DataPublicacao *flexTime   `json:"dataPublicacao"`
	Selo           *model.Selo `json:"selo" validate:"omitempty,oneof=NENHUM AMBIENTAL"`
	CadernoID      *string     `json:"cadernoId" validate:"omitempty,min=1"`
	CadernosIDs    *[]string   `json:"cadernosIds"`
	Visivel        *bool       `json:"visivel"`

	DescricaoAplicacao   *string `json:"descricaoAplicacao"`
	Execucao             *string `json:"execucao"`
	FichasReferencia     *string `json:"fichasReferencia"`
	Recebimento          *string `json:"recebimento"`
	ServicosIncluidos    *string `json:"servicosIncluidos"`
	CriteriosMedicao     *string `json:"criteriosMedicao"`
	Legislacao           *string `json:"legislacao"`
	Referencias          *string `json:"referencias"`
	IntroduzirComponente *string `json:"introduzirComponente"`

	ConstituentesIDs         *[]string `json:"constituentesIds"`
	AcessoriosIDs            *[]string `json:"acessoriosIds"`
	AcabamentosIDs           *[]string `json:"acabamentosIds"`
	PrototiposIDs            *[]string `json:"prototiposIds"`
	AplicacoesIDs            *[]string `json:"aplicacoesIds"`
	ConstituintesExecucaoIDs *[]string `json:"constituintesExecucaoIds"`
	FichasReferenciaIDs      *[]string `json:"fichasReferenciaIds"`
	FichasRecebimentoIDs     *[]string `json:"fichasRecebimentoIds"`
	ServicosIncluidosIDs     *[]string `json:"servicosIncluidosIds"`
}

func (req espRequest) fields() service.EspFields {
	var published *time.Time
	if req.DataPublicacao != nil {
		t := req.DataPublicacao.Time
		published = &t
	}
	return service.EspFields{
		Codigo:         req.Codigo,
		Titulo:         req.Titulo,
		Tipologia:      req.Tipologia,
		Revisao:        req.Revisao,
		DataPublicacao: published,
		Selo:           req.Selo,
		CadernoID:      req.CadernoID,
		CadernosIDs:    req.CadernosIDs,
		Visivel:        req.Visivel,

		DescricaoAplicacao:   req.DescricaoAplicacao,
		Execucao:             req.Execucao,
		FichasReferencia:     req.FichasReferencia,
		Recebimento:          req.Recebimento,
		ServicosIncluidos:    req.ServicosIncluidos,
		CriteriosMedicao:     req.CriteriosMedicao,
		Legislacao:           req.Legislacao,
		Referencias:          req.Referencias,
		IntroduzirComponente: req.IntroduzirComponente,

		ConstituentesIDs:         req.ConstituentesIDs,
		AcessoriosIDs:            req.AcessoriosIDs,
		AcabamentosIDs:           req.AcabamentosIDs,
		PrototiposIDs:            req.PrototiposIDs,
		AplicacoesIDs:            req.AplicacoesIDs,
		ConstituintesExecucaoIDs: req.ConstituintesExecucaoIDs,
		FichasReferenciaIDs:      req.FichasReferenciaIDs,
		FichasRecebimentoIDs:     req.FichasRecebimentoIDs,
		ServicosIncluidosIDs:     req.ServicosIncluidosIDs,
	}
}

type quickCreateRequest struct {
	CadernosIDs []string `json:"cadernosIds" validate:"dive,required"`
}

// List ?search=&author=&status=&date=&cadernoId=&visivel=
func (h *EspHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := service.EspListFilter{
		CadernoID: q.Get("cadernoId"),
		Search:    q.Get("search"),
		Author:    q.Get("author"),
		Status:    model.StatusCaderno(q.Get("status")),
		Date:      q.Get("date"),
	}
	if v := q.Get("visivel"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "visivel must be true or false")
			return
		}
		f.Visivel = &b
	}
	if f.Status != "" && !f.Status.Valid() {
		middleware.WriteError(w, http.StatusBadRequest, "invalid status")
		return
	}

	esps, err := h.EspService.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "ListEsps", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"esps": esps})
}

func (h *EspHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.EspService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "GetEsp", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"esp": e})
}

func (h *EspHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req espRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("CreateEsp: invalid request", "error", err)
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := h.EspService.Create(r.Context(), identity(r).ID, req.fields())
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "CreateEsp", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"esp": e})
}

// QuickCreate — POST /esp/nova {cadernosIds}
func (h *EspHandler) QuickCreate(w http.ResponseWriter, r *http.Request) {
	var req quickCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := h.EspService.QuickCreate(r.Context(), identity(r).ID, req.CadernosIDs)
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "QuickCreateEsp", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"esp": e})
}

func (h *EspHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req espRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := h.EspService.Update(r.Context(), identity(r).ID, chi.URLParam(r, "id"), req.fields())
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "UpdateEsp", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"esp": e})
}

func (h *EspHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.EspService.Delete(r.Context(), identity(r).ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "DeleteEsp", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ESP deletada com sucesso"})
}
