package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// EspService — документы ESP.
type EspService struct {
	repo     repo.EspRepository
	cadernos repo.CadernoRepository
	audit    *AuditService
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewEspService(r repo.EspRepository, cadernos repo.CadernoRepository, audit *AuditService, logger *zap.SugaredLogger) *EspService {
	return &EspService{repo: r, cadernos: cadernos, audit: audit, logger: logger, now: time.Now}
}

// EspListFilter — CadernoID и Visivel уходят в запрос, остальное фильтруется в памяти.
type EspListFilter struct {
	CadernoID string
	Visivel   *bool
	Search    string
	Author    string
	Status    model.StatusCaderno
	Date      string // YYYY-MM-DD, UTC
}

// EspFields — поля ESP; nil не меняет значение при обновлении.
type EspFields struct {
	Codigo         *string
	Titulo         *string
	Tipologia      *string
	Revisao        *string
	DataPublicacao *time.Time
	Selo           *model.Selo
	CadernoID      *string
	CadernosIDs    *[]string
	Visivel        *bool

	DescricaoAplicacao   *string
	Execucao             *string
	FichasReferencia     *string
	Recebimento          *string
	ServicosIncluidos    *string
	CriteriosMedicao     *string
	Legislacao           *string
	Referencias          *string
	IntroduzirComponente *string

	ConstituentesIDs         *[]string
	AcessoriosIDs            *[]string
	AcabamentosIDs           *[]string
	PrototiposIDs            *[]string
	AplicacoesIDs            *[]string
	ConstituintesExecucaoIDs *[]string
	FichasReferenciaIDs      *[]string
	FichasRecebimentoIDs     *[]string
	ServicosIncluidosIDs     *[]string
}

// List выбирает ESP с автором, caderno и вложениями и применяет фильтры (AND).
func (s *EspService) List(ctx context.Context, f EspListFilter) ([]model.Esp, error) {
	var day time.Time
	if f.Date != "" {
		d, err := time.Parse(dateLayout, f.Date)
		if err != nil {
			return nil, invalid("date must be YYYY-MM-DD")
		}
		day = d
	}

	esps, err := s.repo.List(ctx, repo.EspFilter{CadernoID: f.CadernoID, Visivel: f.Visivel})
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	author := strings.ToLower(strings.TrimSpace(f.Author))

	out := make([]model.Esp, 0, len(esps))
	for _, e := range esps {
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		if !day.IsZero() && !sameUTCDay(e.DataPublicacao, day) {
			continue
		}
		if author != "" && (e.Autor == nil || !strings.Contains(strings.ToLower(e.Autor.Nome), author)) {
			continue
		}
		if f.Status != "" && (e.Caderno == nil || e.Caderno.Status != f.Status) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func matchesSearch(e model.Esp, q string) bool {
	if strings.Contains(strings.ToLower(e.Codigo), q) ||
		strings.Contains(strings.ToLower(e.Titulo), q) ||
		strings.Contains(strings.ToLower(e.Tipologia), q) {
		return true
	}
	return e.Autor != nil && strings.Contains(strings.ToLower(e.Autor.Nome), q)
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (s *EspService) Get(ctx context.Context, id string) (*model.Esp, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "esp")
	}
	return e, nil
}

// Create проверяет caderno до вставки; selo=NENHUM и visivel=true по умолчанию.
func (s *EspService) Create(ctx context.Context, actorID string, f EspFields) (*model.Esp, error) {
	switch {
	case f.Codigo == nil || strings.TrimSpace(*f.Codigo) == "":
		return nil, invalid("codigo is required")
	case f.Titulo == nil || strings.TrimSpace(*f.Titulo) == "":
		return nil, invalid("titulo is required")
	case f.Tipologia == nil || strings.TrimSpace(*f.Tipologia) == "":
		return nil, invalid("tipologia is required")
	case f.Revisao == nil:
		return nil, invalid("revisao is required")
	case f.DataPublicacao == nil:
		return nil, invalid("dataPublicacao is required")
	case f.CadernoID == nil || *f.CadernoID == "":
		return nil, invalid("cadernoId is required")
	}

	if _, err := s.cadernos.GetByID(ctx, *f.CadernoID); err != nil {
		return nil, notFound(err, "caderno")
	}
	if f.CadernosIDs != nil {
		if err := s.checkCadernos(ctx, *f.CadernosIDs); err != nil {
			return nil, err
		}
	}

	e := &model.Esp{
		AutorID: actorID,
		Selo:    model.SeloNenhum,
		Visivel: true,
	}
	if err := applyEspFields(e, f); err != nil {
		return nil, err
	}
	normalizeLists(e)

	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrCodigoTaken
		}
		return nil, err
	}
	s.audit.Record(ctx, actorID, model.AcaoCriarEsp, e.ID, fmt.Sprintf("ESP %q criada", e.Codigo))
	s.logger.Infow("ESP created", "esp_id", e.ID, "user_id", actorID)
	return s.Get(ctx, e.ID)
}

// QuickCreate создаёт ESP по списку cadernos: первый становится основным.
// Все id проверяются до вставки.
func (s *EspService) QuickCreate(ctx context.Context, actorID string, cadernosIDs []string) (*model.Esp, error) {
	if len(cadernosIDs) == 0 {
		return nil, invalid("select at least one caderno")
	}

	byID, err := s.resolveCadernos(ctx, cadernosIDs)
	if err != nil {
		return nil, err
	}
	first := byID[cadernosIDs[0]]

	now := s.now()
	e := &model.Esp{
		Codigo:         quickCodigo(now),
		Titulo:         "ESP - " + first.Titulo,
		Tipologia:      "Multi-Caderno",
		Revisao:        "1.0",
		DataPublicacao: now.UTC(),
		AutorID:        actorID,
		Selo:           model.SeloNenhum,
		CadernoID:      first.ID,
		CadernosIDs:    append(model.IDList{}, cadernosIDs...),
		Visivel:        true,
	}
	normalizeLists(e)

	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrCodigoTaken
		}
		return nil, err
	}
	s.audit.Record(ctx, actorID, model.AcaoCriarEspMultiCaderno, e.ID,
		fmt.Sprintf("ESP %q criada com %d cadernos", e.Codigo, len(cadernosIDs)))
	s.logger.Infow("multi-caderno ESP created", "esp_id", e.ID, "user_id", actorID, "cadernos", len(cadernosIDs))
	return s.Get(ctx, e.ID)
}

// resolveCadernos загружает cadernos по id; отсутствие любого из них — 404.
func (s *EspService) resolveCadernos(ctx context.Context, ids []string) (map[string]model.Caderno, error) {
	found, err := s.cadernos.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Caderno, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, &NotFoundError{Entity: "one or more cadernos"}
		}
	}
	return byID, nil
}

func (s *EspService) checkCadernos(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.resolveCadernos(ctx, ids)
	return err
}

// quickCodigo — "ESP-" и последние 6 цифр unix-времени в миллисекундах.
func quickCodigo(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "ESP-" + ms
}

// Update применяет частичные изменения; смена cadernoId перепроверяет caderno.
func (s *EspService) Update(ctx context.Context, actorID, id string, f EspFields) (*model.Esp, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "esp")
	}

	if f.CadernoID != nil && *f.CadernoID != e.CadernoID {
		if _, err := s.cadernos.GetByID(ctx, *f.CadernoID); err != nil {
			return nil, notFound(err, "caderno")
		}
	}
	if f.CadernosIDs != nil {
		if err := s.checkCadernos(ctx, *f.CadernosIDs); err != nil {
			return nil, err
		}
	}
	if err := applyEspFields(e, f); err != nil {
		return nil, err
	}
	normalizeLists(e)

	// связи не сохраняем вместе с ESP
	e.Autor, e.Caderno, e.Arquivos = nil, nil, nil
	if err := s.repo.Save(ctx, e); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrCodigoTaken
		}
		return nil, err
	}
	s.audit.Record(ctx, actorID, model.AcaoAtualizarEsp, e.ID, fmt.Sprintf("ESP %q atualizada", e.Codigo))
	return s.Get(ctx, e.ID)
}

// Delete удаляет ESP вместе с вложениями.
func (s *EspService) Delete(ctx context.Context, actorID, id string) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "esp")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "esp")
	}
	s.audit.Record(ctx, actorID, model.AcaoDeletarEsp, id, fmt.Sprintf("ESP %q deletada", e.Codigo))
	s.logger.Infow("ESP deleted", "esp_id", id, "user_id", actorID)
	return nil
}

func applyEspFields(e *model.Esp, f EspFields) error {
	// значения хранятся как прислал клиент; пустыми считаются и строки из одних пробелов
	if f.Codigo != nil {
		if strings.TrimSpace(*f.Codigo) == "" {
			return invalid("codigo must not be empty")
		}
		e.Codigo = *f.Codigo
	}
	if f.Titulo != nil {
		if strings.TrimSpace(*f.Titulo) == "" {
			return invalid("titulo must not be empty")
		}
		e.Titulo = *f.Titulo
	}
	if f.Tipologia != nil {
		if strings.TrimSpace(*f.Tipologia) == "" {
			return invalid("tipologia must not be empty")
		}
		e.Tipologia = *f.Tipologia
	}
	if f.Revisao != nil {
		e.Revisao = *f.Revisao
	}
	if f.DataPublicacao != nil {
		e.DataPublicacao = f.DataPublicacao.UTC()
	}
	if f.Selo != nil {
		if !f.Selo.Valid() {
			return invalid("invalid selo")
		}
		e.Selo = *f.Selo
	}
	if f.CadernoID != nil {
		prev := e.CadernoID
		e.CadernoID = *f.CadernoID
		if f.CadernosIDs == nil {
			e.CadernosIDs = withPrimary(replaceID(e.CadernosIDs, prev, e.CadernoID), e.CadernoID)
		}
	}
	if f.CadernosIDs != nil {
		e.CadernosIDs = withPrimary(*f.CadernosIDs, e.CadernoID)
	}
	if f.Visivel != nil {
		e.Visivel = *f.Visivel
	}

	setText(&e.DescricaoAplicacao, f.DescricaoAplicacao)
	setText(&e.Execucao, f.Execucao)
	setText(&e.FichasReferencia, f.FichasReferencia)
	setText(&e.Recebimento, f.Recebimento)
	setText(&e.ServicosIncluidos, f.ServicosIncluidos)
	setText(&e.CriteriosMedicao, f.CriteriosMedicao)
	setText(&e.Legislacao, f.Legislacao)
	setText(&e.Referencias, f.Referencias)
	setText(&e.IntroduzirComponente, f.IntroduzirComponente)

	setList(&e.ConstituentesIDs, f.ConstituentesIDs)
	setList(&e.AcessoriosIDs, f.AcessoriosIDs)
	setList(&e.AcabamentosIDs, f.AcabamentosIDs)
	setList(&e.PrototiposIDs, f.PrototiposIDs)
	setList(&e.AplicacoesIDs, f.AplicacoesIDs)
	setList(&e.ConstituintesExecucaoIDs, f.ConstituintesExecucaoIDs)
	setList(&e.FichasReferenciaIDs, f.FichasReferenciaIDs)
	setList(&e.FichasRecebimentoIDs, f.FichasRecebimentoIDs)
	setList(&e.ServicosIncluidosIDs, f.ServicosIncluidosIDs)
	return nil
}

func setText(dst **string, v *string) {
	if v != nil {
		s := *v
		*dst = &s
	}
}

func setList(dst *model.IDList, v *[]string) {
	if v != nil {
		*dst = append(model.IDList{}, (*v)...)
	}
}

// withPrimary — список без повторов, основной caderno первым, если его не было.
func withPrimary(ids []string, primary string) model.IDList {
	out := make(model.IDList, 0, len(ids)+1)
	if primary != "" && !containsID(ids, primary) {
		out = append(out, primary)
	}
	for _, id := range ids {
		if !containsID(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// replaceID заменяет старый основной caderno новым на том же месте.
func replaceID(ids model.IDList, from, to string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if id == from {
			id = to
		}
		out[i] = id
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// normalizeLists — пустые списки хранятся как [], не null.
func normalizeLists(e *model.Esp) {
	for _, l := range []*model.IDList{
		&e.CadernosIDs,
		&e.ConstituentesIDs, &e.AcessoriosIDs, &e.AcabamentosIDs, &e.PrototiposIDs,
		&e.AplicacoesIDs, &e.ConstituintesExecucaoIDs, &e.FichasReferenciaIDs,
		&e.FichasRecebimentoIDs, &e.ServicosIncluidosIDs,
	} {
		if *l == nil {
			*l = model.IDList{}
		}
	}
}
