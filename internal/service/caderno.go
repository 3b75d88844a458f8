package service

import (
	"context"
	"fmt"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"strings"

	"go.uber.org/zap"
)

// StatusTransitions — допустимые переходы статуса caderno.
// Переход в тот же статус разрешён всегда.
var StatusTransitions = map[model.StatusCaderno][]model.StatusCaderno{
	model.StatusEmAndamento: {model.StatusAprovado},
	model.StatusAprovado:    {model.StatusObsoleto},
	model.StatusObsoleto:    {},
}

// CanTransition сообщает, есть ли переход from → to в таблице.
func CanTransition(from, to model.StatusCaderno) bool {
	if from == to {
		return true
	}
	for _, next := range StatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CadernoService — управление cadernos.
type CadernoService struct {
	repo   repo.CadernoRepository
	audit  *AuditService
	logger *zap.SugaredLogger
	// strict включает проверку StatusTransitions при обновлении
	strict bool
}

func NewCadernoService(r repo.CadernoRepository, audit *AuditService, logger *zap.SugaredLogger, strictStatus bool) *CadernoService {
	return &CadernoService{repo: r, audit: audit, logger: logger, strict: strictStatus}
}

// CadernoInput — поля создания; nil означает значение по умолчанию.
type CadernoInput struct {
	Titulo    string
	Descricao *string
	Status    *model.StatusCaderno
}

// CadernoPatch — частичное обновление; nil поля не меняются.
type CadernoPatch struct {
	Titulo    *string
	Descricao *string
	Status    *model.StatusCaderno
}

func (s *CadernoService) List(ctx context.Context, f repo.CadernoFilter) ([]model.Caderno, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid("invalid status")
	}
	return s.repo.List(ctx, f)
}

func (s *CadernoService) Get(ctx context.Context, id string) (*model.Caderno, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "caderno")
	}
	return c, nil
}

// Create — автор берётся из вызывающего, статус по умолчанию EM_ANDAMENTO.
func (s *CadernoService) Create(ctx context.Context, actorID string, in CadernoInput) (*model.Caderno, error) {
	titulo := strings.TrimSpace(in.Titulo)
	if titulo == "" {
		return nil, invalid("titulo is required")
	}
	status := model.StatusEmAndamento
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, invalid("invalid status")
		}
		status = *in.Status
	}
	// в строгом режиме caderno начинает жизненный цикл только с EM_ANDAMENTO
	if s.strict && status != model.StatusEmAndamento {
		return nil, fmt.Errorf("%w: new caderno must start as %s", ErrInvalidTransition, model.StatusEmAndamento)
	}

	c := &model.Caderno{
		Titulo:    titulo,
		Descricao: in.Descricao,
		Status:    status,
		AutorID:   actorID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID, model.AcaoCriarCaderno, c.ID, fmt.Sprintf("Caderno %q criado", c.Titulo))
	return s.Get(ctx, c.ID)
}

// Update применяет частичные изменения (last write wins).
func (s *CadernoService) Update(ctx context.Context, actorID, id string, p CadernoPatch) (*model.Caderno, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "caderno")
	}

	if p.Titulo != nil {
		t := strings.TrimSpace(*p.Titulo)
		if t == "" {
			return nil, invalid("titulo must not be empty")
		}
		c.Titulo = t
	}
	if p.Descricao != nil {
		c.Descricao = p.Descricao
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, invalid("invalid status")
		}
		if s.strict && !CanTransition(c.Status, *p.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, *p.Status)
		}
		c.Status = *p.Status
	}

	c.Autor = nil
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID, model.AcaoAtualizarCaderno, c.ID, fmt.Sprintf("Caderno %q atualizado", c.Titulo))
	return s.Get(ctx, c.ID)
}

// Delete запрещён, пока у caderno есть ESP.
func (s *CadernoService) Delete(ctx context.Context, actorID, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "caderno")
	}
	n, err := s.repo.CountEsps(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w (%d)", ErrInUse, n)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "caderno")
	}
	s.audit.Record(ctx, actorID, model.AcaoDeletarCaderno, id, fmt.Sprintf("Caderno %q deletado", c.Titulo))
	return nil
}
