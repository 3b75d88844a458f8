package service

import (
	"context"
	"fmt"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"strings"
)

// ItemService — справочник элементов спецификации с мягким удалением.
type ItemService struct {
	repo  repo.ItemRepository
	audit *AuditService
}

func NewItemService(r repo.ItemRepository, audit *AuditService) *ItemService {
	return &ItemService{repo: r, audit: audit}
}

// ItemListFilter — Ativo по умолчанию true; false показывает неактивные.
type ItemListFilter struct {
	Categoria    model.CategoriaItem
	Subcategoria model.SubcategoriaItem
	Ativo        *bool
}

// ItemInput — поля элемента; nil не меняет значение при обновлении.
type ItemInput struct {
	Titulo       *string
	Categoria    *model.CategoriaItem
	Subcategoria *model.SubcategoriaItem
	Descricao    *string
	Ativo        *bool
}

// CatalogEntry — элемент списка выбора в редакторе ESP.
type CatalogEntry struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
}

// catalogKinds — имя списка выбора → фильтр активных элементов.
var catalogKinds = map[string]repo.ItemFilter{
	"constituintes":          {Subcategoria: model.SubcategoriaConstituintes},
	"acessorios":             {Subcategoria: model.SubcategoriaAcessorios},
	"acabamentos":            {Subcategoria: model.SubcategoriaAcabamentos},
	"prototipos":             {Subcategoria: model.SubcategoriaPrototipoComercial},
	"aplicacoes":             {Categoria: model.CategoriaAplicacao},
	"constituintes-execucao": {Categoria: model.CategoriaExecucao},
	"fichas-referencia":      {Categoria: model.CategoriaFichaReferencia},
	"fichas-recebimento":     {Categoria: model.CategoriaRecebimento},
	"servicos-incluidos":     {Categoria: model.CategoriaServicosIncluidos},
}

// IsCatalogKind — известно ли имя списка выбора.
func IsCatalogKind(kind string) bool {
	_, ok := catalogKinds[kind]
	return ok
}

func (s *ItemService) List(ctx context.Context, f ItemListFilter) ([]model.ItemEspecificacao, error) {
	if f.Categoria != "" && !f.Categoria.Valid() {
		return nil, invalid("invalid categoria")
	}
	situacao := model.SituacaoAtivo
	if f.Ativo != nil && !*f.Ativo {
		situacao = model.SituacaoInativo
	}
	return s.repo.List(ctx, repo.ItemFilter{Categoria: f.Categoria, Subcategoria: f.Subcategoria, Situacao: situacao})
}

// Get возвращает элемент независимо от состояния.
func (s *ItemService) Get(ctx context.Context, id string) (*model.ItemEspecificacao, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "item")
	}
	return it, nil
}

func (s *ItemService) Create(ctx context.Context, actorID string, in ItemInput) (*model.ItemEspecificacao, error) {
	if in.Titulo == nil || strings.TrimSpace(*in.Titulo) == "" {
		return nil, invalid("titulo is required")
	}
	if in.Categoria == nil {
		return nil, invalid("categoria is required")
	}
	it := &model.ItemEspecificacao{Situacao: model.SituacaoAtivo}
	if err := applyItemInput(it, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID, model.AcaoCriarItem, it.ID, fmt.Sprintf("Item %q criado", it.Titulo))
	return it, nil
}

func (s *ItemService) Update(ctx context.Context, actorID, id string, in ItemInput) (*model.ItemEspecificacao, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "item")
	}
	if err := applyItemInput(it, in); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, it); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID, model.AcaoAtualizarItem, it.ID, fmt.Sprintf("Item %q atualizado", it.Titulo))
	return it, nil
}

// Delete — мягкое удаление: situacao → INATIVO, запись остаётся доступной по id.
func (s *ItemService) Delete(ctx context.Context, actorID, id string) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "item")
	}
	if it.Situacao == model.SituacaoInativo {
		return nil
	}
	it.Situacao = model.SituacaoInativo
	if err := s.repo.Save(ctx, it); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID, model.AcaoDesativarItem, it.ID, fmt.Sprintf("Item %q desativado", it.Titulo))
	return nil
}

// Catalog — активные элементы списка выбора.
func (s *ItemService) Catalog(ctx context.Context, kind string) ([]CatalogEntry, error) {
	f, ok := catalogKinds[kind]
	if !ok {
		return nil, &NotFoundError{Entity: "catalog " + kind}
	}
	f.Situacao = model.SituacaoAtivo
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]CatalogEntry, 0, len(items))
	for _, it := range items {
		out = append(out, CatalogEntry{ID: it.ID, Nome: it.Titulo, Descricao: it.Descricao})
	}
	return out, nil
}

func applyItemInput(it *model.ItemEspecificacao, in ItemInput) error {
	if in.Titulo != nil {
		t := strings.TrimSpace(*in.Titulo)
		if t == "" {
			return invalid("titulo must not be empty")
		}
		it.Titulo = t
	}
	if in.Categoria != nil {
		if !in.Categoria.Valid() {
			return invalid("invalid categoria")
		}
		it.Categoria = *in.Categoria
	}
	if in.Subcategoria != nil {
		it.Subcategoria = *in.Subcategoria
	}
	if in.Descricao != nil {
		d := *in.Descricao
		it.Descricao = &d
	}
	if in.Ativo != nil {
		it.Situacao = model.SituacaoInativo
		if *in.Ativo {
			it.Situacao = model.SituacaoAtivo
		}
	}
	// сочетание проверяется по итоговому состоянию
	if !it.Subcategoria.AllowedFor(it.Categoria) {
		if it.Categoria == model.CategoriaDescricao {
			return invalid("categoria DESCRICAO requires a subcategoria")
		}
		return invalid(fmt.Sprintf("subcategoria %s is not allowed for categoria %s", it.Subcategoria, it.Categoria))
	}
	return nil
}
