package repo

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemFilter — пустые поля не фильтруют.
type ItemFilter struct {
	Categoria    model.CategoriaItem
	Subcategoria model.SubcategoriaItem
	Situacao     model.SituacaoItem
}

// ItemRepository — справочник элементов спецификации.
type ItemRepository interface {
	List(ctx context.Context, f ItemFilter) ([]model.ItemEspecificacao, error)
	GetByID(ctx context.Context, id string) (*model.ItemEspecificacao, error)
	Create(ctx context.Context, it *model.ItemEspecificacao) error
	Save(ctx context.Context, it *model.ItemEspecificacao) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) List(ctx context.Context, f ItemFilter) ([]model.ItemEspecificacao, error) {
	q := r.db.WithContext(ctx)
	if f.Categoria != "" {
		q = q.Where("categoria = ?", f.Categoria)
	}
	if f.Subcategoria != "" {
		q = q.Where("subcategoria = ?", f.Subcategoria)
	}
	if f.Situacao != "" {
		q = q.Where("situacao = ?", f.Situacao)
	}
	var out []model.ItemEspecificacao
	if err := q.Order("titulo ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.ItemEspecificacao, error) {
	var it model.ItemEspecificacao
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error; err != nil {
		return nil, translate(err)
	}
	return &it, nil
}

func (r *itemRepo) Create(ctx context.Context, it *model.ItemEspecificacao) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(it).Error)
}

func (r *itemRepo) Save(ctx context.Context, it *model.ItemEspecificacao) error {
	return translate(r.db.WithContext(ctx).Save(it).Error)
}
