package repo

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CadernoFilter — необязательные условия выборки; пустые поля не фильтруют.
type CadernoFilter struct {
	Status  model.StatusCaderno
	AutorID string
}

// CadernoRepository — доступ к cadernos.
type CadernoRepository interface {
	List(ctx context.Context, f CadernoFilter) ([]model.Caderno, error)
	GetByID(ctx context.Context, id string) (*model.Caderno, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Caderno, error)
	Create(ctx context.Context, c *model.Caderno) error
	Save(ctx context.Context, c *model.Caderno) error
	Delete(ctx context.Context, id string) error
	CountEsps(ctx context.Context, id string) (int64, error)
}

type cadernoRepo struct {
	db *gorm.DB
}

func NewCadernoRepository(db *gorm.DB) CadernoRepository {
	return &cadernoRepo{db: db}
}

func (r *cadernoRepo) List(ctx context.Context, f CadernoFilter) ([]model.Caderno, error) {
	q := r.db.WithContext(ctx).Preload("Autor")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AutorID != "" {
		q = q.Where("autor_id = ?", f.AutorID)
	}
	var out []model.Caderno
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cadernoRepo) GetByID(ctx context.Context, id string) (*model.Caderno, error) {
	var c model.Caderno
	if err := r.db.WithContext(ctx).Preload("Autor").Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// GetByIDs возвращает найденные cadernos без гарантии порядка.
func (r *cadernoRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Caderno, error) {
	var out []model.Caderno
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cadernoRepo) Create(ctx context.Context, c *model.Caderno) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

// Save перезаписывает все поля caderno (last write wins).
func (r *cadernoRepo) Save(ctx context.Context, c *model.Caderno) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}

func (r *cadernoRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Caderno{})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountEsps — число ESP, которые ссылаются на caderno как на основной
// или как на один из cadernos_ids.
func (r *cadernoRepo) CountEsps(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Esp{}).
		Where("caderno_id = ?", id).
		Or(datatypes.JSONArrayQuery("cadernos_ids").Contains(id)).
		Count(&n).Error
	return n, translate(err)
}
