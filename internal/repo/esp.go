package repo

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// arquivoListColumns — колонки вложений без содержимого файла.
var arquivoListColumns = []string{"id", "esp_id", "tipo", "filename", "content_type", "file_size", "created_at"}

// EspFilter — условия, которые выполняются на стороне БД.
type EspFilter struct {
	CadernoID string
	Visivel   *bool
}

// EspRepository — доступ к ESP.
type EspRepository interface {
	List(ctx context.Context, f EspFilter) ([]model.Esp, error)
	GetByID(ctx context.Context, id string) (*model.Esp, error)
	Create(ctx context.Context, e *model.Esp) error
	Save(ctx context.Context, e *model.Esp) error
	Delete(ctx context.Context, id string) error
}

type espRepo struct {
	db *gorm.DB
}

func NewEspRepository(db *gorm.DB) EspRepository {
	return &espRepo{db: db}
}

func (r *espRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Autor").
		Preload("Caderno").
		Preload("Arquivos", func(db *gorm.DB) *gorm.DB {
			return db.Select(arquivoListColumns).Order("created_at ASC")
		})
}

func (r *espRepo) List(ctx context.Context, f EspFilter) ([]model.Esp, error) {
	q := r.withRelations(ctx)
	if f.CadernoID != "" {
		q = q.Where("caderno_id = ?", f.CadernoID)
	}
	if f.Visivel != nil {
		q = q.Where("visivel = ?", *f.Visivel)
	}
	var out []model.Esp
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *espRepo) GetByID(ctx context.Context, id string) (*model.Esp, error) {
	var e model.Esp
	if err := r.withRelations(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// Create вставляет ESP; дубликат codigo даёт ErrConflict.
func (r *espRepo) Create(ctx context.Context, e *model.Esp) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

func (r *espRepo) Save(ctx context.Context, e *model.Esp) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error)
}

// Delete удаляет ESP; вложения удаляются каскадом по FK.
func (r *espRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Esp{})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
