package repo

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArquivoRepository — вложения ESP.
type ArquivoRepository interface {
	Create(ctx context.Context, a *model.ArquivoMidia) error
	// ListByEsp возвращает вложения без file_data.
	ListByEsp(ctx context.Context, espID string) ([]model.ArquivoMidia, error)
	// GetByID возвращает вложение вместе с содержимым.
	GetByID(ctx context.Context, id string) (*model.ArquivoMidia, error)
	Delete(ctx context.Context, id string) error
}

type arquivoRepo struct {
	db *gorm.DB
}

func NewArquivoRepository(db *gorm.DB) ArquivoRepository {
	return &arquivoRepo{db: db}
}

func (r *arquivoRepo) Create(ctx context.Context, a *model.ArquivoMidia) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *arquivoRepo) ListByEsp(ctx context.Context, espID string) ([]model.ArquivoMidia, error) {
	var out []model.ArquivoMidia
	err := r.db.WithContext(ctx).
		Select(arquivoListColumns).
		Where("esp_id = ?", espID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *arquivoRepo) GetByID(ctx context.Context, id string) (*model.ArquivoMidia, error) {
	var a model.ArquivoMidia
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *arquivoRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ArquivoMidia{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
