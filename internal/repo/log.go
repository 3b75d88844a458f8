package repo

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LogRepository — журнал аудита, только добавление и чтение.
type LogRepository interface {
	Create(ctx context.Context, l *model.LogAtividade) error
	// List возвращает записи от новых к старым; пустой userID — все пользователи.
	List(ctx context.Context, userID string) ([]model.LogAtividade, error)
}

type logRepo struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepo{db: db}
}

func (r *logRepo) Create(ctx context.Context, l *model.LogAtividade) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *logRepo) List(ctx context.Context, userID string) ([]model.LogAtividade, error) {
	q := r.db.WithContext(ctx).Preload("User")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var out []model.LogAtividade
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
