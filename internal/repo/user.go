package repo

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository — доступ к учётным записям.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SetAtivo(ctx context.Context, id string, ativo bool) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

// CreateUser вставляет пользователя; дубликат email даёт ErrConflict.
func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("nome ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetAtivo меняет флаг активности и возвращает обновлённую запись.
func (r *userRepo) SetAtivo(ctx context.Context, id string, ativo bool) (*model.User, error) {
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("ativo", ativo)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetUserByID(ctx, id)
}
