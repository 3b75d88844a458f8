package service

import (
	"context"

	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
)

// AuthService описывает юзкейс-уровень аутентификации для CLI.
type AuthService interface {
	// Register создаёт учётную запись; токен при этом не выдаётся.
	Register(ctx context.Context, nome, email, senha, perfil string) (*model.User, error)

	// Login логирует пользователя и сохраняет токен локально.
	Login(ctx context.Context, email, senha string) (*model.User, error)

	// Logout очищает локальный контекст аутентификации.
	Logout(ctx context.Context) error

	// CurrentUser возвращает пользователя, которому принадлежит сохранённый токен.
	CurrentUser(ctx context.Context) (*model.User, error)
}

// BrowseService — просмотр cadernos и ESP (только чтение).
type BrowseService interface {
	Cadernos(ctx context.Context) ([]model.Caderno, error)
	Esps(ctx context.Context, search string) ([]model.Esp, error)
	Esp(ctx context.Context, id string) (*model.Esp, error)
}
