package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// UserService — регистрация, вход и управление учётными записями.
type UserService struct {
	repo    repo.UserRepository
	audit   *AuditService
	emailRe *regexp.Regexp
}

func NewUserService(r repo.UserRepository, audit *AuditService, emailPattern string) *UserService {
	re, err := regexp.Compile(emailPattern)
	if err != nil {
		re = regexp.MustCompile(`@.*\.gov\.br$`)
	}
	return &UserService{repo: r, audit: audit, emailRe: re}
}

// RegisterInput — данные новой учётной записи.
type RegisterInput struct {
	Nome   string
	Email  string
	Senha  string
	Perfil model.Perfil
}

// Register создаёт активного пользователя. Повторный email — ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !s.emailRe.MatchString(email) {
		return nil, invalid("institutional email required")
	}
	if !in.Perfil.Valid() {
		return nil, invalid("invalid perfil")
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(in.Senha)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Nome:      strings.TrimSpace(in.Nome),
		Email:     email,
		HashSenha: hash,
		Perfil:    in.Perfil,
		Ativo:     true,
	})
	if errors.Is(err, repo.ErrConflict) {
		// гонка двух регистраций с одним email
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login проверяет пароль. Неизвестный, неактивный пользователь и неверный
// пароль неразличимы для клиента.
func (s *UserService) Login(ctx context.Context, email, senha string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Ativo {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashSenha), []byte(senha)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Me перечитывает пользователя из хранилища.
func (s *UserService) Me(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !user.Ativo {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

// Deactivate отзывает доступ пользователя.
func (s *UserService) Deactivate(ctx context.Context, actorID, id string) (*model.User, error) {
	if actorID == id {
		return nil, invalid("cannot deactivate own account")
	}
	user, err := s.repo.SetAtivo(ctx, id, false)
	if err != nil {
		return nil, notFound(err, "user")
	}
	s.audit.Record(ctx, actorID, model.AcaoDesativarUsuario, user.ID, fmt.Sprintf("Usuário %q desativado", user.Email))
	return user, nil
}

// HashPassword — bcrypt с cost по умолчанию.
func HashPassword(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
