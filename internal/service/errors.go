package service

import (
	"errors"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("user not found or inactive")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCodigoTaken        = errors.New("codigo already in use")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInUse              = errors.New("caderno still has ESPs")
	ErrTooLarge           = errors.New("file too large")
)

// ValidationError — ошибка входных данных с текстом для клиента.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// NotFoundError — отсутствующая сущность; errors.Is(err, repo.ErrNotFound) == true.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Unwrap() error { return repo.ErrNotFound }

// notFound заменяет repo.ErrNotFound на ошибку с именем сущности.
func notFound(err error, entity string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Entity: entity}
	}
	return err
}
