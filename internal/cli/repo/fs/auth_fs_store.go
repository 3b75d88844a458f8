package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoToken — токен ещё не сохранён (пользователь не выполнял login).
var ErrNoToken = errors.New("no stored token, run login first")

// AuthFSStore — файловое хранилище токена для CLI.
type AuthFSStore struct {
	Path string
}

func NewAuthFSStore(path string) *AuthFSStore {
	return &AuthFSStore{Path: path}
}

// Save сохраняет auth‑токен в файл, создавая каталог при необходимости.
func (s *AuthFSStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token), 0o600)
}

// Load читает auth‑токен из файла.
func (s *AuthFSStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear удаляет файл токена; отсутствие файла ошибкой не считается.
func (s *AuthFSStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
