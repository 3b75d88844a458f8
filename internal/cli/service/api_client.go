package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dudsmessias/new-automacao-esp-seedf/internal/cli/api"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/cli/repo"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
)

// APIClient реализует AuthService и BrowseService поверх HTTP API сервера.
type APIClient struct {
	serverURL string
	tokens    repo.TokenStore
}

var (
	_ AuthService   = (*APIClient)(nil)
	_ BrowseService = (*APIClient)(nil)
)

func NewAPIClient(serverURL string, tokens repo.TokenStore) *APIClient {
	return &APIClient{serverURL: serverURL, tokens: tokens}
}

type registerRequest struct {
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Senha  string `json:"senha"`
	Perfil string `json:"perfil"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

func (c *APIClient) Register(ctx context.Context, nome, email, senha, perfil string) (*model.User, error) {
	req := registerRequest{Nome: nome, Email: email, Senha: senha, Perfil: strings.ToUpper(perfil)}
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, "auth/register", req, "", &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *APIClient) Login(ctx context.Context, email, senha string) (*model.User, error) {
	var out struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	if err := c.call(ctx, http.MethodPost, "auth/login", loginRequest{Email: email, Senha: senha}, "", &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("login: server returned no token")
	}
	if err := c.tokens.Save(out.Token); err != nil {
		return nil, fmt.Errorf("saving auth: %w", err)
	}
	return &out.User, nil
}

// Logout уведомляет сервер (если есть токен) и в любом случае удаляет локальный токен.
func (c *APIClient) Logout(ctx context.Context) error {
	if token, err := c.tokens.Load(); err == nil {
		// сервер stateless, ответ на локальный выход не влияет
		_, _, _ = api.PostJSON(ctx, api.Endpoint(c.serverURL, "auth/logout"), nil, token)
	}
	return c.tokens.Clear()
}

func (c *APIClient) CurrentUser(ctx context.Context) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.authed(ctx, "auth/me", &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *APIClient) Cadernos(ctx context.Context) ([]model.Caderno, error) {
	var out struct {
		Cadernos []model.Caderno `json:"cadernos"`
	}
	if err := c.authed(ctx, "cadernos", &out); err != nil {
		return nil, err
	}
	return out.Cadernos, nil
}

func (c *APIClient) Esps(ctx context.Context, search string) ([]model.Esp, error) {
	path := "esp"
	if search != "" {
		path += "?" + url.Values{"search": {search}}.Encode()
	}
	var out struct {
		Esps []model.Esp `json:"esps"`
	}
	if err := c.authed(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Esps, nil
}

func (c *APIClient) Esp(ctx context.Context, id string) (*model.Esp, error) {
	var out struct {
		Esp model.Esp `json:"esp"`
	}
	if err := c.authed(ctx, "esp/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out.Esp, nil
}

// authed — GET с сохранённым токеном.
func (c *APIClient) authed(ctx context.Context, path string, out any) error {
	token, err := c.tokens.Load()
	if err != nil {
		return err
	}
	return c.call(ctx, http.MethodGet, path, nil, token, out)
}

func (c *APIClient) call(ctx context.Context, method, path string, payload any, token string, out any) error {
	resp, body, err := api.Do(ctx, method, api.Endpoint(c.serverURL, path), payload, token)
	if err != nil {
		return err
	}
	if err := api.ErrorFromResponse(resp, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
