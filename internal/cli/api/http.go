package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized — сервер ответил 401: токена нет или он просрочен.
var ErrUnauthorized = errors.New("not logged in or session expired")

// Client общий HTTP-клиент CLI с таймаутом.
var Client = &http.Client{Timeout: 30 * time.Second}

// Do отправляет запрос к API. payload (если не nil) кодируется в JSON,
// непустой token передаётся в заголовке Authorization: Bearer.
func Do(ctx context.Context, method, url string, payload any, token string) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := Client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, respBody, nil
}

// PostJSON — POST с JSON-телом.
func PostJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	if payload == nil {
		payload = struct{}{}
	}
	return Do(ctx, http.MethodPost, url, payload, token)
}

// GetJSON — GET без тела.
func GetJSON(ctx context.Context, url, token string) (*http.Response, []byte, error) {
	return Do(ctx, http.MethodGet, url, nil, token)
}

// ErrorFromResponse превращает ответ с кодом вне 2xx в ошибку.
// Сервер отдаёт ошибки как {"error": "..."}; если тело другое — берём его как есть.
func ErrorFromResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// Endpoint склеивает базовый адрес сервера и путь API.
func Endpoint(serverURL, path string) string {
	return strings.TrimRight(serverURL, "/") + "/api/" + strings.TrimLeft(path, "/")
}
