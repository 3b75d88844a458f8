package commands

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Run_SuccessAndErrors(t *testing.T) {
	ctx := context.Background()
	ts := jsonServer(t, "/api/auth/login", http.StatusOK,
		`{"message":"Login realizado com sucesso","token":"tok-123","user":{"id":"u1","nome":"Ana","perfil":"DIRETOR"}}`)
	cfg := testConfig(t, ts)

	out := withStdoutCapture(t, func() {
		require.NoError(t, loginCmd{}.Run(ctx, cfg, []string{"ana@se.df.gov.br", "segredo"}))
	})
	assert.Contains(t, out, "Logged in as Ana (DIRETOR)")

	b, err := os.ReadFile(cfg.TokenFile)
	require.NoError(t, err, "auth token not saved")
	assert.Equal(t, "tok-123", string(b))

	// 401 → понятное сообщение
	ts401 := jsonServer(t, "/api/auth/login", http.StatusUnauthorized, `{"error":"invalid credentials"}`)
	err = loginCmd{}.Run(ctx, testConfig(t, ts401), []string{"ana@se.df.gov.br", "bad"})
	assert.EqualError(t, err, "invalid email or password")

	// недостаточно аргументов → ErrUsage
	assert.Equal(t, ErrUsage, loginCmd{}.Run(ctx, cfg, []string{"onlyEmail"}))

	// server 500 → ошибка
	ts500 := jsonServer(t, "/api/auth/login", http.StatusInternalServerError, `{"error":"internal error"}`)
	err = loginCmd{}.Run(ctx, testConfig(t, ts500), []string{"a", "b"})
	assert.ErrorContains(t, err, "internal error")
}

func TestRegister_Run_SuccessAndErrors(t *testing.T) {
	ctx := context.Background()
	ts := jsonServer(t, "/api/auth/register", http.StatusCreated,
		`{"message":"Usuário criado com sucesso","user":{"id":"u2","email":"bob@se.df.gov.br","perfil":"ARQUITETO"}}`)
	cfg := testConfig(t, ts)

	out := withStdoutCapture(t, func() {
		require.NoError(t, registerCmd{}.Run(ctx, cfg, []string{"Bob Silva", "bob@se.df.gov.br", "segredo", "arquiteto"}))
	})
	assert.Contains(t, out, "Registered bob@se.df.gov.br (ARQUITETO)")
	_, err := os.Stat(cfg.TokenFile)
	assert.True(t, os.IsNotExist(err), "register must not store a token")

	// 400 от сервера — текст ошибки доходит до пользователя
	ts400 := jsonServer(t, "/api/auth/register", http.StatusBadRequest, `{"error":"email already registered"}`)
	err = registerCmd{}.Run(ctx, testConfig(t, ts400), []string{"Bob", "bob@se.df.gov.br", "segredo", "ARQUITETO"})
	assert.ErrorContains(t, err, "email already registered")

	assert.Equal(t, ErrUsage, registerCmd{}.Run(ctx, cfg, []string{"Bob", "bob@se.df.gov.br"}))
}

func TestLogoutAndMe(t *testing.T) {
	ctx := context.Background()
	ts := jsonServer(t, "/api/auth/me", http.StatusOK,
		`{"user":{"id":"u1","nome":"Ana","email":"ana@se.df.gov.br","perfil":"GERENTE"}}`)
	cfg := testConfig(t, ts)

	// без токена — ошибка до запроса
	assert.Error(t, meCmd{}.Run(ctx, cfg, nil))

	writeToken(t, cfg, "tok-1")
	out := withStdoutCapture(t, func() {
		require.NoError(t, meCmd{}.Run(ctx, cfg, nil))
	})
	assert.Contains(t, out, "Ana <ana@se.df.gov.br>")
	assert.Contains(t, out, "Perfil: GERENTE")

	logoutSrv := jsonServer(t, "/api/auth/logout", http.StatusOK, `{"message":"Logout realizado com sucesso"}`)
	cfg.ServerURL = logoutSrv.URL
	out = withStdoutCapture(t, func() {
		require.NoError(t, logoutCmd{}.Run(ctx, cfg, nil))
	})
	assert.Contains(t, out, "Logged out")
	_, err := os.Stat(cfg.TokenFile)
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, ErrUsage, logoutCmd{}.Run(ctx, cfg, []string{"extra"}))
	assert.Equal(t, ErrUsage, meCmd{}.Run(ctx, cfg, []string{"extra"}))
}
