package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dudsmessias/new-automacao-esp-seedf/internal/cli/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTokens — TokenStore в памяти.
type memTokens struct{ token string }

func (m *memTokens) Save(token string) error { m.token = token; return nil }
func (m *memTokens) Load() (string, error) {
	if m.token == "" {
		return "", assert.AnError
	}
	return m.token, nil
}
func (m *memTokens) Clear() error { m.token = ""; return nil }

func newServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestAPIClient_LoginStoresToken(t *testing.T) {
	ts := newServer(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ana@se.df.gov.br", body["email"])
			assert.Equal(t, "segredo", body["senha"])
			_, _ = w.Write([]byte(`{"message":"ok","token":"jwt-1","user":{"id":"u1","nome":"Ana","perfil":"DIRETOR"}}`))
		},
	})
	tokens := &memTokens{}
	c := NewAPIClient(ts.URL, tokens)

	user, err := c.Login(context.Background(), "ana@se.df.gov.br", "segredo")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Nome)
	assert.Equal(t, "jwt-1", tokens.token)
}

func TestAPIClient_LoginFailures(t *testing.T) {
	ts := newServer(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
		},
	})
	tokens := &memTokens{}
	_, err := NewAPIClient(ts.URL, tokens).Login(context.Background(), "a@b", "x")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Empty(t, tokens.token)

	noToken := newServer(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"user":{}}`))
		},
	})
	_, err = NewAPIClient(noToken.URL, tokens).Login(context.Background(), "a@b", "x")
	assert.ErrorContains(t, err, "no token")
}

func TestAPIClient_RegisterUppercasesPerfil(t *testing.T) {
	ts := newServer(t, map[string]http.HandlerFunc{
		"POST /api/auth/register": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ARQUITETO", body["perfil"])
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"user":{"id":"u2","email":"bob@se.df.gov.br"}}`))
		},
	})
	tokens := &memTokens{}
	user, err := NewAPIClient(ts.URL, tokens).Register(context.Background(), "Bob", "bob@se.df.gov.br", "segredo", "arquiteto")
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.Empty(t, tokens.token, "register must not log in")
}

func TestAPIClient_BrowseSendsBearer(t *testing.T) {
	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer jwt-1", r.Header.Get("Authorization"))
			h(w, r)
		}
	}
	ts := newServer(t, map[string]http.HandlerFunc{
		"GET /api/auth/me": auth(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"user":{"id":"u1","nome":"Ana"}}`))
		}),
		"GET /api/cadernos": auth(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"cadernos":[{"id":"c1","titulo":"Caderno A","status":"EM_ANDAMENTO"}]}`))
		}),
		"GET /api/esp": auth(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "porta madeira", r.URL.Query().Get("search"))
			_, _ = w.Write([]byte(`{"esps":[{"id":"e1","codigo":"ESP-001","cadernosIds":["c1"]}]}`))
		}),
		"GET /api/esp/e1": auth(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"esp":{"id":"e1","codigo":"ESP-001","dataPublicacao":"2025-01-15T00:00:00Z"}}`))
		}),
	})
	c := NewAPIClient(ts.URL, &memTokens{token: "jwt-1"})
	ctx := context.Background()

	me, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", me.ID)

	cads, err := c.Cadernos(ctx)
	require.NoError(t, err)
	require.Len(t, cads, 1)
	assert.Equal(t, "Caderno A", cads[0].Titulo)

	esps, err := c.Esps(ctx, "porta madeira")
	require.NoError(t, err)
	require.Len(t, esps, 1)
	assert.Equal(t, []string{"c1"}, []string(esps[0].CadernosIDs))

	esp, err := c.Esp(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 2025, esp.DataPublicacao.Year())
}

func TestAPIClient_BrowseWithoutTokenSkipsServer(t *testing.T) {
	ts := newServer(t, map[string]http.HandlerFunc{})
	_, err := NewAPIClient(ts.URL, &memTokens{}).Cadernos(context.Background())
	assert.Error(t, err)
}

func TestAPIClient_LogoutClearsEvenWhenServerFails(t *testing.T) {
	called := false
	ts := newServer(t, map[string]http.HandlerFunc{
		"POST /api/auth/logout": func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	tokens := &memTokens{token: "jwt-1"}
	require.NoError(t, NewAPIClient(ts.URL, tokens).Logout(context.Background()))
	assert.True(t, called)
	assert.Empty(t, tokens.token)

	// без токена сервер не вызывается
	called = false
	require.NoError(t, NewAPIClient(ts.URL, tokens).Logout(context.Background()))
	assert.False(t, called)
}
