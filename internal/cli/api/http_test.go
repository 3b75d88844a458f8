package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON_SendsBearer_And_ParsesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var m map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		assert.Equal(t, float64(1), m["x"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	resp, body, err := PostJSON(context.Background(), ts.URL+"/api", map[string]any{"x": 1}, "tok123")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, strings.TrimSpace(string(body)))
}

func TestGetJSON_NoToken_NoAuthorizationHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	resp, _, err := GetJSON(context.Background(), ts.URL, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDo_NetworkAndURLErrors(t *testing.T) {
	_, _, err := PostJSON(context.Background(), "http://127.0.0.1:1", map[string]any{"a": 1}, "")
	assert.Error(t, err, "unreachable address")

	_, _, err = GetJSON(context.Background(), "http://[::1", "")
	assert.Error(t, err, "invalid URL")
}

func TestErrorFromResponse(t *testing.T) {
	resp := func(code int) *http.Response { return &http.Response{StatusCode: code} }

	assert.NoError(t, ErrorFromResponse(resp(http.StatusCreated), nil))
	assert.True(t, errors.Is(ErrorFromResponse(resp(http.StatusUnauthorized), []byte(`{"error":"x"}`)), ErrUnauthorized))

	err := ErrorFromResponse(resp(http.StatusForbidden), []byte(`{"error":"insufficient permissions"}`))
	require.Error(t, err)
	assert.Equal(t, "server status 403: insufficient permissions", err.Error())

	err = ErrorFromResponse(resp(http.StatusBadGateway), []byte("bad gateway\n"))
	require.Error(t, err)
	assert.Equal(t, "server status 502: bad gateway", err.Error())
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "http://localhost:8081/api/auth/login", Endpoint("http://localhost:8081/", "/auth/login"))
	assert.Equal(t, "http://h:1/api/esp", Endpoint("http://h:1", "esp"))
}
