package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRecover(t *testing.T) {
	SetLogger(zap.NewNop().Sugar())
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rr.Body.String())
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:5173", "*.df.gov.br"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:5173", true},
		{"https://esp.se.df.gov.br", true},
		{"https://df.gov.br", false},
		{"https://evil.example.com", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", tc.origin)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if tc.allowed {
			assert.Equal(t, tc.origin, rr.Header().Get("Access-Control-Allow-Origin"), tc.origin)
		} else {
			assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"), tc.origin)
		}
	}

	// preflight от разрешённого origin
	req := httptest.NewRequest(http.MethodOptions, "/api/esp", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestIPRateLimit(t *testing.T) {
	lim := NewRateLimiter(0.001, 2)
	h := IPRateLimit(lim)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = ip + ":1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	// другой IP — свой бакет
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.0.9:5555"
	assert.Equal(t, "192.168.0.9", clientIP(req))

	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "1.1.1.1", clientIP(req))

	req.Header.Set("X-Real-IP", "3.3.3.3")
	assert.Equal(t, "3.3.3.3", clientIP(req))
}
