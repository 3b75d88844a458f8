package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
)

// testConfig направляет клиента на ts, а токен кладёт во временный каталог.
func testConfig(t *testing.T, ts *httptest.Server) *config.Config {
	t.Helper()
	cfg := &config.Config{TokenFile: filepath.Join(t.TempDir(), "espcli", "auth_token")}
	if ts != nil {
		cfg.ServerURL = ts.URL
	}
	return cfg
}

func writeToken(t *testing.T, cfg *config.Config, token string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(cfg.TokenFile), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.TokenFile, []byte(token), 0o600); err != nil {
		t.Fatal(err)
	}
}

// jsonServer отвечает body со статусом code на запросы с суффиксом path.
func jsonServer(t *testing.T, path string, code int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, path) {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}
