package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const defaultEmailPattern = `@.*\.gov\.br$`

type Config struct {
	// Server-side settings
	DatabaseDSN      string  `env:"DATABASE_URI"`
	AuthSecret       string  `env:"AUTH_SECRET"`
	AppEnv           string  `env:"APP_ENV"`
	AllowOrigins     string  `env:"ALLOW_ORIGINS"`
	FileMaxSizeMB    int     `env:"FILE_MAX_MB"`
	EmailPattern     string  `env:"EMAIL_DOMAIN_PATTERN"`
	SeedOnStart      bool    `env:"SEED_ON_START" envDefault:"true"`
	StrictStatusFlow bool    `env:"STRICT_STATUS_FLOW"`
	RateLimitRPS     float64 `env:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `env:"RATE_LIMIT_BURST"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь к файлу sqlite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.AppEnv, "env", cfg.AppEnv, "окружение: development | production")
	flag.BoolVar(&cfg.SeedOnStart, "seed", cfg.SeedOnStart, "заполнить БД начальными данными при старте")
	flag.BoolVar(&cfg.StrictStatusFlow, "strict-status", cfg.StrictStatusFlow, "запретить переходы статуса caderno вне таблицы переходов")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the ESP server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет пустые значения и вычисляет производные поля.
func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "esp.db"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.FileMaxSizeMB <= 0 {
		cfg.FileMaxSizeMB = 10
	}
	if cfg.EmailPattern == "" {
		cfg.EmailPattern = defaultEmailPattern
	}
	if _, err := regexp.Compile(cfg.EmailPattern); err != nil {
		cfg.EmailPattern = defaultEmailPattern
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 5
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 10
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir, _ = os.UserHomeDir()
		}
		cfg.TokenFile = filepath.Join(dir, "espcli", "auth_token")
	}
}

// IsDevelopment сообщает, можно ли отдавать клиенту текст внутренних ошибок.
func (cfg *Config) IsDevelopment() bool {
	return strings.EqualFold(cfg.AppEnv, "development")
}

// Origins разбирает ALLOW_ORIGINS в список.
func (cfg *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(cfg.AllowOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
