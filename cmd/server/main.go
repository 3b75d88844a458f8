package main

import (
	"context"
	"errors"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/handlers"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/middleware"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/rbac"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Debugw("Failed to sync logger", "error", err)
		}
	}()

	//context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	cadernoRepo := repo.NewCadernoRepository(gormDB)
	espRepo := repo.NewEspRepository(gormDB)

	audit := service.NewAuditService(repo.NewLogRepository(gormDB), sugar)
	seeder := service.NewSeeder(userRepo, cadernoRepo, espRepo, audit, sugar)
	svc := handlers.Services{
		Users:    service.NewUserService(userRepo, audit, cfg.EmailPattern),
		Cadernos: service.NewCadernoService(cadernoRepo, audit, sugar, cfg.StrictStatusFlow),
		Esps:     service.NewEspService(espRepo, cadernoRepo, audit, sugar),
		Arquivos: service.NewArquivoService(repo.NewArquivoRepository(gormDB), espRepo, audit, sugar, int64(cfg.FileMaxSizeMB)<<20),
		Items:    service.NewItemService(repo.NewItemRepository(gormDB), audit),
		Audit:    audit,
		Seeder:   seeder,
	}

	if cfg.SeedOnStart {
		// ошибка сидирования не мешает старту
		if res, err := seeder.Seed(ctx, ""); err != nil {
			sugar.Errorw("Failed to seed database", "error", err)
		} else {
			sugar.Infow("Seed finished", "users", res.UsersCreated, "cadernos", res.CadernosCreated, "esps", res.EspsCreated)
		}
	}

	h := handlers.NewHandler(svc, rbac.DefaultPolicy(), sugar, cfg)

	addr := cfg.BaseURL
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"AppEnv", cfg.AppEnv,
		"FileMaxSizeMB", cfg.FileMaxSizeMB,
		"StrictStatusFlow", cfg.StrictStatusFlow,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down server")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Graceful shutdown failed", "error", err)
		}
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
