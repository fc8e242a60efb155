package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remedio-solidario/internal/adapters/auth/session"
	"remedio-solidario/internal/adapters/backend/remedios"
	"remedio-solidario/internal/adapters/cep/viacep"
	pg "remedio-solidario/internal/adapters/storage/postgres"
	"remedio-solidario/internal/platform/config"
	"remedio-solidario/internal/platform/logger"
	"remedio-solidario/internal/platform/metrics"
	"remedio-solidario/internal/router"

	"github.com/google/uuid"
)

// @title Remédio Solidário API
// @version 1.0
// @description Pacientes, medicamentos e dispensações com recibo.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.New()

	backend, err := remedios.NewClient(remedios.Config{
		BaseURL:  cfg.BackendURL,
		Timeout:  cfg.BackendTimeout,
		Observer: collector,
	})
	if err != nil {
		return err
	}

	cep, err := viacep.NewClient(viacep.Config{
		BaseURL:  cfg.ViaCEPURL,
		Timeout:  cfg.ViaCEPTimeout,
		Observer: collector,
	})
	if err != nil {
		return err
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn("SESSION_SECRET not set, sessions will not survive a restart", nil)
	}
	sessions, err := session.NewManager(session.Config{
		Secret: secret,
		TTL:    cfg.SessionTTL,
		Issuer: cfg.AppName,
	})
	if err != nil {
		return err
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := pg.NewDraftsRepo(db).EnsureSchema(ctx); err != nil {
			return err
		}
		log.Info("drafts stored in postgres", nil)
	} else {
		log.Info("drafts stored in memory", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:  sessions,
		Sessions:      sessions,
		Backend:       backend,
		AddressLookup: cep,
		DB:            db,
		Logger:        log,
		Metrics:       collector,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr(), "backend": cfg.BackendURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
