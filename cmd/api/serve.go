package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"medistock/internal/adapters/auth/static"
	"medistock/internal/config"
	"medistock/internal/middleware"
	"medistock/internal/platform/logger"
	"medistock/internal/ports/auth"
	"medistock/internal/router"
	"medistock/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var devAuth bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta la API HTTP (comando por defecto)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Error("close storage", map[string]any{"err": err})
		}
	}()

	sg, err := newSuggester(ctx, cfg)
	if err != nil {
		return err
	}

	var verifier auth.AuthVerifier
	if !devAuth {
		verifier = static.NewVerifier(
			static.User{Username: cfg.AdminUser, Password: cfg.AdminPassword, Role: auth.RoleAdmin},
			static.User{Username: cfg.GuestUser, Password: cfg.GuestPassword, Role: auth.RoleGuest},
		)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	app := router.New(router.Options{
		Backend:      backend,
		Logger:       log,
		AuthVerifier: verifier,
		Suggester:    sg,
		Registry:     prometheus.NewRegistry(),
		RateLimiter:  limiter,
		CORSOrigins:  cfg.CORSOrigins,
	})

	sched := scheduler.New(app.Services.Ledger, scheduler.Options{
		Every:    cfg.AuditEvery,
		LowStock: cfg.LowStockThreshold,
		Sink:     app.Metrics,
		Pruner:   limiter,
		OnPrune:  func(n int) { app.Metrics.RateLimiterBucketsTotal.Set(float64(n)) },
		Logger:   log,
	})
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// las sugerencias esperan al proveedor de IA
		WriteTimeout: cfg.SuggestionsTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":        srv.Addr,
			"storage":     string(cfg.StorageDriver),
			"suggestions": string(cfg.SuggestionsProvider),
			"dev_auth":    devAuth,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", map[string]any{"err": err})
		return srv.Close()
	}
	log.Info("server exited gracefully", nil)
	return nil
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}
