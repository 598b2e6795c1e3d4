package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cat-lifecycle/internal/app"
	"cat-lifecycle/internal/platform/config"
	"cat-lifecycle/internal/platform/logger"
	"cat-lifecycle/internal/router"
)

func main() {
	configPath := flag.String("config", os.Getenv("CATLOG_CONFIG"), "path to config.toml (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer a.Close()

	// Si ya hay sesión (p.ej. backend SQL con sesión persistida), se carga de entrada.
	if err := a.Store.LoadInitialData(ctx); err != nil {
		log.Warn("initial load failed", map[string]any{"err": err})
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Options{
			Store:        a.Store,
			AuthVerifier: a.Verifier,
			Logger:       log.With(map[string]any{"component": "http"}),
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", map[string]any{"err": err})
		}
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Server.Addr, "backend": cfg.Backend.Type})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}
