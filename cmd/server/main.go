package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/server/api"
	"liquidtrack/internal/app/server/api/http/middleware/metrics"
	"liquidtrack/internal/app/server/config"
	"liquidtrack/internal/domain/realtime"
	"liquidtrack/internal/domain/session"
	"liquidtrack/internal/infrastructure/storage/postgres"
	"liquidtrack/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.NewWriter(cfg.Env, os.Stdout, cfg.Logger.LogLevel)
	log.Info("starting store service", "env", cfg.Env, "address", cfg.Server.RunAddress)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer storage.Close()

	m := metrics.New()
	hub := realtime.NewHub(log)
	hub.OnCountChange = m.SetSubscribers

	listener := postgres.NewListener(storage.Pool(), hub, log)
	listener.OnNotify = func(e realtime.Event) { m.ObserveNotification(string(e)) }
	go listener.Run(ctx)

	sessions := session.NewService(postgres.NewSessionRepository(storage.Pool(), log), log, cfg.Auth.SessionTTL)
	go sessions.RunCleanup(ctx, cfg.Auth.CleanupInterval)

	router := api.New(api.Deps{
		Config:   cfg,
		DB:       storage,
		Issues:   postgres.NewIssueRepository(storage.Pool(), log),
		Users:    postgres.NewUserRepository(storage.Pool(), log),
		Sessions: sessions,
		Hub:      hub,
		Metrics:  m,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// websocket-соединения закрываются по сигналу вместе с контекстом
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
