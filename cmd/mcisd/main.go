package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/sebaraj/mcis-engine/internal/daemon"
	"github.com/sebaraj/mcis-engine/pkg/config"
	"github.com/sebaraj/mcis-engine/pkg/dispatch"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           charmlog.InfoLevel,
	})

	opts, err := config.Load(envOr("MCISD_CONFIG", "mcisd.toml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts.Logger = logger

	var cache daemon.ResultCache = daemon.NullCache{}
	if addr := os.Getenv("MCISD_REDIS_ADDR"); addr != "" {
		cache = daemon.NewRedisCache(addr)
	}

	var audit daemon.AuditLog = daemon.NullAuditLog{}
	if uri := os.Getenv("MCISD_MONGO_URI"); uri != "" {
		m, err := daemon.NewMongoAuditLog(ctx, uri, envOr("MCISD_MONGO_DB", "mcis"), envOr("MCISD_MONGO_COLLECTION", "runs"))
		if err != nil {
			logger.Warn("mongo audit log unavailable, falling back to null", "err", err)
		} else {
			audit = m
		}
	}

	server := &daemon.Server{
		Dispatcher: dispatch.New(opts),
		Cache:      cache,
		Audit:      audit,
		Logger:     logger,
	}

	addr := envOr("MCISD_ADDR", ":8080")
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
