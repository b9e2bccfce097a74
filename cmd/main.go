package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/bookkeeper-dev/bookkeeper/internal/chart"
	"github.com/bookkeeper-dev/bookkeeper/internal/httpapi"
	"github.com/bookkeeper-dev/bookkeeper/internal/storage/file"
	"github.com/bookkeeper-dev/bookkeeper/internal/storage/memory"
	pgstore "github.com/bookkeeper-dev/bookkeeper/internal/storage/postgres"
	"github.com/bookkeeper-dev/bookkeeper/internal/watch"
)

type config struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	DataDir     string `envconfig:"DATA_DIR"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	Currency    string `envconfig:"BOOK_CURRENCY" default:"USD"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	LogFormat   string `envconfig:"LOG_FORMAT"`
}

// store is the storage surface main needs to wire the API and the collection
// watcher.
type store interface {
	httpapi.AccountStore
	httpapi.EntryStore
	Watch() <-chan watch.Event
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	var st store
	var closeFn func()
	switch {
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL, chart.DefaultChart())
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = pg.Close
		st = pg
		logger.Info("storage backend: postgres")
	case strings.TrimSpace(cfg.DataDir) != "":
		fs, err := file.Open(cfg.DataDir, chart.DefaultChart())
		if err != nil {
			logger.Error("failed to open data dir", "dir", cfg.DataDir, "err", err)
			os.Exit(1)
		}
		st = fs
		logger.Info("storage backend: file", "dir", cfg.DataDir)
	default:
		mem := memory.New()
		for _, a := range chart.DefaultChart() {
			mem.SeedAccount(a)
		}
		st = mem
		logger.Info("storage backend: memory")
	}

	// Observe collection writes; both collections broadcast uniformly.
	go func() {
		for ev := range st.Watch() {
			logger.Debug("collection written", "collection", ev.Collection)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(st, st, cfg.Currency, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bookkeeper service listening", "addr", srv.Addr, "currency", cfg.Currency)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// parseLogLevel maps env values to slog.Leveler.
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(cfg config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)
	if strings.ToLower(strings.TrimSpace(cfg.LogFormat)) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
