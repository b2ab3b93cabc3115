package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/user/snap-site/internal/adapter/chromedp_browser"
	"github.com/user/snap-site/internal/delivery/http/handler"
	"github.com/user/snap-site/internal/delivery/http/router"
	"github.com/user/snap-site/internal/delivery/http/server"
	"github.com/user/snap-site/internal/delivery/report"
	"github.com/user/snap-site/internal/usecase"
	"github.com/user/snap-site/pkg/config"
	"github.com/user/snap-site/pkg/logger"
	"github.com/user/snap-site/pkg/metrics"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// --- Logger ---
	log, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Debug("Logger initialized", zap.String("level", cfg.LogLevel), zap.String("format", cfg.LogFormat))

	// --- Metrics ---
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Result stores ---
	stores, captures, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := stores.Close(closeCtx); err != nil {
			log.Warn("Failed to close result stores", zap.Error(err))
		}
	}()

	// --- Status server ---
	if cfg.StatusAddr != "" {
		h := handler.NewHandler(captures, log)
		srv, err := server.New(cfg.StatusAddr, router.New(h, m, log), log)
		if err != nil {
			return fmt.Errorf("starting status server: %w", err)
		}
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("Status server shutdown failed", zap.Error(err))
			}
		}()
	}

	// --- Run ---
	snapshotter := usecase.NewSnapshotter(
		cfg,
		chromedp_browser.NewLauncher(log),
		report.New(os.Stdout),
		stores,
		m,
		log,
	)
	runErr := snapshotter.Run(ctx)

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("Failed to write metrics file", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}
	return runErr
}
