// Command server exposes Rogue Ace sessions over JSON HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rogueace/internal/app"
	"rogueace/internal/config"
	"rogueace/internal/ports/httpapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	logger, err := newLogger(asBool(os.Getenv("DEBUG")))
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		return err
	}
	store, err := app.NewStore(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         getenv("ROGUEACE_ADDR", ":8080"),
		Handler:      httpapi.NewRouter(store, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.Int("hand_size", cfg.HandSize),
			zap.Int("draw_count", cfg.DrawCount),
			zap.Int64("seed", cfg.Seed))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig starts from ROGUEACE_CONFIG (or the defaults) and applies the ROGUEACE_*
// overrides. lookup is os.Getenv outside tests.
func loadConfig(lookup func(string) string) (config.GameConfig, error) {
	cfg := config.Default()
	if path := strings.TrimSpace(lookup("ROGUEACE_CONFIG")); path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			return config.GameConfig{}, err
		}
		cfg = config.GetGameConfig()
	}
	cfg.HandSize = atoiDef(lookup("ROGUEACE_HAND_SIZE"), cfg.HandSize)
	cfg.DrawCount = atoiDef(lookup("ROGUEACE_DRAW_COUNT"), cfg.DrawCount)
	if s := strings.TrimSpace(lookup("ROGUEACE_SEED")); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return config.GameConfig{}, fmt.Errorf("ROGUEACE_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return config.GameConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
