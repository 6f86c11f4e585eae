// Package main implements the Bimmerhuolto API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/bimmerhuolto/backend/engine/chat"
	"github.com/bimmerhuolto/backend/engine/fallback"
	"github.com/bimmerhuolto/backend/engine/knowledge"
	"github.com/bimmerhuolto/backend/engine/registry"
	"github.com/bimmerhuolto/backend/engine/resolve"
	"github.com/bimmerhuolto/backend/pkg/cache"
	"github.com/bimmerhuolto/backend/pkg/events"
	"github.com/bimmerhuolto/backend/pkg/fn"
	"github.com/bimmerhuolto/backend/pkg/mid"
)

// Config holds all environment-based configuration.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// NATSURL is optional; without it resolution and chat events are
	// simply not published.
	NATSURL string `env:"NATS_URL"`

	RegistryURL     string        `env:"REGISTRY_URL"`
	ScrapeInterval  time.Duration `env:"SCRAPE_MIN_INTERVAL" envDefault:"2s"`
	ScrapeTimeout   time.Duration `env:"SCRAPE_TIMEOUT" envDefault:"30s"`
	ScraperHeadless bool          `env:"SCRAPER_HEADLESS" envDefault:"true"`

	FallbackURL     string        `env:"FALLBACK_API_URL"`
	FallbackAPIKey  string        `env:"FALLBACK_API_KEY"`
	FallbackTimeout time.Duration `env:"FALLBACK_TIMEOUT" envDefault:"10s"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
	StaticDir  string `env:"STATIC_DIR" envDefault:"web"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		logger.Error("parse config", "err", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Connect to Redis ---
	storeRes := fn.Retry(ctx, fn.DefaultRetry, func(ctx context.Context) fn.Result[*cache.Store] {
		return fn.FromPair(cache.Connect(ctx, cfg.RedisURL, logger))
	})
	store, err := storeRes.Unwrap()
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer store.Close()

	// --- Start the registry browser ---
	regCfg := registry.DefaultConfig()
	if cfg.RegistryURL != "" {
		regCfg.URL = cfg.RegistryURL
	}
	regCfg.MinInterval = cfg.ScrapeInterval
	regCfg.Timeout = cfg.ScrapeTimeout
	regCfg.Headless = cfg.ScraperHeadless

	scraper, err := registry.Start(ctx, regCfg, logger)
	if err != nil {
		return fmt.Errorf("start registry scraper: %w", err)
	}
	defer scraper.Close()

	// --- Fallback API client ---
	fbCfg := fallback.DefaultConfig()
	if cfg.FallbackURL != "" {
		fbCfg.BaseURL = cfg.FallbackURL
	}
	fbCfg.APIKey = cfg.FallbackAPIKey
	fbCfg.Timeout = cfg.FallbackTimeout
	fb := fallback.New(fbCfg, logger)

	// --- Optional NATS event publisher ---
	var pub *events.Publisher
	if cfg.NATSURL != "" {
		pub, err = events.Connect(cfg.NATSURL, logger)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		defer pub.Close()
	}

	// --- Domain services ---
	kb := knowledge.New(knowledge.DefaultBMW(), store, logger)
	resolver := resolve.New(store, scraper, fb, kb, pub, logger)
	responder := chat.New(store, resolver, pub, logger)

	// --- Build HTTP server ---
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handleHealth(store))
	mux.HandleFunc("POST /api/chat", handleChat(responder, logger))
	mux.HandleFunc("GET /api/chat/sessions/{id}", handleSession(responder))
	mux.HandleFunc("GET /api/vehicles/{reg}", handleVehicle(resolver, logger))
	mux.HandleFunc("GET /api/stats/popular", handlePopular(store))

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.RequestID(),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.OTel("bimmerhuolto-api"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
