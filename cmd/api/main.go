package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sidelines/sidelines/internal/cache"
	"github.com/sidelines/sidelines/internal/clock"
	"github.com/sidelines/sidelines/internal/config"
	"github.com/sidelines/sidelines/internal/db"
	"github.com/sidelines/sidelines/internal/football"
	"github.com/sidelines/sidelines/internal/scheduler"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		slog.Warn("using the default JWT secret; set JWT_SECRET outside development")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database FIRST
	database, err := db.Connect(cfg.DSN(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Run(cfg.DatabaseURL()); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Warn("redis unavailable, upstream cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer rdb.Close()
			slog.Info("upstream cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		}
	}
	store := cache.New(rdb, cfg.CacheTTL)

	fb := football.NewClient(football.Config{
		FootballDataURL: cfg.FootballAPIURL,
		FootballDataKey: cfg.FootballAPIKey,
		LiveScoresURL:   cfg.LiveScoresAPIURL,
		LiveScoresKey:   cfg.LiveScoresAPIKey,
		LiveScoresHost:  cfg.LiveScoresAPIHost,
		NewsURL:         cfg.NewsAPIURL,
		NewsKey:         cfg.NewsAPIKey,
	}, store, nil, nil)

	if cfg.StandingsRefreshCron != "" && store != nil {
		sched, err := scheduler.New(cfg.StandingsRefreshCron, fb, cfg.StandingsLeagues)
		if err != nil {
			slog.Error("standings warm-up disabled", "error", err)
		} else {
			sched.Start()
			defer sched.Stop()
		}
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("cannot create upload dir", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(ctx, services{db: database, cache: store, football: fb, clock: clock.Real{}}, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "tls", cfg.TLSCertFile != "", "env", cfg.Env)
		if cfg.TLSCertFile != "" {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func setupLogger(format string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
