// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vorokhovskii-creator/felix-hub/internal/auth"
	"github.com/vorokhovskii-creator/felix-hub/internal/cache"
	"github.com/vorokhovskii-creator/felix-hub/internal/catalog"
	"github.com/vorokhovskii-creator/felix-hub/internal/catalogapi"
	"github.com/vorokhovskii-creator/felix-hub/internal/config"
	"github.com/vorokhovskii-creator/felix-hub/internal/handler"
	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/logging"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
	"github.com/vorokhovskii-creator/felix-hub/internal/render"
	"github.com/vorokhovskii-creator/felix-hub/internal/session"
	"github.com/vorokhovskii-creator/felix-hub/internal/version"
	"github.com/vorokhovskii-creator/felix-hub/web"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	hashPassword := flag.String("hash-password", "", "Print an argon2id hash for FELIX_ADMIN_PASSWORD_HASH and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Felix Hub - parts catalog admin console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FELIX_API_BASE_URL         Catalog REST API base URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FELIX_API_TOKEN            Bearer token for the catalog API (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FELIX_SESSION_SECRET       Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FELIX_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FELIX_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FELIX_SESSION_STORE        Session store: memory|sqlite|redis (default: memory)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FELIX_REDIS_URL            Redis URL for sessions and list snapshots (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FELIX_ADMIN_PASSWORD_HASH  Admin password hash; empty disables login (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(version.Get().String())
		os.Exit(0)
	}

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "hashing password: %v\n", err)
			os.Exit(1)
		}
		_, _ = fmt.Println(hash)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.SlogLevel())
	slog.SetDefault(logger)

	info := version.Get()
	slog.Info("starting felixhub", "version", info.Version, "commit", info.GitCommit, "env", cfg.Env)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n system initialized", "languages", i18n.SupportedLanguages, "default", i18n.DefaultLanguage)

	sessionManager, closeSessions, err := session.New(session.Config{
		Store:    cfg.SessionStore,
		DBPath:   cfg.SessionDBPath,
		RedisURL: cfg.RedisURL,
		IsDev:    cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing sessions: %w", err)
	}
	defer func() {
		if err := closeSessions(); err != nil {
			slog.Error("error closing session store", "error", err)
		}
	}()
	slog.Info("session manager initialized", "store", cfg.SessionStore)

	snapshots := newSnapshotCache(cfg)
	defer func() {
		if err := snapshots.Close(); err != nil {
			slog.Error("error closing snapshot cache", "error", err)
		}
	}()

	api := catalogapi.New(catalogapi.Options{
		BaseURL:   cfg.APIBaseURL,
		Token:     cfg.APIToken,
		RateLimit: cfg.APIRateLimit,
		Logger:    logger,
	})
	slog.Info("catalog API client initialized", "base_url", cfg.APIBaseURL, "rate_limit", cfg.APIRateLimit)

	registry := catalog.NewRegistry(api, snapshots, cfg.SnapshotTTL, logger)
	bus := i18n.NewBus()
	registry.Subscribe(bus)
	defer registry.Close()
	switcher := i18n.NewSwitcher(api, bus, logger)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		AlertDuration:  cfg.AlertDuration,
		LoginRequired:  cfg.LoginRequired(),
		Version:        info.Version,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	admin, err := auth.NewAdmin(cfg.AdminUsername, cfg.AdminPasswordHash)
	if err != nil {
		return fmt.Errorf("initializing admin login: %w", err)
	}
	if admin == nil {
		slog.Warn("FELIX_ADMIN_PASSWORD_HASH is empty; the console is open without login")
	}

	lpConfig := middleware.DefaultLoginProtectionConfig()
	loginProtection := middleware.NewLoginProtection(lpConfig)
	defer loginProtection.Close()
	slog.Info("login protection initialized",
		"ip_rate_limit", lpConfig.IPRateLimit,
		"max_failed_attempts", lpConfig.MaxFailedAttempts,
		"lockout_duration", lpConfig.LockoutDuration,
	)

	router, err := newRouter(routerDeps{
		sessionManager:  sessionManager,
		admin:           admin,
		loginProtection: loginProtection,
		csrfKey:         []byte(cfg.SessionSecret),
		isDev:           cfg.IsDevelopment(),
		addr:            cfg.ServerAddr(),
		adminHandler:    handler.NewAdminHandler(registry, renderer, sessionManager, logger),
		authHandler:     handler.NewAuthHandler(admin, renderer, sessionManager, loginProtection, logger),
		languageHandler: handler.NewLanguageHandler(switcher, renderer, sessionManager, !cfg.IsDevelopment(), logger),
		healthHandler:   handler.NewHealthHandler(api, snapshots, info.Version),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newSnapshotCache returns the list snapshot cache. Redis is used when
// configured and reachable; otherwise snapshots stay in process memory.
func newSnapshotCache(cfg *config.Config) cache.Cache {
	cacheCfg := cache.Config{
		Type:       cache.TypeMemory,
		RedisURL:   cfg.RedisURL,
		Prefix:     "felix:snapshot:",
		DefaultTTL: cfg.SnapshotTTL,
		MaxEntries: 10000,
	}
	if cfg.UseRedis() {
		cacheCfg.Type = cache.TypeRedis
	}

	c, err := cache.New(cacheCfg)
	if err != nil {
		slog.Warn("snapshot cache: redis unavailable, using memory", "error", err)
		cacheCfg.Type = cache.TypeMemory
		c, _ = cache.New(cacheCfg)
		return c
	}
	slog.Info("snapshot cache initialized", "backend", cacheCfg.Type)
	return c
}
