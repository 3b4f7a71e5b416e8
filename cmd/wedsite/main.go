// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/wedsite-go/internal/cache"
	"github.com/olegiv/wedsite-go/internal/config"
	"github.com/olegiv/wedsite-go/internal/handler"
	"github.com/olegiv/wedsite-go/internal/i18n"
	"github.com/olegiv/wedsite-go/internal/imgurl"
	"github.com/olegiv/wedsite-go/internal/logging"
	"github.com/olegiv/wedsite-go/internal/middleware"
	"github.com/olegiv/wedsite-go/internal/scheduler"
	"github.com/olegiv/wedsite-go/internal/seo"
	"github.com/olegiv/wedsite-go/internal/service"
	"github.com/olegiv/wedsite-go/internal/store"
	"github.com/olegiv/wedsite-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "wedsite - bilingual wedding content backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEDSITE_DB_PATH           SQLite database path (default: ./data/wedsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEDSITE_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEDSITE_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEDSITE_SITE_URL          Public site URL for sitemap links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEDSITE_UPLOADS_DIR       Media uploads directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEDSITE_STORAGE_BASE_URL  Public root for image references\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEDSITE_IMAGE_PROXY_URL   Resizing proxy template with {url} placeholder\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEDSITE_REDIS_URL         Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("wedsite %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	appCache := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	content := service.NewContentService(db, appCache, cacheTTL)
	media := service.NewMediaService(db, cfg.UploadsDir)
	images := imgurl.New(cfg.StorageBaseURL, cfg.ImageProxyURL)

	contentHandler := handler.NewContentHandler(content, images)
	mediaHandler := handler.NewMediaHandler(media)
	healthHandler := handler.NewHealthHandler(db, cfg.UploadsDir)
	seoHandler := handler.NewSEOHandler(store.New(db), appCache, cfg.SiteURL, seo.RobotsConfig{
		SiteURL:     cfg.SiteURL,
		DisallowAll: cfg.IsDevelopment(),
	})

	sched := scheduler.New(content, db, logger)
	sched.OnPublish(seoHandler.InvalidateSitemap)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	r.Get("/healthz", healthHandler.Health)
	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)

	r.Route("/{lang}", func(r chi.Router) {
		r.Use(middleware.Language)
		r.Get("/journal", contentHandler.ListJournals)
		r.Get("/journal/{slug}", contentHandler.GetJournal)
		r.Get("/pages/{slug}", contentHandler.GetPage)
		r.Get("/posts", contentHandler.ListPosts)
		r.Get("/posts/{slug}", contentHandler.GetPost)
		r.Get("/testimonials", contentHandler.ListTestimonials)
	})

	apiLimiter := middleware.NewRateLimiter(2, 5)
	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware())
		r.Post("/media", mediaHandler.Upload)
		r.Delete("/media/{uuid}", mediaHandler.Delete)
	})

	// Serve uploaded files directly in single-instance deployments
	uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		uploadsFS.ServeHTTP(w, req)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
