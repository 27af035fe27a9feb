// Package main is the entry point for the Spice House storefront server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spicehouse/internal/assets"
	"spicehouse/internal/cache"
	"spicehouse/internal/config"
	"spicehouse/internal/database"
	"spicehouse/internal/events"
	"spicehouse/internal/handlers"
	"spicehouse/internal/logging"
	"spicehouse/internal/mail"
	"spicehouse/internal/middleware"
	"spicehouse/internal/render"
	"spicehouse/internal/router"
	"spicehouse/internal/session"
	"spicehouse/internal/storage"
	"spicehouse/internal/store"
	"spicehouse/web"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON otherwise, optionally
	// mirrored to a rotated file.
	logger, logCloser := logging.New(os.Stdout, logging.Options{
		Dev:   cfg.IsDev(),
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
	defer logCloser.Close()
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"assets", cfg.AssetsBackend,
	)

	branding, err := config.LoadBranding(cfg.BrandingFile)
	if err != nil {
		slog.Error("failed to load branding", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	productStore := store.NewProductStore(db)
	faqStore := store.NewFAQStore(db)
	inquiryStore := store.NewInquiryStore(db)
	orderStore := store.NewOrderStore(db)

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db, productStore); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + API response cache).
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword, 0)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient, cfg.SecureCookies())
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
	// The catalog may have changed since the last run.
	responseCache.InvalidateAll(ctx)

	// Static files: the embedded tree, or a directory on disk.
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		slog.Error("failed to open embedded static files", "error", err)
		os.Exit(1)
	}
	if cfg.AssetsBackend == config.AssetsDir {
		static = os.DirFS(cfg.AssetsDir)
		slog.Info("static files from directory", "dir", cfg.AssetsDir)
	}

	// Product image lookup: the static tree or an S3 bucket.
	checker, assetBase, err := assetChecker(cfg, static)
	if err != nil {
		slog.Error("failed to initialize asset storage", "error", err)
		os.Exit(1)
	}
	resolver := assets.NewResolver(checker)

	renderer, err := render.New(branding, assetBase)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Admin notifications; messages are dropped when SMTP is not configured.
	var mailer handlers.Mailer = mail.Discard{}
	if cfg.MailEnabled() {
		mailer = mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
		slog.Info("smtp configured", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	} else {
		slog.Warn("smtp not configured, admin notifications disabled")
	}
	adminEmail := cfg.AdminEmail
	if adminEmail == "" {
		adminEmail = branding.Email
	}

	// Order events are published only when a broker is configured.
	var orderEvents handlers.OrderEvents = events.Discard{}
	if cfg.AMQPURL != "" {
		publisher, err := events.Dial(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			slog.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		orderEvents = publisher
		slog.Info("order events enabled", "queue", cfg.AMQPQueue)
	}

	// Create handler groups with their dependencies.
	catalog := handlers.NewCatalog(productStore, resolver, cfg.CatalogExcluded)
	h := router.Handlers{
		Site:  handlers.NewSite(renderer, sessionStore, catalog, faqStore),
		Forms: handlers.NewForms(renderer, sessionStore, inquiryStore, mailer, adminEmail),
		Cart:  handlers.NewCart(renderer, sessionStore, productStore, orderStore, orderEvents),
		API:   handlers.NewAPI(catalog, responseCache),
	}

	formLimiter := middleware.NewRateLimiter(cfg.FormRateLimit, time.Minute)
	defer formLimiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, h, router.Options{
		Static:        static,
		FormLimiter:   formLimiter,
		SecureCookies: cfg.SecureCookies(),
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// assetChecker returns the existence checker for product images and the
// URL base the renderer maps resolved paths under.
func assetChecker(cfg *config.Config, static fs.FS) (assets.Checker, string, error) {
	if cfg.AssetsBackend != config.AssetsS3 {
		return assets.NewFSChecker(static), render.StaticPrefix, nil
	}

	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		return nil, "", errors.New("s3 asset backend selected but s3 is not configured")
	}
	slog.Info("product images from s3", "endpoint", cfg.S3Endpoint, "bucket", client.Bucket())
	return client, client.FileURL(""), nil
}
