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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/forgo/clubhub/api/internal/config"
	"github.com/forgo/clubhub/api/internal/database"
	"github.com/forgo/clubhub/api/internal/database/migrations"
	"github.com/forgo/clubhub/api/internal/handler"
	"github.com/forgo/clubhub/api/internal/middleware"
	"github.com/forgo/clubhub/api/internal/repository"
	"github.com/forgo/clubhub/api/internal/service"
	"github.com/forgo/clubhub/api/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load(getEnv("CONFIG_FILE", "config.yaml"))
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize tracing
	tracerProvider, shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		slog.Error("failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Tracing.Enabled {
		slog.Info("tracing enabled",
			slog.String("endpoint", cfg.Tracing.Endpoint),
			slog.Float64("sample_ratio", cfg.Tracing.SampleRatio),
		)
	}

	if cfg.Database.AutoMigrate {
		if err := migrate(ctx, cfg.Database.URL); err != nil {
			slog.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Initialize database connection
	db := database.NewPostgres(database.Config{
		URL:            cfg.Database.URL,
		MaxConns:       int32(cfg.Database.MaxConns),
		MinConns:       int32(cfg.Database.MinConns),
		ConnectTimeout: cfg.Database.ConnectTimeout,
		TracerProvider: tracerProvider,
	})
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database", slog.Int("max_conns", cfg.Database.MaxConns))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	eventRepo := repository.NewEventRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   userRepo,
		MemberRepo: memberRepo,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	clubService := service.NewClubService(service.ClubServiceConfig{
		ClubRepo:            clubRepo,
		MemberRepo:          memberRepo,
		UserRepo:            userRepo,
		AnnouncementRepo:    announcementRepo,
		EventRepo:           eventRepo,
		AnnouncementPreview: cfg.Clubs.AnnouncementPreview,
		Concurrency:         cfg.Clubs.Concurrency,
	})
	membershipService := service.NewMembershipService(clubRepo, userRepo, memberRepo)
	announcementService := service.NewAnnouncementService(announcementRepo, clubRepo)
	eventService := service.NewEventService(eventRepo, clubRepo)
	userService := service.NewUserService(service.UserServiceConfig{
		UserRepo:   userRepo,
		MemberRepo: memberRepo,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	statsService := service.NewStatsService(statsRepo)

	// Initialize handlers
	handlers := &handler.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Clubs:         handler.NewClubHandler(clubService),
		Memberships:   handler.NewMembershipHandler(membershipService),
		Announcements: handler.NewAnnouncementHandler(announcementService),
		Events:        handler.NewEventHandler(eventService),
		Users:         handler.NewUserHandler(userService),
		Stats:         handler.NewStatsHandler(statsService),
		Health:        handler.NewHealthHandler(db, 0),
	}

	// Global middleware
	stack := middleware.StackConfig{
		TrustProxy:     cfg.Server.TrustProxy,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		stack.Metrics = middleware.NewMetrics(registry)
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	if cfg.RateLimitEnabled() {
		stack.RateLimiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RPS:   cfg.RateLimit.RPS,
			Burst: cfg.RateLimit.Burst,
		})
	}

	var router http.Handler = handler.NewRouter(handlers, handler.RouterOptions{
		Middlewares: []middleware.Middleware{middleware.Stack(stack)},
		Metrics:     metricsHandler,
	})
	if cfg.Tracing.Enabled {
		router = otelhttp.NewHandler(router, "http.server", otelhttp.WithTracerProvider(tracerProvider))
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("failed to flush traces", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

// migrate applies pending schema migrations before the pool is opened.
func migrate(ctx context.Context, dsn string) error {
	bunDB := migrations.Open(dsn)
	defer func() { _ = bunDB.Close() }()

	group, err := migrations.Up(ctx, bunDB)
	if err != nil {
		return err
	}
	if group.IsZero() {
		slog.Info("database schema up to date")
		return nil
	}
	slog.Info("applied migrations", slog.String("group", group.String()))
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
