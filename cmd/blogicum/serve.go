package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"blogicum/internal/config"
	"blogicum/internal/handler"
	"blogicum/internal/infrastructure/database"
	"blogicum/internal/logger"
	"blogicum/internal/metrics"
	"blogicum/internal/repository"
	"blogicum/internal/service"
	"blogicum/internal/validator"
)

func newServeCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(autoMigrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)

	if autoMigrate || cfg.AutoMigrate {
		logger.Info("Applying migrations", slog.String("dir", cfg.MigrationsDir))
		if err := database.Migrate(poolConfig(cfg), cfg.MigrationsDir); err != nil {
			return err
		}
	}

	pool, err := database.NewPostgres(context.Background(), poolConfig(cfg))
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		return err
	}

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize repositories
	userRepo := repository.NewPostgresUserRepository(pool)
	categoryRepo := repository.NewPostgresCategoryRepository(pool)
	locationRepo := repository.NewPostgresLocationRepository(pool)
	postRepo := repository.NewPostgresPostRepository(pool)
	commentRepo := repository.NewPostgresCommentRepository(pool)
	sessionRepo := repository.NewPostgresSessionRepository(pool)

	// Initialize validator
	v := validator.NewValidator()

	// Initialize services
	blogService := service.NewBlogService(postRepo, commentRepo, categoryRepo, locationRepo, userRepo)
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL)
	authService.StartSessionSweeper(time.Hour)

	// Initialize handlers and router
	handlers := handler.Handlers{
		Blog:    handler.NewBlogHandler(blogService, v, cfg.MediaDir),
		Profile: handler.NewProfileHandler(blogService, authService, v),
		Auth:    handler.NewAuthHandler(authService, v, cfg.SessionCookie, cfg.SessionTTL, cfg.SecureCookies),
		Pages:   handler.NewPagesHandler(),
		Health:  handler.NewHealthHandler(pool),
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(cfg, authService, handlers)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Stop the session sweeper before closing the pool
	authService.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
	return nil
}

func poolConfig(cfg *config.Config) database.PoolConfig {
	return database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	}
}
