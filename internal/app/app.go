package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assessment-genie/internal/config"
	"assessment-genie/internal/database"
	"assessment-genie/internal/handler"
	"assessment-genie/internal/middleware"
	"assessment-genie/internal/oauth"
	"assessment-genie/internal/repository"
	"assessment-genie/internal/router"
	"assessment-genie/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	blueprintRepo := repository.NewBlueprintRepository(pool)
	topicRepo := repository.NewTopicRequestRepository(pool)
	slog.Info("database ready")

	authService := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL, cfg.AdminEmailDomain, userRepo)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	googleVerifier := oauth.NewGoogleVerifier(cfg.GoogleUserinfoURL)
	authHandler := handler.NewAuthHandler(authService, googleVerifier)

	blueprintService := service.NewBlueprintService(blueprintRepo)
	blueprintHandler := handler.NewBlueprintHandler(blueprintService)

	topicService := service.NewTopicService(topicRepo)
	topicHandler := handler.NewTopicHandler(topicService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:      authHandler,
		Blueprint: blueprintHandler,
		Topic:     topicHandler,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.db.Close()

	slog.Info("server stopped")
	return nil
}
