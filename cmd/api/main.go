package main

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

	"github.com/jaekwang-park/dailytasker/internal/announce"
	cognitopkg "github.com/jaekwang-park/dailytasker/internal/cognito"
	"github.com/jaekwang-park/dailytasker/internal/config"
	"github.com/jaekwang-park/dailytasker/internal/focus"
	apphttp "github.com/jaekwang-park/dailytasker/internal/http"
	"github.com/jaekwang-park/dailytasker/internal/middleware"
	"github.com/jaekwang-park/dailytasker/internal/repository"
	"github.com/jaekwang-park/dailytasker/internal/service"
)

// userResolverAdapter adapts the identity service to the middleware.UserResolver interface.
type userResolverAdapter struct {
	identity *service.IdentityService
}

func (a *userResolverAdapter) ResolveUserID(ctx context.Context, cognitoSub string) (string, error) {
	user, err := a.identity.Resolve(ctx, cognitoSub)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrForbidden) {
			return "", middleware.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}
	return user.ID, nil
}

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	idleTimeout, err := cfg.Focus.ParseIdleTimeout()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"auth_dev_mode", cfg.AuthDevMode,
		"log_level", cfg.LogLevel,
		"redis", cfg.Redis.Enabled(),
	)

	// Database connection
	db, err := repository.NewDB(cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected")

	if cfg.MigrateOnStart {
		version, err := repository.Migrate(db)
		if err != nil {
			return err
		}
		logger.Info("database migrated", "version", version)
	}

	// Repositories
	taskRepo := repository.NewPostgresTask(db)
	userRepo := repository.NewPostgresUser(db)
	var statsRepo repository.StatsRepository = repository.NewPostgresStats(db)

	if cfg.Redis.Enabled() {
		rdb, err := repository.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			// The cache is optional; Postgres stays the source of truth.
			logger.Warn("redis unavailable, stats cache disabled", "error", err)
		} else {
			defer rdb.Close()
			statsRepo = repository.NewCachedStats(statsRepo, rdb, logger)
			logger.Info("stats cache enabled")
		}
	}

	// Services
	statsSvc := service.NewStatsService(statsRepo, taskRepo, time.Now)
	taskSvc := service.NewTaskService(taskRepo, statsSvc, logger)

	announcers := announce.Multi{announce.NewLog(logger)}
	if cfg.Focus.SpeechEnabled {
		speech := announce.NewSpeech()
		if speech.Available() {
			announcers = append(announcers, speech)
		} else {
			logger.Warn("SPEECH_ENABLED set but no speech command found")
		}
	}
	focusSvc := service.NewFocusService(focus.DefaultWorkMinutes, logger,
		service.WithServerAnnouncer(announcers),
		service.WithIdleTimeout(idleTimeout),
	)
	focusSvc.Start()
	defer focusSvc.Close()

	// Identity directory
	var directory cognitopkg.Directory
	if cfg.Cognito.UserPoolID != "" {
		awsDir, err := cognitopkg.NewAWSDirectory(ctx, cfg.Cognito.Region, cfg.Cognito.UserPoolID)
		if err != nil {
			return err
		}
		directory = awsDir
		logger.Info("cognito directory initialized", "region", cfg.Cognito.Region)
	} else {
		logger.Warn("cognito directory not initialized: COGNITO_USER_POOL_ID not set")
	}
	identitySvc := service.NewIdentityService(userRepo, directory, logger)

	// Auth middleware
	authCfg := middleware.AuthConfig{
		DevMode: cfg.AuthDevMode,
	}
	if !cfg.AuthDevMode {
		jwksURL := middleware.CognitoJWKSURL(cfg.Cognito.Region, cfg.Cognito.UserPoolID)
		authCfg.JWKSClient = middleware.NewJWKSClient(jwksURL)
		authCfg.Issuer = middleware.CognitoIssuer(cfg.Cognito.Region, cfg.Cognito.UserPoolID)
		authCfg.AppClientID = cfg.Cognito.AppClientID
		authCfg.UserResolver = &userResolverAdapter{identity: identitySvc}
	}
	auth, err := middleware.NewAuth(authCfg)
	if err != nil {
		return fmt.Errorf("failed to create auth middleware: %w", err)
	}

	// HTTP Server
	srv := apphttp.NewServer(cfg.ServerPort, logger, apphttp.Services{
		Tasks: taskSvc,
		Stats: statsSvc,
		Focus: focusSvc,
		DB:    db,
	}, auth)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
