package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/whisperboard/backend/internal/adapter/postgres"
	"github.com/whisperboard/backend/internal/adapter/postgres/comment"
	"github.com/whisperboard/backend/internal/adapter/postgres/confession"
	"github.com/whisperboard/backend/internal/adapter/postgres/like"
	"github.com/whisperboard/backend/internal/adapter/postgres/report"
	"github.com/whisperboard/backend/internal/auth"
	"github.com/whisperboard/backend/internal/config"
	"github.com/whisperboard/backend/internal/service/feed"
	"github.com/whisperboard/backend/internal/service/ledger"
	"github.com/whisperboard/backend/internal/service/moderation"
	"github.com/whisperboard/backend/internal/transport/middleware"
	"github.com/whisperboard/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and transport, and serves until ctx is
// cancelled. Shutdown is graceful within the configured timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	confessionRepo := confession.New(pool)
	likeRepo := like.New(pool)
	commentRepo := comment.New(pool)
	reportRepo := report.New(pool)
	txManager := postgres.NewTxManager(pool)

	ledgerSvc := ledger.NewService(logger, confessionRepo, likeRepo, commentRepo, reportRepo, txManager, cfg.Content)
	feedSvc := feed.NewService(logger, confessionRepo, likeRepo, commentRepo, cfg.Feed)
	moderationSvc := moderation.NewService(logger, confessionRepo, reportRepo, likeRepo, commentRepo, feedSvc)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(
		rest.NewConfessionHandler(feedSvc, ledgerSvc, logger),
		rest.NewAdminHandler(moderationSvc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
		limiter.Limit(cfg.RateLimit.RequestsPerMinute),
	)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
