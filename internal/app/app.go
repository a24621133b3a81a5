// Package app wires configuration, storage, services, and transport into a
// running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/saifdine/mutaallim-backend/internal/adapter/postgres"
	factrepo "github.com/saifdine/mutaallim-backend/internal/adapter/postgres/fact"
	lessonrepo "github.com/saifdine/mutaallim-backend/internal/adapter/postgres/lesson"
	observationrepo "github.com/saifdine/mutaallim-backend/internal/adapter/postgres/observation"
	quotarepo "github.com/saifdine/mutaallim-backend/internal/adapter/postgres/quota"
	userrepo "github.com/saifdine/mutaallim-backend/internal/adapter/postgres/user"
	"github.com/saifdine/mutaallim-backend/internal/auth"
	"github.com/saifdine/mutaallim-backend/internal/config"
	authsvc "github.com/saifdine/mutaallim-backend/internal/service/auth"
	insightsvc "github.com/saifdine/mutaallim-backend/internal/service/insight"
	lessonsvc "github.com/saifdine/mutaallim-backend/internal/service/lesson"
	observationsvc "github.com/saifdine/mutaallim-backend/internal/service/observation"
	quotasvc "github.com/saifdine/mutaallim-backend/internal/service/quota"
	"github.com/saifdine/mutaallim-backend/internal/transport/middleware"
	"github.com/saifdine/mutaallim-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and transport, and serves HTTP until the
// context is cancelled.
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

	users := userrepo.New(pool)
	quotas := quotarepo.New(pool)
	lessons := lessonrepo.New(pool)
	observations := observationrepo.New(pool)
	facts := factrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, cfg.Auth, users, jwtManager)
	quotaService := quotasvc.NewService(logger, cfg.Quota, quotas)
	insightService := insightsvc.NewService(logger, cfg.Insight, observations, facts, lessons)
	lessonService := lessonsvc.NewService(logger, lessons, quotaService, insightService)
	observationService := observationsvc.NewService(logger, observations, tx)

	router := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(pool, BuildVersion()),
		Auth:        rest.NewAuthHandler(authService, logger),
		Lesson:      rest.NewLessonHandler(lessonService, logger),
		Observation: rest.NewObservationHandler(observationService, logger),
		Quota:       rest.NewQuotaHandler(quotaService, logger),
		Insight:     rest.NewInsightHandler(insightService, logger),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(authService),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped cleanly")
	return nil
}
