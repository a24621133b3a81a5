// Command quota-reset advances every overdue weekly quota window and zeroes
// its usage. It is intended to be invoked by an external cron job, not as an
// in-process goroutine; the lazy per-user reset covers the gap between runs.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/saifdine/mutaallim-backend/internal/adapter/postgres"
	quotarepo "github.com/saifdine/mutaallim-backend/internal/adapter/postgres/quota"
	"github.com/saifdine/mutaallim-backend/internal/app"
	"github.com/saifdine/mutaallim-backend/internal/config"
	quotasvc "github.com/saifdine/mutaallim-backend/internal/service/quota"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := quotasvc.NewService(logger, cfg.Quota, quotarepo.New(pool))

	reset, err := svc.ResetDueQuotas(ctx)
	if err != nil {
		logger.Error("quota sweep failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("quota sweep completed", slog.Int64("reset", reset))
}
