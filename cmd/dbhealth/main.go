// Command dbhealth opens the configured database and pings it, for
// deployment smoke checks.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/quotewise/factfinder/internal/common"
	"github.com/quotewise/factfinder/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		logger.Error("DB_URL is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open failed", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database healthy")
}
