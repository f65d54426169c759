package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ivankudzin/tailmates/internal/config"
	"github.com/ivankudzin/tailmates/internal/infra/logger"
	pgrepo "github.com/ivankudzin/tailmates/internal/repo/postgres"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, "migrate")
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	if cfg.Storage.Driver != config.StorageDriverPostgres {
		log.Info("storage driver has no schema, nothing to migrate", zap.String("driver", cfg.Storage.Driver))
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	applied, err := pgrepo.Migrate(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("apply migrations", zap.Error(err))
		return 1
	}
	log.Info("migrations applied", zap.Int64s("versions", applied))
	return 0
}
