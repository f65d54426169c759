package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ivankudzin/tailmates/internal/app/bootstrap"
	"github.com/ivankudzin/tailmates/internal/config"
	"github.com/ivankudzin/tailmates/internal/infra/logger"
	"github.com/ivankudzin/tailmates/internal/jobs/reconcile"
	matchessvc "github.com/ivankudzin/tailmates/internal/services/matches"
	petssvc "github.com/ivankudzin/tailmates/internal/services/pets"
)

func main() {
	once := flag.Bool("once", false, "run a single reconcile pass and exit")
	flag.Parse()

	os.Exit(run(*once))
}

// run returns the process exit code so deferred cleanup finishes before exit.
func run(once bool) int {
	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, "reconcile")
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Error("open storage", zap.Error(err))
		return 1
	}
	defer storage.Close()

	notifications := bootstrap.BuildNotifications(cfg, storage, log)
	defer func() {
		if err := notifications.Close(); err != nil {
			log.Warn("close notifications", zap.Error(err))
		}
	}()

	matches := matchessvc.NewService(matchessvc.Dependencies{
		Likes:    storage.Interactions,
		Matches:  storage.Matches,
		Pets:     petssvc.NewService(storage.Pets),
		Notifier: notifications.Safe,
		Logger:   log.Named("matches"),
	})
	job := reconcile.New(matches, cfg.Jobs.ReconcileInterval, cfg.Jobs.ReconcileBatch, log)

	if once {
		created, err := job.RunOnce(ctx)
		if err != nil {
			log.Error("reconcile pass failed", zap.Error(err))
			return 1
		}
		log.Info("reconcile pass finished", zap.Int("created", created))
		return 0
	}

	log.Info("reconcile job started", zap.Duration("interval", cfg.Jobs.ReconcileInterval))
	if err := job.Run(ctx); err != nil {
		log.Error("reconcile job stopped", zap.Error(err))
		return 1
	}
	return 0
}
