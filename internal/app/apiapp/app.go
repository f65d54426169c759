package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ivankudzin/tailmates/internal/app/bootstrap"
	"github.com/ivankudzin/tailmates/internal/config"
	redrepo "github.com/ivankudzin/tailmates/internal/repo/redis"
	authsvc "github.com/ivankudzin/tailmates/internal/services/auth"
	discoverysvc "github.com/ivankudzin/tailmates/internal/services/discovery"
	likessvc "github.com/ivankudzin/tailmates/internal/services/likes"
	matchessvc "github.com/ivankudzin/tailmates/internal/services/matches"
	petssvc "github.com/ivankudzin/tailmates/internal/services/pets"
	ratesvc "github.com/ivankudzin/tailmates/internal/services/rate"
	swipesvc "github.com/ivankudzin/tailmates/internal/services/swipes"
	"github.com/ivankudzin/tailmates/internal/transport/http/handlers"
)

type App struct {
	cfg           config.Config
	logger        *zap.Logger
	server        *http.Server
	storage       *bootstrap.Storage
	notifications *bootstrap.Notifications
	redis         *goredis.Client
	httpRouter    http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	notifications := bootstrap.BuildNotifications(cfg, storage, log)

	var (
		redisClient *goredis.Client
		rateLimiter swipesvc.RateLimiter
	)
	if cfg.Redis.Addr != "" {
		redisClient = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redrepo.Ping(ctx, redisClient); err != nil {
			log.Warn("redis unavailable at startup, swipe limits fail open until it recovers", zap.Error(err))
		}
		rateLimiter = ratesvc.NewLimiter(
			redrepo.NewRateRepo(redisClient),
			cfg.Swipes.RatePerMinute,
			cfg.Swipes.RatePer10Seconds,
		)
	} else {
		log.Warn("redis is not configured, swipe rate limiting disabled")
	}

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	petService := petssvc.NewService(storage.Pets)
	matchService := matchessvc.NewService(matchessvc.Dependencies{
		Likes:    storage.Interactions,
		Matches:  storage.Matches,
		Pets:     petService,
		Notifier: notifications.Safe,
		Logger:   log.Named("matches"),
	})
	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		Interactions: storage.Interactions,
		Pets:         petService,
		Reconciler:   matchService,
		RateLimiter:  rateLimiter,
		Notifier:     notifications.Safe,
		Logger:       log.Named("swipes"),
	})

	checks := map[string]handlers.Pinger{"storage": storage.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redrepo.Ping(ctx, redisClient)
		}
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, cfg.HTTP.RequestTimeout, log)
	RegisterRoutes(r, Dependencies{
		JWTManager:       jwtManager,
		PetService:       petService,
		SwipeService:     swipeService,
		DiscoveryService: discoverysvc.NewService(storage.Discovery, petService),
		MatchService:     matchService,
		LikeService:      likessvc.NewService(storage.Likes, petService),
		HealthChecks:     checks,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:           cfg,
		logger:        log,
		server:        server,
		storage:       storage,
		notifications: notifications,
		redis:         redisClient,
		httpRouter:    r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started",
		zap.String("addr", a.cfg.HTTP.Addr),
		zap.String("storage", a.storage.Driver),
	)
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if err := a.notifications.Close(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}
	a.storage.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
