package bootstrap

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ivankudzin/tailmates/internal/config"
	"github.com/ivankudzin/tailmates/internal/domain/model"
	"github.com/ivankudzin/tailmates/internal/repo/memory"
	pgrepo "github.com/ivankudzin/tailmates/internal/repo/postgres"
	discoverysvc "github.com/ivankudzin/tailmates/internal/services/discovery"
	likessvc "github.com/ivankudzin/tailmates/internal/services/likes"
	matchessvc "github.com/ivankudzin/tailmates/internal/services/matches"
	notifysvc "github.com/ivankudzin/tailmates/internal/services/notify"
	petssvc "github.com/ivankudzin/tailmates/internal/services/pets"
)

type InteractionStore interface {
	Create(ctx context.Context, in model.Interaction) (model.Interaction, error)
	HasLike(ctx context.Context, actorPetID, targetPetID uuid.UUID) (bool, error)
}

// Storage is the set of repositories behind one storage driver.
type Storage struct {
	Driver       string
	Accounts     notifysvc.ChatResolver
	Pets         petssvc.PetStore
	Interactions InteractionStore
	Matches      matchessvc.MatchStore
	Discovery    discoverysvc.CandidateStore
	Likes        likessvc.LikeStore

	pool *pgxpool.Pool
}

// OpenStorage connects the configured driver. Close must be called when the
// returned Storage is no longer used.
func OpenStorage(ctx context.Context, cfg config.Config, log *zap.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		store.AutoRegisterAccounts()
		return &Storage{
			Driver:       cfg.Storage.Driver,
			Accounts:     store.Accounts(),
			Pets:         store.Pets(),
			Interactions: store.Interactions(),
			Matches:      store.Matches(),
			Discovery:    store.Discovery(),
			Likes:        store.Likes(),
		}, nil
	case config.StorageDriverPostgres:
		pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:       cfg.Storage.Driver,
			Accounts:     pgrepo.NewAccountRepo(pool),
			Pets:         pgrepo.NewPetRepo(pool),
			Interactions: pgrepo.NewInteractionRepo(pool),
			Matches:      pgrepo.NewMatchRepo(pool),
			Discovery:    pgrepo.NewDiscoveryRepo(pool),
			Likes:        pgrepo.NewLikeRepo(pool),
			pool:         pool,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}
