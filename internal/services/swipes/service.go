package swipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
	"github.com/ivankudzin/tailmates/internal/domain/model"
	matchessvc "github.com/ivankudzin/tailmates/internal/services/matches"
	petssvc "github.com/ivankudzin/tailmates/internal/services/pets"
)

type InteractionStore interface {
	Create(ctx context.Context, in model.Interaction) (model.Interaction, error)
}

type PetLookup interface {
	Get(ctx context.Context, id uuid.UUID) (model.Pet, error)
	RequireOwned(ctx context.Context, id uuid.UUID, accountID int64) (model.Pet, error)
}

type Reconciler interface {
	ReconcileMatch(ctx context.Context, actorPetID, targetPetID uuid.UUID) (matchessvc.Result, error)
}

type RateLimiter interface {
	AllowSwipe(ctx context.Context, accountID int64) (int64, bool, error)
}

type Notifier interface {
	MatchCreated(ctx context.Context, match model.Match)
	LikeReceived(ctx context.Context, actorPetID, targetPetID uuid.UUID)
}

type Input struct {
	AccountID   int64
	ActorPetID  uuid.UUID
	TargetPetID uuid.UUID
	Action      string
}

type Result struct {
	Interaction model.Interaction
	IsMatch     bool
	Match       *model.Match
}

type Service struct {
	interactions InteractionStore
	pets         PetLookup
	reconciler   Reconciler
	rateLimiter  RateLimiter
	notifier     Notifier
	logger       *zap.Logger
	now          func() time.Time
	newID        func() uuid.UUID
}

type Dependencies struct {
	Interactions InteractionStore
	Pets         PetLookup
	Reconciler   Reconciler
	RateLimiter  RateLimiter
	Notifier     Notifier
	Logger       *zap.Logger
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		interactions: deps.Interactions,
		pets:         deps.Pets,
		reconciler:   deps.Reconciler,
		rateLimiter:  deps.RateLimiter,
		notifier:     deps.Notifier,
		logger:       logger,
		now:          time.Now,
		newID:        uuid.New,
	}
}

// Swipe records one interaction and, for a LIKE, reconciles the pair.
// Notifications run after the writes and never change the result. When the
// reconcile step fails the interaction stays committed; the reconcile job
// picks the pair up later.
func (s *Service) Swipe(ctx context.Context, in Input) (Result, error) {
	action, err := validate(in)
	if err != nil {
		return Result{}, err
	}
	if s.reconciler == nil {
		return Result{}, fmt.Errorf("swipe dependencies are not configured")
	}

	actor, target, err := s.resolvePets(ctx, in)
	if err != nil {
		return Result{}, err
	}

	// Only swipes that passed the ownership checks count against the limit.
	if err := s.checkRate(ctx, in.AccountID); err != nil {
		return Result{}, err
	}

	interaction, err := s.persist(ctx, actor, target, action)
	if err != nil {
		return Result{}, err
	}

	result := Result{Interaction: interaction}
	if !action.IsPositive() {
		return result, nil
	}

	if s.notifier != nil {
		s.notifier.LikeReceived(ctx, interaction.ActorPetID, interaction.TargetPetID)
	}

	reconciled, err := s.reconciler.ReconcileMatch(ctx, interaction.ActorPetID, interaction.TargetPetID)
	if err != nil {
		s.logger.Error("reconcile after swipe failed",
			zap.String("interaction_id", interaction.ID.String()),
			zap.String("actor_pet_id", interaction.ActorPetID.String()),
			zap.String("target_pet_id", interaction.TargetPetID.String()),
			zap.Error(err),
		)
		return Result{}, fmt.Errorf("reconcile match: %w", err)
	}
	if !reconciled.IsMatch {
		return result, nil
	}

	match := reconciled.Match
	result.IsMatch = true
	result.Match = &match
	if reconciled.Created && s.notifier != nil {
		s.notifier.MatchCreated(ctx, match)
	}
	return result, nil
}

// RecordInteraction validates and persists a single interaction without any
// side effect beyond the write.
func (s *Service) RecordInteraction(ctx context.Context, in Input) (model.Interaction, error) {
	action, err := validate(in)
	if err != nil {
		return model.Interaction{}, err
	}

	actor, target, err := s.resolvePets(ctx, in)
	if err != nil {
		return model.Interaction{}, err
	}
	return s.persist(ctx, actor, target, action)
}

// resolvePets loads the actor pet owned by the caller and the target pet.
func (s *Service) resolvePets(ctx context.Context, in Input) (model.Pet, model.Pet, error) {
	if s.interactions == nil || s.pets == nil {
		return model.Pet{}, model.Pet{}, fmt.Errorf("swipe dependencies are not configured")
	}

	actor, err := s.pets.RequireOwned(ctx, in.ActorPetID, in.AccountID)
	if err != nil {
		return model.Pet{}, model.Pet{}, err
	}
	target, err := s.pets.Get(ctx, in.TargetPetID)
	if err != nil {
		return model.Pet{}, model.Pet{}, err
	}
	if actor.OwnerAccountID == target.OwnerAccountID {
		return model.Pet{}, model.Pet{}, ErrSelfOwned
	}
	return actor, target, nil
}

func (s *Service) persist(ctx context.Context, actor, target model.Pet, action enums.SwipeAction) (model.Interaction, error) {
	stored, err := s.interactions.Create(ctx, model.Interaction{
		ID:          s.newID(),
		ActorPetID:  actor.ID,
		TargetPetID: target.ID,
		Action:      action,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInteractionExists):
			return model.Interaction{}, ErrDuplicateInteraction
		case errors.Is(err, model.ErrPetNotFound):
			return model.Interaction{}, petssvc.ErrNotFound
		case errors.Is(err, model.ErrConstraintViolation):
			return model.Interaction{}, fmt.Errorf("%w: %v", ErrValidation, err)
		default:
			return model.Interaction{}, fmt.Errorf("record interaction: %w", err)
		}
	}
	return stored, nil
}

func (s *Service) checkRate(ctx context.Context, accountID int64) error {
	if s.rateLimiter == nil {
		return nil
	}

	retryAfter, allowed, err := s.rateLimiter.AllowSwipe(ctx, accountID)
	if err != nil {
		s.logger.Warn("swipe rate limiter unavailable", zap.Int64("account_id", accountID), zap.Error(err))
		return nil
	}
	if !allowed {
		return TooFastError{RetryAfterSec: retryAfter}
	}
	return nil
}

func validate(in Input) (enums.SwipeAction, error) {
	if in.AccountID <= 0 || in.ActorPetID == uuid.Nil || in.TargetPetID == uuid.Nil {
		return "", ErrValidation
	}
	if in.ActorPetID == in.TargetPetID {
		return "", fmt.Errorf("%w: actor and target must differ", ErrValidation)
	}
	action, ok := enums.ParseSwipeAction(in.Action)
	if !ok {
		return "", ErrInvalidAction
	}
	return action, nil
}
