package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ivankudzin/tailmates/internal/domain/model"
)

// Dispatcher is told about matching events after they are committed.
// Implementations must not assume they are called exactly once per event
// across process restarts.
type Dispatcher interface {
	OnMatchCreated(ctx context.Context, match model.Match) error
	OnLikeReceived(ctx context.Context, actorPetID, targetPetID uuid.UUID) error
}

type Nop struct{}

func (Nop) OnMatchCreated(context.Context, model.Match) error            { return nil }
func (Nop) OnLikeReceived(context.Context, uuid.UUID, uuid.UUID) error { return nil }

// Fanout calls every dispatcher in order and joins their errors.
type Fanout []Dispatcher

func (f Fanout) OnMatchCreated(ctx context.Context, match model.Match) error {
	var errs []error
	for _, d := range f {
		if d == nil {
			continue
		}
		if err := d.OnMatchCreated(ctx, match); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) OnLikeReceived(ctx context.Context, actorPetID, targetPetID uuid.UUID) error {
	var errs []error
	for _, d := range f {
		if d == nil {
			continue
		}
		if err := d.OnLikeReceived(ctx, actorPetID, targetPetID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Safe wraps a dispatcher so failures are logged and swallowed. Matching
// state is already committed when it runs.
type Safe struct {
	next   Dispatcher
	logger *zap.Logger
}

func NewSafe(next Dispatcher, logger *zap.Logger) *Safe {
	if next == nil {
		next = Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Safe{next: next, logger: logger}
}

func (s *Safe) MatchCreated(ctx context.Context, match model.Match) {
	if err := s.next.OnMatchCreated(ctx, match); err != nil {
		s.logger.Warn("match notification failed",
			zap.String("match_id", match.ID.String()),
			zap.String("pet_low", match.PetLow.String()),
			zap.String("pet_high", match.PetHigh.String()),
			zap.Error(err),
		)
	}
}

func (s *Safe) LikeReceived(ctx context.Context, actorPetID, targetPetID uuid.UUID) {
	if err := s.next.OnLikeReceived(ctx, actorPetID, targetPetID); err != nil {
		s.logger.Warn("like notification failed",
			zap.String("actor_pet_id", actorPetID.String()),
			zap.String("target_pet_id", targetPetID.String()),
			zap.Error(err),
		)
	}
}
