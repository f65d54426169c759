package likes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/model"
)

const listLimit = 100

var ErrValidation = errors.New("validation error")

type LikeStore interface {
	ListReceivedPending(ctx context.Context, petID uuid.UUID, limit int) ([]model.LikedPet, error)
	ListSentPending(ctx context.Context, petID uuid.UUID, limit int) ([]model.LikedPet, error)
}

type PetLookup interface {
	RequireOwned(ctx context.Context, id uuid.UUID, accountID int64) (model.Pet, error)
}

type Service struct {
	store LikeStore
	pets  PetLookup
}

func NewService(store LikeStore, pets PetLookup) *Service {
	return &Service{store: store, pets: pets}
}

// Received lists pets that liked petID and are still waiting for an answer.
func (s *Service) Received(ctx context.Context, petID uuid.UUID, accountID int64) ([]model.LikedPet, error) {
	if err := s.authorize(ctx, petID, accountID); err != nil {
		return nil, err
	}

	items, err := s.store.ListReceivedPending(ctx, petID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list received likes: %w", err)
	}
	return items, nil
}

// Sent lists pets petID liked that have not turned into a match. A PASS on
// the other side is not revealed.
func (s *Service) Sent(ctx context.Context, petID uuid.UUID, accountID int64) ([]model.LikedPet, error) {
	if err := s.authorize(ctx, petID, accountID); err != nil {
		return nil, err
	}

	items, err := s.store.ListSentPending(ctx, petID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list sent likes: %w", err)
	}
	return items, nil
}

func (s *Service) authorize(ctx context.Context, petID uuid.UUID, accountID int64) error {
	if petID == uuid.Nil || accountID <= 0 {
		return ErrValidation
	}
	if s.store == nil || s.pets == nil {
		return fmt.Errorf("likes dependencies are not configured")
	}
	_, err := s.pets.RequireOwned(ctx, petID, accountID)
	return err
}
