package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
	"github.com/ivankudzin/tailmates/internal/domain/model"
	"github.com/ivankudzin/tailmates/internal/pkg/validate"
)

const (
	maxNameLen = 64
	maxAttrLen = 64
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("pet not found")
	ErrNotOwned   = errors.New("pet is not owned by account")
)

type PetStore interface {
	Create(ctx context.Context, pet model.Pet) (model.Pet, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Pet, error)
	ListByOwner(ctx context.Context, ownerAccountID int64) ([]model.Pet, error)
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string
	City    string
}

type Service struct {
	store PetStore
	now   func() time.Time
	newID func() uuid.UUID
}

func NewService(store PetStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.New,
	}
}

func (s *Service) Create(ctx context.Context, ownerAccountID int64, input CreateInput) (model.Pet, error) {
	if ownerAccountID <= 0 {
		return model.Pet{}, ErrValidation
	}
	if !validate.Required(input.Name) || !validate.MaxRunes(input.Name, maxNameLen) {
		return model.Pet{}, fmt.Errorf("%w: name must be 1..%d characters", ErrValidation, maxNameLen)
	}
	if !validate.MaxRunes(input.Breed, maxAttrLen) || !validate.MaxRunes(input.City, maxAttrLen) {
		return model.Pet{}, fmt.Errorf("%w: breed and city must be at most %d characters", ErrValidation, maxAttrLen)
	}
	species, ok := enums.ParseSpecies(input.Species)
	if !ok {
		return model.Pet{}, fmt.Errorf("%w: unsupported species %q", ErrValidation, input.Species)
	}
	if s.store == nil {
		return model.Pet{}, fmt.Errorf("pet store is nil")
	}

	pet, err := s.store.Create(ctx, model.Pet{
		ID:             s.newID(),
		OwnerAccountID: ownerAccountID,
		Name:           strings.TrimSpace(input.Name),
		Species:        species,
		Breed:          strings.TrimSpace(input.Breed),
		City:           strings.TrimSpace(input.City),
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return model.Pet{}, fmt.Errorf("%w: unknown owner account", ErrValidation)
		}
		return model.Pet{}, err
	}
	return pet, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerAccountID int64) ([]model.Pet, error) {
	if ownerAccountID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("pet store is nil")
	}
	return s.store.ListByOwner(ctx, ownerAccountID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (model.Pet, error) {
	if id == uuid.Nil {
		return model.Pet{}, ErrValidation
	}
	if s.store == nil {
		return model.Pet{}, fmt.Errorf("pet store is nil")
	}

	pet, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPetNotFound) {
			return model.Pet{}, ErrNotFound
		}
		return model.Pet{}, err
	}
	return pet, nil
}

// RequireOwned loads the pet and checks that accountID owns it.
func (s *Service) RequireOwned(ctx context.Context, id uuid.UUID, accountID int64) (model.Pet, error) {
	if accountID <= 0 {
		return model.Pet{}, ErrValidation
	}
	pet, err := s.Get(ctx, id)
	if err != nil {
		return model.Pet{}, err
	}
	if pet.OwnerAccountID != accountID {
		return model.Pet{}, ErrNotOwned
	}
	return pet, nil
}
