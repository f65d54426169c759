package matches

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ivankudzin/tailmates/internal/domain/model"
	"github.com/ivankudzin/tailmates/internal/domain/rules"
)

const (
	defaultListLimit      = 100
	defaultReconcileBatch = 500
)

var ErrValidation = errors.New("validation error")

type LikeLookup interface {
	HasLike(ctx context.Context, actorPetID, targetPetID uuid.UUID) (bool, error)
}

type MatchStore interface {
	Upsert(ctx context.Context, petA, petB uuid.UUID) (model.Match, bool, error)
	ListForPet(ctx context.Context, petID uuid.UUID, limit int) ([]model.Match, error)
	ListUnmatchedMutualLikes(ctx context.Context, limit int) ([]model.PetPair, error)
}

type PetLookup interface {
	Get(ctx context.Context, id uuid.UUID) (model.Pet, error)
	RequireOwned(ctx context.Context, id uuid.UUID, accountID int64) (model.Pet, error)
}

type MatchNotifier interface {
	MatchCreated(ctx context.Context, match model.Match)
}

type Result struct {
	IsMatch bool
	Match   model.Match
	// Created is true only for the call that inserted the match row.
	Created bool
}

type MatchItem struct {
	Match   model.Match
	Partner model.Pet
}

type Service struct {
	likes    LikeLookup
	matches  MatchStore
	pets     PetLookup
	notifier MatchNotifier
	logger   *zap.Logger
}

type Dependencies struct {
	Likes    LikeLookup
	Matches  MatchStore
	Pets     PetLookup
	Notifier MatchNotifier
	Logger   *zap.Logger
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		likes:    deps.Likes,
		matches:  deps.Matches,
		pets:     deps.Pets,
		notifier: deps.Notifier,
		logger:   logger,
	}
}

// ReconcileMatch materializes the match for actor and target if target has
// already liked actor. Safe to call any number of times and concurrently for
// both directions of the pair.
func (s *Service) ReconcileMatch(ctx context.Context, actorPetID, targetPetID uuid.UUID) (Result, error) {
	if actorPetID == uuid.Nil || targetPetID == uuid.Nil || actorPetID == targetPetID {
		return Result{}, ErrValidation
	}
	if s.likes == nil || s.matches == nil {
		return Result{}, fmt.Errorf("match dependencies are not configured")
	}

	reverse, err := s.likes.HasLike(ctx, targetPetID, actorPetID)
	if err != nil {
		return Result{}, fmt.Errorf("check reverse like: %w", err)
	}
	if !reverse {
		return Result{}, nil
	}

	low, high := rules.CanonicalPair(actorPetID, targetPetID)
	match, created, err := s.matches.Upsert(ctx, low, high)
	if err != nil {
		return Result{}, fmt.Errorf("upsert match: %w", err)
	}

	return Result{IsMatch: true, Match: match, Created: created}, nil
}

func (s *Service) ListForPet(ctx context.Context, petID uuid.UUID, accountID int64) ([]MatchItem, error) {
	if petID == uuid.Nil || accountID <= 0 {
		return nil, ErrValidation
	}
	if s.matches == nil || s.pets == nil {
		return nil, fmt.Errorf("match dependencies are not configured")
	}

	if _, err := s.pets.RequireOwned(ctx, petID, accountID); err != nil {
		return nil, err
	}

	rows, err := s.matches.ListForPet(ctx, petID, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	items := make([]MatchItem, 0, len(rows))
	for _, row := range rows {
		partner, err := s.pets.Get(ctx, row.Other(petID))
		if err != nil {
			return nil, fmt.Errorf("load match partner %s: %w", row.Other(petID), err)
		}
		items = append(items, MatchItem{Match: row, Partner: partner})
	}
	return items, nil
}

// ReconcileAll re-derives matches for mutual likes that have no match row,
// e.g. after a reconcile step failed following a committed interaction.
// It returns the number of rows this call created.
func (s *Service) ReconcileAll(ctx context.Context, batch int) (int, error) {
	if batch <= 0 {
		batch = defaultReconcileBatch
	}
	if s.matches == nil {
		return 0, fmt.Errorf("match store is nil")
	}

	pairs, err := s.matches.ListUnmatchedMutualLikes(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("list unmatched mutual likes: %w", err)
	}

	created := 0
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		low, high := rules.CanonicalPair(pair.A, pair.B)
		match, isNew, err := s.matches.Upsert(ctx, low, high)
		if err != nil {
			return created, fmt.Errorf("upsert match %s/%s: %w", low, high, err)
		}
		if !isNew {
			continue
		}
		created++
		s.logger.Info("match reconciled",
			zap.String("match_id", match.ID.String()),
			zap.String("pet_low", low.String()),
			zap.String("pet_high", high.String()),
		)
		if s.notifier != nil {
			s.notifier.MatchCreated(ctx, match)
		}
	}
	return created, nil
}
