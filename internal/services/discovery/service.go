package discovery

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
	"github.com/ivankudzin/tailmates/internal/domain/model"
)

const (
	defaultLimit = 20
	maxLimit     = 20
)

var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidCursor = errors.New("invalid cursor")
)

type CandidateStore interface {
	ListCandidates(ctx context.Context, q model.CandidateQuery) ([]model.Pet, error)
}

type PetLookup interface {
	RequireOwned(ctx context.Context, id uuid.UUID, accountID int64) (model.Pet, error)
}

type Filters struct {
	Species string
	Breed   string
	City    string
}

type Page struct {
	Items      []model.Pet
	NextCursor string
}

type pageCursor struct {
	CreatedAt int64  `json:"t"`
	PetID     string `json:"i"`
}

type Service struct {
	candidates CandidateStore
	pets       PetLookup
}

func NewService(candidates CandidateStore, pets PetLookup) *Service {
	return &Service{candidates: candidates, pets: pets}
}

// FindCandidates returns the next page of pets petID has not interacted
// with, excluding pets of its owner. Pets swiped between pages drop out of
// later pages.
func (s *Service) FindCandidates(ctx context.Context, petID uuid.UUID, accountID int64, filters Filters, cursor string, limit int) (Page, error) {
	if petID == uuid.Nil || accountID <= 0 {
		return Page{}, ErrValidation
	}
	if s.candidates == nil || s.pets == nil {
		return Page{}, fmt.Errorf("discovery dependencies are not configured")
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := model.CandidateQuery{
		PetID: petID,
		Breed: strings.TrimSpace(filters.Breed),
		City:  strings.TrimSpace(filters.City),
		Limit: limit + 1,
	}
	if raw := strings.TrimSpace(filters.Species); raw != "" {
		species, ok := enums.ParseSpecies(raw)
		if !ok {
			return Page{}, fmt.Errorf("%w: unsupported species %q", ErrValidation, raw)
		}
		q.Species = species
	}

	decoded, hasCursor, err := decodeCursor(cursor)
	if err != nil {
		return Page{}, err
	}
	if hasCursor {
		q.HasCursor = true
		q.CursorCreatedAt = time.UnixMicro(decoded.CreatedAt).UTC()
		q.CursorPetID = uuid.MustParse(decoded.PetID)
	}

	pet, err := s.pets.RequireOwned(ctx, petID, accountID)
	if err != nil {
		return Page{}, err
	}
	q.OwnerAccountID = pet.OwnerAccountID

	items, err := s.candidates.ListCandidates(ctx, q)
	if err != nil {
		return Page{}, fmt.Errorf("list candidates: %w", err)
	}

	page := Page{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		last := page.Items[limit-1]
		next, err := encodeCursor(pageCursor{
			CreatedAt: last.CreatedAt.UTC().UnixMicro(),
			PetID:     last.ID.String(),
		})
		if err != nil {
			return Page{}, err
		}
		page.NextCursor = next
	}
	return page, nil
}

func decodeCursor(raw string) (pageCursor, bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return pageCursor{}, false, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return pageCursor{}, false, ErrInvalidCursor
	}

	var cursor pageCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return pageCursor{}, false, ErrInvalidCursor
	}
	if cursor.CreatedAt <= 0 {
		return pageCursor{}, false, ErrInvalidCursor
	}
	if id, err := uuid.Parse(cursor.PetID); err != nil || id == uuid.Nil {
		return pageCursor{}, false, ErrInvalidCursor
	}

	return cursor, true, nil
}

func encodeCursor(cursor pageCursor) (string, error) {
	payload, err := json.Marshal(cursor)
	if err != nil {
		return "", fmt.Errorf("marshal discovery cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}
