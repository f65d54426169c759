package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ivankudzin/tailmates/internal/domain/model"
	"github.com/ivankudzin/tailmates/internal/domain/rules"
)

type MatchRepo struct {
	db Querier
}

func NewMatchRepo(db Querier) *MatchRepo {
	return &MatchRepo{db: db}
}

// Upsert inserts the canonical pair if absent and otherwise returns the
// existing row. created reports whether this call inserted it.
func (r *MatchRepo) Upsert(ctx context.Context, petA, petB uuid.UUID) (model.Match, bool, error) {
	if petA == uuid.Nil || petB == uuid.Nil || petA == petB {
		return model.Match{}, false, fmt.Errorf("invalid match payload")
	}
	low, high := rules.CanonicalPair(petA, petB)

	match, err := scanMatch(r.db.QueryRow(ctx, `
INSERT INTO matches (
	id,
	pet_low,
	pet_high,
	created_at
) VALUES ($1, $2, $3, NOW())
ON CONFLICT (pet_low, pet_high) DO NOTHING
RETURNING id, pet_low, pet_high, created_at
`, uuid.New(), low, high))
	if err == nil {
		return match, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isForeignKeyViolation(err) {
			return model.Match{}, false, fmt.Errorf("match %s/%s: %w", low, high, model.ErrPetNotFound)
		}
		return model.Match{}, false, fmt.Errorf("create match: %w", err)
	}

	existing, err := r.GetByPair(ctx, low, high)
	if err != nil {
		return model.Match{}, false, err
	}
	return existing, false, nil
}

func (r *MatchRepo) GetByPair(ctx context.Context, petA, petB uuid.UUID) (model.Match, error) {
	low, high := rules.CanonicalPair(petA, petB)

	match, err := scanMatch(r.db.QueryRow(ctx, `
SELECT id, pet_low, pet_high, created_at
FROM matches
WHERE pet_low = $1 AND pet_high = $2
`, low, high))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, model.ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match by pair: %w", err)
	}
	return match, nil
}

func (r *MatchRepo) ListForPet(ctx context.Context, petID uuid.UUID, limit int) ([]model.Match, error) {
	if petID == uuid.Nil {
		return nil, fmt.Errorf("invalid pet id")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx, `
SELECT id, pet_low, pet_high, created_at
FROM matches
WHERE pet_low = $1 OR pet_high = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`, petID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	items := make([]model.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		items = append(items, match)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, nil
}

// ListUnmatchedMutualLikes returns canonical pairs that liked each other
// but have no match row yet.
func (r *MatchRepo) ListUnmatchedMutualLikes(ctx context.Context, limit int) ([]model.PetPair, error) {
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.db.Query(ctx, `
SELECT a.actor_pet_id, a.target_pet_id
FROM interactions a
JOIN interactions b
	ON b.actor_pet_id = a.target_pet_id
	AND b.target_pet_id = a.actor_pet_id
WHERE
	a.action = 'LIKE'
	AND b.action = 'LIKE'
	AND a.actor_pet_id < a.target_pet_id
	AND NOT EXISTS (
		SELECT 1
		FROM matches m
		WHERE m.pet_low = a.actor_pet_id
			AND m.pet_high = a.target_pet_id
	)
ORDER BY GREATEST(a.created_at, b.created_at) ASC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unmatched mutual likes: %w", err)
	}
	defer rows.Close()

	items := make([]model.PetPair, 0)
	for rows.Next() {
		var pair model.PetPair
		if err := rows.Scan(&pair.A, &pair.B); err != nil {
			return nil, fmt.Errorf("scan mutual like pair: %w", err)
		}
		items = append(items, pair)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate mutual like pairs: %w", rows.Err())
	}

	return items, nil
}

func scanMatch(row rowScanner) (model.Match, error) {
	var match model.Match
	if err := row.Scan(
		&match.ID,
		&match.PetLow,
		&match.PetHigh,
		&match.CreatedAt,
	); err != nil {
		return model.Match{}, err
	}
	return match, nil
}
