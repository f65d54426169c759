package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/model"
)

type LikeRepo struct {
	db Querier
}

func NewLikeRepo(db Querier) *LikeRepo {
	return &LikeRepo{db: db}
}

// ListReceivedPending returns pets that liked petID and that petID has not
// answered yet, neither with LIKE nor with PASS.
func (r *LikeRepo) ListReceivedPending(ctx context.Context, petID uuid.UUID, limit int) ([]model.LikedPet, error) {
	if petID == uuid.Nil {
		return nil, fmt.Errorf("invalid pet id")
	}
	if limit <= 0 {
		limit = 100
	}

	return r.list(ctx, `
SELECT `+petColumns+`, i.created_at
FROM interactions i
JOIN pets p ON p.id = i.actor_pet_id
WHERE
	i.target_pet_id = $1
	AND i.action = 'LIKE'
	AND NOT EXISTS (
		SELECT 1
		FROM interactions r
		WHERE r.actor_pet_id = $1
			AND r.target_pet_id = i.actor_pet_id
	)
ORDER BY i.created_at DESC, i.id DESC
LIMIT $2
`, petID, limit)
}

// ListSentPending returns pets petID liked where no match exists yet.
func (r *LikeRepo) ListSentPending(ctx context.Context, petID uuid.UUID, limit int) ([]model.LikedPet, error) {
	if petID == uuid.Nil {
		return nil, fmt.Errorf("invalid pet id")
	}
	if limit <= 0 {
		limit = 100
	}

	return r.list(ctx, `
SELECT `+petColumns+`, i.created_at
FROM interactions i
JOIN pets p ON p.id = i.target_pet_id
WHERE
	i.actor_pet_id = $1
	AND i.action = 'LIKE'
	AND NOT EXISTS (
		SELECT 1
		FROM matches m
		WHERE m.pet_low = LEAST(i.actor_pet_id, i.target_pet_id)
			AND m.pet_high = GREATEST(i.actor_pet_id, i.target_pet_id)
	)
ORDER BY i.created_at DESC, i.id DESC
LIMIT $2
`, petID, limit)
}

func (r *LikeRepo) list(ctx context.Context, query string, petID uuid.UUID, limit int) ([]model.LikedPet, error) {
	rows, err := r.db.Query(ctx, query, petID, limit)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	items := make([]model.LikedPet, 0)
	for rows.Next() {
		var item model.LikedPet
		pet, err := scanPet(rows, &item.LikedAt)
		if err != nil {
			return nil, fmt.Errorf("scan liked pet: %w", err)
		}
		item.Pet = pet
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate likes: %w", rows.Err())
	}

	return items, nil
}
