package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/model"
)

// Page size of 20 plus one look-ahead row.
const maxDiscoveryLimit = 21

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type DiscoveryRepo struct {
	db Querier
}

func NewDiscoveryRepo(db Querier) *DiscoveryRepo {
	return &DiscoveryRepo{db: db}
}

func (r *DiscoveryRepo) ListCandidates(ctx context.Context, q model.CandidateQuery) ([]model.Pet, error) {
	if q.PetID == uuid.Nil || q.OwnerAccountID <= 0 {
		return nil, fmt.Errorf("invalid discovery query")
	}

	query, args, err := buildCandidatesQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build discovery query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list discovery candidates: %w", err)
	}
	defer rows.Close()

	items := make([]model.Pet, 0, q.Limit)
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discovery candidate: %w", err)
		}
		items = append(items, pet)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate discovery candidates: %w", rows.Err())
	}

	return items, nil
}

func buildCandidatesQuery(q model.CandidateQuery) (string, []any, error) {
	limit := q.Limit
	if limit <= 0 || limit > maxDiscoveryLimit {
		limit = maxDiscoveryLimit
	}

	// uuid.UUID is an array type and squirrel would expand it into an IN list.
	petID := q.PetID.String()

	b := psql.
		Select(petColumns).
		From("pets p").
		Where(sq.NotEq{"p.id": petID}).
		Where(sq.NotEq{"p.owner_account_id": q.OwnerAccountID}).
		Where(`NOT EXISTS (
	SELECT 1
	FROM interactions i
	WHERE i.actor_pet_id = ?
		AND i.target_pet_id = p.id
)`, petID)

	if q.Species != "" {
		b = b.Where(sq.Eq{"p.species": string(q.Species)})
	}
	if breed := strings.ToLower(strings.TrimSpace(q.Breed)); breed != "" {
		b = b.Where(sq.Eq{"LOWER(p.breed)": breed})
	}
	if city := strings.ToLower(strings.TrimSpace(q.City)); city != "" {
		b = b.Where(sq.Eq{"LOWER(p.city)": city})
	}
	if q.HasCursor {
		b = b.Where("(p.created_at, p.id) < (?, ?)", q.CursorCreatedAt.UTC(), q.CursorPetID.String())
	}

	return b.
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(limit)).
		ToSql()
}
