package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
	"github.com/ivankudzin/tailmates/internal/domain/model"
)

type InteractionRepo struct {
	db Querier
}

func NewInteractionRepo(db Querier) *InteractionRepo {
	return &InteractionRepo{db: db}
}

// Create inserts a new interaction. A second row for the same
// (actor, target) pair is rejected by interactions_pair_uniq.
func (r *InteractionRepo) Create(ctx context.Context, in model.Interaction) (model.Interaction, error) {
	if in.ActorPetID == uuid.Nil || in.TargetPetID == uuid.Nil || in.ActorPetID == in.TargetPetID {
		return model.Interaction{}, fmt.Errorf("invalid interaction payload")
	}
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}

	rec, err := scanInteraction(r.db.QueryRow(ctx, `
INSERT INTO interactions (
	id,
	actor_pet_id,
	target_pet_id,
	action,
	created_at
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, actor_pet_id, target_pet_id, action, created_at
`, in.ID, in.ActorPetID, in.TargetPetID, string(in.Action), in.CreatedAt.UTC()))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return model.Interaction{}, fmt.Errorf("interaction %s -> %s: %w", in.ActorPetID, in.TargetPetID, model.ErrInteractionExists)
		case isForeignKeyViolation(err):
			return model.Interaction{}, fmt.Errorf("interaction %s -> %s: %w", in.ActorPetID, in.TargetPetID, model.ErrPetNotFound)
		case isCheckViolation(err):
			return model.Interaction{}, fmt.Errorf("interaction %s -> %s: %w", in.ActorPetID, in.TargetPetID, model.ErrConstraintViolation)
		}
		return model.Interaction{}, fmt.Errorf("create interaction: %w", err)
	}

	return rec, nil
}

func (r *InteractionRepo) HasLike(ctx context.Context, actorPetID, targetPetID uuid.UUID) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, `
SELECT 1
FROM interactions
WHERE actor_pet_id = $1 AND target_pet_id = $2 AND action = 'LIKE'
LIMIT 1
`, actorPetID, targetPetID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup like: %w", err)
	}
	return true, nil
}

func scanInteraction(row rowScanner) (model.Interaction, error) {
	var (
		rec    model.Interaction
		action string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.ActorPetID,
		&rec.TargetPetID,
		&action,
		&rec.CreatedAt,
	); err != nil {
		return model.Interaction{}, err
	}
	rec.Action = enums.SwipeAction(action)
	return rec, nil
}
