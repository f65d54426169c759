package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
	"github.com/ivankudzin/tailmates/internal/domain/model"
)

const petColumns = `p.id, p.owner_account_id, p.name, p.species, p.breed, p.city, p.created_at`

type PetRepo struct {
	db Querier
}

func NewPetRepo(db Querier) *PetRepo {
	return &PetRepo{db: db}
}

func (r *PetRepo) Create(ctx context.Context, pet model.Pet) (model.Pet, error) {
	if pet.ID == uuid.Nil || pet.OwnerAccountID <= 0 || strings.TrimSpace(pet.Name) == "" {
		return model.Pet{}, fmt.Errorf("invalid pet payload")
	}
	if pet.CreatedAt.IsZero() {
		pet.CreatedAt = time.Now().UTC()
	}

	row := r.db.QueryRow(ctx, `
INSERT INTO pets AS p (
	id,
	owner_account_id,
	name,
	species,
	breed,
	city,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+petColumns,
		pet.ID,
		pet.OwnerAccountID,
		strings.TrimSpace(pet.Name),
		string(pet.Species),
		strings.TrimSpace(pet.Breed),
		strings.TrimSpace(pet.City),
		pet.CreatedAt.UTC(),
	)
	created, err := scanPet(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Pet{}, fmt.Errorf("create pet for account %d: %w", pet.OwnerAccountID, model.ErrAccountNotFound)
		}
		return model.Pet{}, fmt.Errorf("create pet: %w", err)
	}
	return created, nil
}

func (r *PetRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Pet, error) {
	if id == uuid.Nil {
		return model.Pet{}, fmt.Errorf("invalid pet id")
	}

	pet, err := scanPet(r.db.QueryRow(ctx, `
SELECT `+petColumns+`
FROM pets p
WHERE p.id = $1
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Pet{}, fmt.Errorf("pet %s: %w", id, model.ErrPetNotFound)
		}
		return model.Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return pet, nil
}

func (r *PetRepo) ListByOwner(ctx context.Context, ownerAccountID int64) ([]model.Pet, error) {
	if ownerAccountID <= 0 {
		return nil, fmt.Errorf("invalid owner account id")
	}

	rows, err := r.db.Query(ctx, `
SELECT `+petColumns+`
FROM pets p
WHERE p.owner_account_id = $1
ORDER BY p.created_at ASC, p.id ASC
`, ownerAccountID)
	if err != nil {
		return nil, fmt.Errorf("list pets by owner: %w", err)
	}
	defer rows.Close()

	items := make([]model.Pet, 0)
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		items = append(items, pet)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate pets: %w", rows.Err())
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner, extra ...any) (model.Pet, error) {
	var (
		pet     model.Pet
		species string
	)
	dest := []any{
		&pet.ID,
		&pet.OwnerAccountID,
		&pet.Name,
		&species,
		&pet.Breed,
		&pet.City,
		&pet.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return model.Pet{}, err
	}
	pet.Species = enums.Species(species)
	return pet, nil
}
