package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
)

// Pet is the entity being matched. Exactly one account owns it.
type Pet struct {
	ID             uuid.UUID     `json:"id"`
	OwnerAccountID int64         `json:"owner_account_id"`
	Name           string        `json:"name"`
	Species        enums.Species `json:"species"`
	Breed          string        `json:"breed"`
	City           string        `json:"city"`
	CreatedAt      time.Time     `json:"created_at"`
}
