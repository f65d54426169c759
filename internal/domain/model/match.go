package model

import (
	"time"

	"github.com/google/uuid"
)

// Match stores an unordered pair under canonical ordering: PetLow < PetHigh.
type Match struct {
	ID        uuid.UUID `json:"id"`
	PetLow    uuid.UUID `json:"pet_low"`
	PetHigh   uuid.UUID `json:"pet_high"`
	CreatedAt time.Time `json:"created_at"`
}

// Other returns the counterpart of petID, or uuid.Nil when petID is not part of the match.
func (m Match) Other(petID uuid.UUID) uuid.UUID {
	switch petID {
	case m.PetLow:
		return m.PetHigh
	case m.PetHigh:
		return m.PetLow
	default:
		return uuid.Nil
	}
}

func (m Match) Involves(petID uuid.UUID) bool {
	return m.PetLow == petID || m.PetHigh == petID
}
