package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
)

// CandidateQuery describes one discovery page for PetID.
type CandidateQuery struct {
	PetID           uuid.UUID
	OwnerAccountID  int64
	Species         enums.Species
	Breed           string
	City            string
	HasCursor       bool
	CursorCreatedAt time.Time
	CursorPetID     uuid.UUID
	Limit           int
}

// LikedPet is the pet on the other side of a pending LIKE.
type LikedPet struct {
	Pet     Pet
	LikedAt time.Time
}

// PetPair is an ordered pair as stored in interactions.
type PetPair struct {
	A uuid.UUID
	B uuid.UUID
}
