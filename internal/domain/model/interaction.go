package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
)

// Interaction is immutable; at most one exists per (ActorPetID, TargetPetID).
type Interaction struct {
	ID          uuid.UUID         `json:"id"`
	ActorPetID  uuid.UUID         `json:"actor_pet_id"`
	TargetPetID uuid.UUID         `json:"target_pet_id"`
	Action      enums.SwipeAction `json:"action"`
	CreatedAt   time.Time         `json:"created_at"`
}
