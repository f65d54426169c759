package dto

import (
	"time"

	"github.com/ivankudzin/tailmates/internal/domain/model"
)

type CreatePetRequest struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	City    string `json:"city"`
}

type Pet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PetList struct {
	Items []Pet `json:"items"`
}

func NewPet(p model.Pet) Pet {
	return Pet{
		ID:        p.ID.String(),
		Name:      p.Name,
		Species:   string(p.Species),
		Breed:     p.Breed,
		City:      p.City,
		CreatedAt: p.CreatedAt.UTC(),
	}
}

func NewPets(items []model.Pet) []Pet {
	out := make([]Pet, 0, len(items))
	for _, p := range items {
		out = append(out, NewPet(p))
	}
	return out
}
