package dto

import (
	"time"

	"github.com/ivankudzin/tailmates/internal/domain/model"
)

type Match struct {
	ID        string    `json:"id"`
	PetLow    string    `json:"pet_low"`
	PetHigh   string    `json:"pet_high"`
	CreatedAt time.Time `json:"created_at"`
}

type MatchItem struct {
	Match
	Partner Pet `json:"partner"`
}

type MatchList struct {
	Items []MatchItem `json:"items"`
}

func NewMatch(m model.Match) Match {
	return Match{
		ID:        m.ID.String(),
		PetLow:    m.PetLow.String(),
		PetHigh:   m.PetHigh.String(),
		CreatedAt: m.CreatedAt.UTC(),
	}
}
