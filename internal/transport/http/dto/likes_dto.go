package dto

import (
	"time"

	"github.com/ivankudzin/tailmates/internal/domain/model"
)

type LikedPet struct {
	Pet     Pet       `json:"pet"`
	LikedAt time.Time `json:"liked_at"`
}

type LikedPetList struct {
	Items []LikedPet `json:"items"`
}

func NewLikedPets(items []model.LikedPet) []LikedPet {
	out := make([]LikedPet, 0, len(items))
	for _, item := range items {
		out = append(out, LikedPet{Pet: NewPet(item.Pet), LikedAt: item.LikedAt.UTC()})
	}
	return out
}
