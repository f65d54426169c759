package dto

type SwipeRequest struct {
	ActorPetID  string `json:"actor_pet_id"`
	TargetPetID string `json:"target_pet_id"`
	Action      string `json:"action"`
}

type SwipeResponse struct {
	IsMatch bool   `json:"is_match"`
	Match   *Match `json:"match,omitempty"`
}
