package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	swipesvc "github.com/ivankudzin/tailmates/internal/services/swipes"
	"github.com/ivankudzin/tailmates/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/tailmates/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
}

func NewSwipeHandler(service *swipesvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "swipe service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, httperrors.CodeValidation, "invalid request body")
		return
	}
	actorID, errActor := uuid.Parse(strings.TrimSpace(req.ActorPetID))
	targetID, errTarget := uuid.Parse(strings.TrimSpace(req.TargetPetID))
	if errActor != nil || errTarget != nil {
		writeBadRequest(w, httperrors.CodeValidation, "actor_pet_id and target_pet_id must be uuids")
		return
	}

	result, err := h.service.Swipe(r.Context(), swipesvc.Input{
		AccountID:   identity.AccountID,
		ActorPetID:  actorID,
		TargetPetID: targetID,
		Action:      req.Action,
	})
	if err != nil {
		writeServiceError(w, err, "failed to process swipe")
		return
	}

	resp := dto.SwipeResponse{IsMatch: result.IsMatch}
	message := "swipe recorded"
	if result.Match != nil {
		match := dto.NewMatch(*result.Match)
		resp.Match = &match
		message = "it's a match"
	}
	httperrors.WriteData(w, http.StatusOK, resp, message)
}
