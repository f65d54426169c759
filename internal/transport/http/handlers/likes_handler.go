package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/model"
	likessvc "github.com/ivankudzin/tailmates/internal/services/likes"
	"github.com/ivankudzin/tailmates/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/tailmates/internal/transport/http/errors"
)

type likesLister func(ctx context.Context, petID uuid.UUID, accountID int64) ([]model.LikedPet, error)

type LikesHandler struct {
	service *likessvc.Service
}

func NewLikesHandler(service *likessvc.Service) *LikesHandler {
	return &LikesHandler{service: service}
}

func (h *LikesHandler) Received(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.Received)
}

func (h *LikesHandler) Sent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.Sent)
}

func (h *LikesHandler) list(w http.ResponseWriter, r *http.Request, fetch likesLister) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	petID, ok := petIDParam(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "likes service is unavailable")
		return
	}

	items, err := fetch(r.Context(), petID, identity.AccountID)
	if err != nil {
		writeServiceError(w, err, "failed to load likes")
		return
	}
	httperrors.WriteData(w, http.StatusOK, dto.LikedPetList{Items: dto.NewLikedPets(items)}, "ok")
}
