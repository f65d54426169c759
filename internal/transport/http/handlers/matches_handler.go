package handlers

import (
	"net/http"

	matchessvc "github.com/ivankudzin/tailmates/internal/services/matches"
	"github.com/ivankudzin/tailmates/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/tailmates/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	petID, ok := petIDParam(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "match service is unavailable")
		return
	}

	items, err := h.service.ListForPet(r.Context(), petID, identity.AccountID)
	if err != nil {
		writeServiceError(w, err, "failed to load matches")
		return
	}

	resp := dto.MatchList{Items: make([]dto.MatchItem, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.MatchItem{
			Match:   dto.NewMatch(item.Match),
			Partner: dto.NewPet(item.Partner),
		})
	}
	httperrors.WriteData(w, http.StatusOK, resp, "ok")
}
