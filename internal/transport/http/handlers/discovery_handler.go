package handlers

import (
	"net/http"
	"strconv"
	"strings"

	discoverysvc "github.com/ivankudzin/tailmates/internal/services/discovery"
	"github.com/ivankudzin/tailmates/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/tailmates/internal/transport/http/errors"
)

type DiscoveryHandler struct {
	service *discoverysvc.Service
}

func NewDiscoveryHandler(service *discoverysvc.Service) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

func (h *DiscoveryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	petID, ok := petIDParam(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "discovery service is unavailable")
		return
	}

	query := r.URL.Query()
	limit := 0
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeBadRequest(w, httperrors.CodeValidation, "limit must be a positive integer")
			return
		}
		limit = n
	}

	page, err := h.service.FindCandidates(r.Context(), petID, identity.AccountID, discoverysvc.Filters{
		Species: query.Get("species"),
		Breed:   query.Get("breed"),
		City:    query.Get("city"),
	}, query.Get("cursor"), limit)
	if err != nil {
		writeServiceError(w, err, "failed to load discovery")
		return
	}

	httperrors.WriteData(w, http.StatusOK, dto.DiscoveryPage{
		Items:      dto.NewPets(page.Items),
		NextCursor: page.NextCursor,
	}, "ok")
}
