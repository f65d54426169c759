package handlers

import (
	"net/http"

	petssvc "github.com/ivankudzin/tailmates/internal/services/pets"
	"github.com/ivankudzin/tailmates/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/tailmates/internal/transport/http/errors"
)

type PetsHandler struct {
	service *petssvc.Service
}

func NewPetsHandler(service *petssvc.Service) *PetsHandler {
	return &PetsHandler{service: service}
}

func (h *PetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "pet service is unavailable")
		return
	}

	var req dto.CreatePetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, httperrors.CodeValidation, "invalid request body")
		return
	}

	pet, err := h.service.Create(r.Context(), identity.AccountID, petssvc.CreateInput{
		Name:    req.Name,
		Species: req.Species,
		Breed:   req.Breed,
		City:    req.City,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create pet")
		return
	}
	httperrors.WriteData(w, http.StatusCreated, dto.NewPet(pet), "pet created")
}

func (h *PetsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "pet service is unavailable")
		return
	}

	items, err := h.service.ListByOwner(r.Context(), identity.AccountID)
	if err != nil {
		writeServiceError(w, err, "failed to list pets")
		return
	}
	httperrors.WriteData(w, http.StatusOK, dto.PetList{Items: dto.NewPets(items)}, "ok")
}
