package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authsvc "github.com/ivankudzin/tailmates/internal/services/auth"
	discoverysvc "github.com/ivankudzin/tailmates/internal/services/discovery"
	likessvc "github.com/ivankudzin/tailmates/internal/services/likes"
	matchessvc "github.com/ivankudzin/tailmates/internal/services/matches"
	petssvc "github.com/ivankudzin/tailmates/internal/services/pets"
	swipesvc "github.com/ivankudzin/tailmates/internal/services/swipes"
	httperrors "github.com/ivankudzin/tailmates/internal/transport/http/errors"
)

const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (authsvc.Identity, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok || identity.AccountID <= 0 {
		writeUnauthorized(w, "authentication required")
		return authsvc.Identity{}, false
	}
	return identity, true
}

func petIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "pet_id")))
	if err != nil || id == uuid.Nil {
		writeBadRequest(w, httperrors.CodeValidation, "pet_id must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.WriteError(w, http.StatusBadRequest, code, message)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	httperrors.WriteError(w, http.StatusUnauthorized, httperrors.CodeUnauthorized, message)
}

func writeInternal(w http.ResponseWriter, message string) {
	httperrors.WriteError(w, http.StatusInternalServerError, httperrors.CodeInternal, message)
}

// writeServiceError maps service sentinel errors onto the response taxonomy.
// Anything unrecognized is a server error and its text is not exposed.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if tf, ok := swipesvc.IsTooFast(err); ok {
		httperrors.WriteRateLimited(w, tf.RetryAfter(), "too many swipes, slow down")
		return
	}

	switch {
	case errors.Is(err, authsvc.ErrUnauthorized):
		writeUnauthorized(w, "authentication required")
	case errors.Is(err, authsvc.ErrForbidden), errors.Is(err, petssvc.ErrNotOwned):
		httperrors.WriteError(w, http.StatusForbidden, httperrors.CodeForbidden, "pet is not owned by caller")
	case errors.Is(err, petssvc.ErrNotFound):
		httperrors.WriteError(w, http.StatusNotFound, httperrors.CodeNotFound, "pet not found")
	case errors.Is(err, swipesvc.ErrDuplicateInteraction):
		httperrors.WriteError(w, http.StatusConflict, httperrors.CodeDuplicateInteraction, "pet was already swiped")
	case errors.Is(err, swipesvc.ErrInvalidAction):
		writeBadRequest(w, httperrors.CodeInvalidAction, "action must be LIKE or PASS")
	case errors.Is(err, swipesvc.ErrSelfOwned):
		writeBadRequest(w, httperrors.CodeValidation, "cannot swipe on your own pet")
	case errors.Is(err, discoverysvc.ErrInvalidCursor):
		writeBadRequest(w, httperrors.CodeValidation, "invalid cursor")
	case errors.Is(err, swipesvc.ErrValidation),
		errors.Is(err, petssvc.ErrValidation),
		errors.Is(err, discoverysvc.ErrValidation),
		errors.Is(err, matchessvc.ErrValidation),
		errors.Is(err, likessvc.ErrValidation):
		writeBadRequest(w, httperrors.CodeValidation, validationMessage(err))
	default:
		writeInternal(w, fallback)
	}
}

// validationMessage keeps the detail appended to a wrapped ErrValidation.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && i+2 < len(msg) {
		return msg[i+2:]
	}
	return "invalid request"
}
