package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	matchessvc "github.com/ivankudzin/tailmates/internal/services/matches"
	"github.com/ivankudzin/tailmates/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/tailmates/internal/transport/http/errors"
)

type AdminHandler struct {
	matches *matchessvc.Service
	logger  *zap.Logger
}

func NewAdminHandler(matches *matchessvc.Service, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{matches: matches, logger: logger}
}

func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if h.matches == nil {
		writeInternal(w, "match service is unavailable")
		return
	}

	batch := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("batch")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeBadRequest(w, httperrors.CodeValidation, "batch must be a positive integer")
			return
		}
		batch = n
	}

	created, err := h.matches.ReconcileAll(r.Context(), batch)
	if err != nil {
		h.logger.Error("manual reconcile failed", zap.Int64("account_id", identity.AccountID), zap.Error(err))
		writeInternal(w, "failed to reconcile matches")
		return
	}

	h.logger.Info("manual reconcile finished", zap.Int64("account_id", identity.AccountID), zap.Int("created", created))
	httperrors.WriteData(w, http.StatusOK, dto.ReconcileResponse{Created: created}, "reconcile finished")
}
