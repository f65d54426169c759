package handlers

import (
	"context"
	"net/http"
	"time"

	httperrors "github.com/ivankudzin/tailmates/internal/transport/http/errors"
)

type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	ok := true
	for name, ping := range h.checks {
		if ping == nil {
			continue
		}
		if err := ping(ctx); err != nil {
			status[name] = "down"
			ok = false
			continue
		}
		status[name] = "up"
	}

	payload := struct {
		OK     bool              `json:"ok"`
		Checks map[string]string `json:"checks,omitempty"`
	}{OK: ok, Checks: status}

	if !ok {
		httperrors.Write(w, http.StatusServiceUnavailable, httperrors.Envelope{
			Success: false,
			Data:    payload,
			Message: "dependency unavailable",
			Code:    httperrors.CodeInternal,
		})
		return
	}
	httperrors.WriteData(w, http.StatusOK, payload, "ok")
}
