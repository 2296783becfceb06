package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/healthsync-ai/scheduler/internal/capacity"
	"github.com/healthsync-ai/scheduler/internal/scheduling"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// AdminHandler exposes front-desk operations that bypass the normal booking
// rules. Every route here sits behind the admin JWT middleware.
type AdminHandler struct {
	svc    *scheduling.Service
	ledger *capacity.Ledger
	logger *logging.Logger
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(svc *scheduling.Service, ledger *capacity.Ledger, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{svc: svc, ledger: ledger, logger: logger}
}

// Override handles POST /admin/bookings/override: book into the emergency
// buffer or past it, skipping triage and the capacity check.
func (h *AdminHandler) Override(w http.ResponseWriter, r *http.Request) {
	var req scheduling.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	appt, err := h.svc.OverrideBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

type pruneRequest struct {
	Before string `json:"before"`
}

// Prune handles POST /admin/capacity/prune: drop ledger records for days
// before the cutoff.
func (h *AdminHandler) Prune(w http.ResponseWriter, r *http.Request) {
	var req pruneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	removed, err := h.ledger.PruneBefore(r.Context(), req.Before)
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("capacity records pruned", "before", req.Before, "removed", removed)
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}
