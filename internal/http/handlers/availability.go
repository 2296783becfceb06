package handlers

import (
	"net/http"
	"strconv"

	"github.com/healthsync-ai/scheduler/internal/capacity"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// AvailabilityHandler exposes read-only capacity queries.
type AvailabilityHandler struct {
	ledger      *capacity.Ledger
	horizonDays int
	logger      *logging.Logger
}

// NewAvailabilityHandler creates an availability handler.
func NewAvailabilityHandler(ledger *capacity.Ledger, horizonDays int, logger *logging.Logger) *AvailabilityHandler {
	if horizonDays <= 0 {
		horizonDays = capacity.DefaultHorizonDays
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityHandler{ledger: ledger, horizonDays: horizonDays, logger: logger}
}

// Get handles GET /api/v1/availability?specialty=...&date=....
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")
	date := r.URL.Query().Get("date")

	avail, err := h.ledger.Availability(r.Context(), specialty, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"specialty":    specialty,
		"date":         date,
		"availability": avail,
	})
}

// NextDate handles GET /api/v1/availability/next-date?specialty=...&after=....
// found=false in the response means the whole horizon is fully booked, not an
// error.
func (h *AvailabilityHandler) NextDate(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")
	after := r.URL.Query().Get("after")

	horizon := h.horizonDays
	if v := r.URL.Query().Get("horizon_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid horizon_days", http.StatusBadRequest)
			return
		}
		horizon = n
	}

	date, found, err := h.ledger.NextAvailableDate(r.Context(), specialty, after, horizon)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"specialty": specialty,
		"after":     after,
		"next_date": date,
		"found":     found,
	})
}
