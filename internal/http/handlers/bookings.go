package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/healthsync-ai/scheduler/internal/scheduling"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// BookingHandler exposes the booking pipeline.
type BookingHandler struct {
	svc    *scheduling.Service
	logger *logging.Logger
}

// NewBookingHandler creates a booking handler.
func NewBookingHandler(svc *scheduling.Service, logger *logging.Logger) *BookingHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/bookings. The response status mirrors where the
// request landed: 201 when confirmed, 202 when waitlisted, 200 when triage
// redirected the caller to emergency services.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req scheduling.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Via == "" {
		req.Via = scheduling.ViaManual
	}

	outcome, err := h.svc.RequestBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	switch outcome.Status {
	case scheduling.OutcomeConfirmed:
		status = http.StatusCreated
	case scheduling.OutcomeWaitlisted:
		status = http.StatusAccepted
	}
	writeJSON(w, status, outcome)
}

// List handles GET /api/v1/bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.svc.Appointments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": appointments})
}

// Get handles GET /api/v1/bookings/{appointmentID}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	appt, err := h.svc.Appointment(r.Context(), chi.URLParam(r, "appointmentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// Cancel handles DELETE /api/v1/bookings/{appointmentID}. The response
// includes the promoted waitlist appointment when the freed slot was re-used.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CancelBooking(r.Context(), chi.URLParam(r, "appointmentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
