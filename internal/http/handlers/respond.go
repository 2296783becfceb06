package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/healthsync-ai/scheduler/internal/capacity"
	"github.com/healthsync-ai/scheduler/internal/followup"
	"github.com/healthsync-ai/scheduler/internal/scheduling"
	"github.com/healthsync-ai/scheduler/internal/waitlist"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// badRequest reports whether err is a caller mistake rather than a server
// fault. Every validation sentinel across the domain packages maps here.
func badRequest(err error) bool {
	for _, sentinel := range []error{
		capacity.ErrEmptySpecialty,
		capacity.ErrInvalidDate,
		scheduling.ErrEmptyPatient,
		waitlist.ErrEmptyPatient,
		waitlist.ErrEmptySpecialty,
		waitlist.ErrInvalidDate,
		waitlist.ErrInvalidScore,
		followup.ErrEmptyPatient,
		followup.ErrEmptySymptoms,
		followup.ErrEmptyAppointment,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// writeError maps a domain error onto an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case badRequest(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, scheduling.ErrAppointmentNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
