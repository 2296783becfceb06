package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/healthsync-ai/scheduler/internal/followup"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// FollowUpHandler exposes post-visit check-ins.
type FollowUpHandler struct {
	monitor *followup.Monitor
	logger  *logging.Logger
}

// NewFollowUpHandler creates a follow-up handler.
func NewFollowUpHandler(monitor *followup.Monitor, logger *logging.Logger) *FollowUpHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &FollowUpHandler{monitor: monitor, logger: logger}
}

type checkInRequest struct {
	AppointmentID string `json:"appointment_id"`
	PatientName   string `json:"patient_name"`
	Symptoms      string `json:"symptoms"`
}

// CheckIn handles POST /api/v1/followups.
func (h *FollowUpHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	entry, err := h.monitor.CheckIn(r.Context(), req.AppointmentID, req.PatientName, req.Symptoms)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// List handles GET /api/v1/followups filtered by appointment_id or patient.
func (h *FollowUpHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		followUps []followup.FollowUp
		err       error
	)
	switch {
	case q.Get("appointment_id") != "":
		followUps, err = h.monitor.ListForAppointment(r.Context(), q.Get("appointment_id"))
	case q.Get("patient") != "":
		followUps, err = h.monitor.ListForPatient(r.Context(), q.Get("patient"))
	default:
		http.Error(w, "appointment_id or patient is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"followups": followUps})
}
