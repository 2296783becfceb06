// Package handlers wires the scheduling domain onto the HTTP surface used by
// the clinic UI and the voice agent.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/healthsync-ai/scheduler/internal/triage"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// TriageHandler exposes symptom assessment without booking anything.
type TriageHandler struct {
	svc    *triage.Service
	logger *logging.Logger
}

// NewTriageHandler creates a triage handler.
func NewTriageHandler(svc *triage.Service, logger *logging.Logger) *TriageHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &TriageHandler{svc: svc, logger: logger}
}

type triageRequest struct {
	Symptoms string `json:"symptoms"`
}

// Assess handles POST /api/v1/triage.
func (h *TriageHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req triageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Symptoms == "" {
		http.Error(w, "symptoms are required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Assess(req.Symptoms))
}
