package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/healthsync-ai/scheduler/internal/waitlist"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// WaitlistHandler exposes the severity-ordered waitlist.
type WaitlistHandler struct {
	manager *waitlist.Manager
	logger  *logging.Logger
}

// NewWaitlistHandler creates a waitlist handler.
func NewWaitlistHandler(manager *waitlist.Manager, logger *logging.Logger) *WaitlistHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WaitlistHandler{manager: manager, logger: logger}
}

// List handles GET /api/v1/waitlist, priority order.
func (h *WaitlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.manager.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// Position handles GET /api/v1/waitlist/{entryID}/position. Position 0 means
// the entry is not on the list.
func (h *WaitlistHandler) Position(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entryID")
	pos, err := h.manager.Position(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry_id": id, "position": pos})
}

type promoteRequest struct {
	Specialty string `json:"specialty"`
	Date      string `json:"date"`
}

// Promote handles POST /api/v1/waitlist/promote: pop the highest-priority
// entry for a specialty and day. It only dequeues; booking the freed slot is
// the caller's move. found=false means nobody was waiting.
func (h *WaitlistHandler) Promote(w http.ResponseWriter, r *http.Request) {
	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	entry, found, err := h.manager.Promote(r.Context(), req.Specialty, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, map[string]any{"found": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"found": true, "entry": entry})
}

// Remove handles DELETE /api/v1/waitlist/{entryID}. Removing an unknown entry
// succeeds; the end state is the same.
func (h *WaitlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Remove(r.Context(), chi.URLParam(r, "entryID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
