package handlers

import (
	"net/http"
	"strconv"

	"github.com/healthsync-ai/scheduler/internal/forecast"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// ForecastHandler exposes the load forecaster for the staffing dashboard.
type ForecastHandler struct {
	forecaster  *forecast.Forecaster
	defaultDays int
	logger      *logging.Logger
}

// NewForecastHandler creates a forecast handler.
func NewForecastHandler(forecaster *forecast.Forecaster, defaultDays int, logger *logging.Logger) *ForecastHandler {
	if defaultDays <= 0 {
		defaultDays = 14
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ForecastHandler{forecaster: forecaster, defaultDays: defaultDays, logger: logger}
}

func (h *ForecastHandler) days(r *http.Request) (int, bool) {
	v := r.URL.Query().Get("days")
	if v == "" {
		return h.defaultDays, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Predict handles GET /api/v1/forecast?days=N.
func (h *ForecastHandler) Predict(w http.ResponseWriter, r *http.Request) {
	days, ok := h.days(r)
	if !ok {
		http.Error(w, "invalid days", http.StatusBadRequest)
		return
	}
	predictions, err := h.forecaster.Predict(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"predictions": predictions})
}

// Summary handles GET /api/v1/forecast/summary?days=N.
func (h *ForecastHandler) Summary(w http.ResponseWriter, r *http.Request) {
	days, ok := h.days(r)
	if !ok {
		http.Error(w, "invalid days", http.StatusBadRequest)
		return
	}
	summary, err := h.forecaster.Summarize(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
