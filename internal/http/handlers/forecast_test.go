package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/healthsync-ai/scheduler/internal/forecast"
)

func TestForecastPredict(t *testing.T) {
	env := newTestEnv(t)
	h := NewForecastHandler(env.forecaster, 14, nil)

	req := httptest.NewRequest(http.MethodGet, "/forecast?days=7", nil)
	rec := httptest.NewRecorder()
	h.Predict(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Predictions []forecast.Prediction `json:"predictions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Predictions) != 7 {
		t.Fatalf("predictions = %d, want 7", len(resp.Predictions))
	}
	for _, p := range resp.Predictions {
		if p.RecommendedDoctors < 1 {
			t.Errorf("%s: recommended doctors = %d", p.Date, p.RecommendedDoctors)
		}
	}
}

func TestForecastPredictRejectsBadDays(t *testing.T) {
	env := newTestEnv(t)
	h := NewForecastHandler(env.forecaster, 14, nil)

	for _, q := range []string{"days=0", "days=-3", "days=soon"} {
		req := httptest.NewRequest(http.MethodGet, "/forecast?"+q, nil)
		rec := httptest.NewRecorder()
		h.Predict(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", q, rec.Code)
		}
	}
}

func TestForecastSummary(t *testing.T) {
	env := newTestEnv(t)
	h := NewForecastHandler(env.forecaster, 14, nil)

	req := httptest.NewRequest(http.MethodGet, "/forecast/summary", nil)
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var summary forecast.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.BusiestDate == "" || summary.StaffingNote == "" {
		t.Errorf("summary = %+v", summary)
	}
}
