package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/healthsync-ai/scheduler/internal/scheduling"
)

func TestAdminOverrideBooksPastCeiling(t *testing.T) {
	env := newTestEnv(t)
	h := NewAdminHandler(env.scheduling, env.ledger, nil)

	ctx := context.Background()
	for i := 0; i < 17; i++ {
		if _, err := env.ledger.Increment(ctx, "Cardiologist", "2026-09-01"); err != nil {
			t.Fatal(err)
		}
	}

	body := `{"patient_name":"Emergency Transfer","specialty":"Cardiologist","date":"2026-09-01"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/bookings/override", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Override(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var appt scheduling.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
		t.Fatal(err)
	}
	if appt.BookedVia != scheduling.ViaOverride {
		t.Errorf("via = %s", appt.BookedVia)
	}

	record, err := env.ledger.Get(ctx, "Cardiologist", "2026-09-01")
	if err != nil {
		t.Fatal(err)
	}
	if record.Booked != 18 {
		t.Errorf("Booked = %d, want 18", record.Booked)
	}
}

func TestAdminPrune(t *testing.T) {
	env := newTestEnv(t)
	h := NewAdminHandler(env.scheduling, env.ledger, nil)

	ctx := context.Background()
	for _, day := range []string{"2026-08-01", "2026-08-15", "2026-09-01"} {
		if _, err := env.ledger.Increment(ctx, "Cardiologist", day); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/capacity/prune", strings.NewReader(`{"before":"2026-09-01"}`))
	rec := httptest.NewRecorder()
	h.Prune(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Removed int `json:"removed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Removed != 2 {
		t.Errorf("removed = %d, want 2", resp.Removed)
	}
}

func TestAdminPruneRejectsBadCutoff(t *testing.T) {
	env := newTestEnv(t)
	h := NewAdminHandler(env.scheduling, env.ledger, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/capacity/prune", strings.NewReader(`{"before":"last week"}`))
	rec := httptest.NewRecorder()
	h.Prune(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
