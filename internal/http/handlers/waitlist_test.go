package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/healthsync-ai/scheduler/internal/waitlist"
)

func waitlistRouter(h *WaitlistHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/waitlist", h.List)
	r.Post("/waitlist/promote", h.Promote)
	r.Get("/waitlist/{entryID}/position", h.Position)
	r.Delete("/waitlist/{entryID}", h.Remove)
	return r
}

func TestWaitlistListPriorityOrder(t *testing.T) {
	env := newTestEnv(t)
	r := waitlistRouter(NewWaitlistHandler(env.waitlist, nil))

	ctx := context.Background()
	for _, score := range []int{5, 9, 2} {
		if _, err := env.waitlist.Add(ctx, "patient", "Cardiologist", "2026-09-01", score); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/waitlist", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Entries []waitlist.Entry `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Entries) != 3 || resp.Entries[0].SeverityScore != 9 {
		t.Errorf("entries = %+v", resp.Entries)
	}
}

func TestWaitlistPromote(t *testing.T) {
	env := newTestEnv(t)
	r := waitlistRouter(NewWaitlistHandler(env.waitlist, nil))

	if _, err := env.waitlist.Add(context.Background(), "Asha Rao", "Cardiologist", "2026-09-01", 7); err != nil {
		t.Fatal(err)
	}

	body := `{"specialty":"Cardiologist","date":"2026-09-01"}`
	req := httptest.NewRequest(http.MethodPost, "/waitlist/promote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Found bool           `json:"found"`
		Entry waitlist.Entry `json:"entry"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Found || resp.Entry.PatientName != "Asha Rao" || !resp.Entry.Notified {
		t.Errorf("resp = %+v", resp)
	}
}

func TestWaitlistPromoteEmpty(t *testing.T) {
	env := newTestEnv(t)
	r := waitlistRouter(NewWaitlistHandler(env.waitlist, nil))

	body := `{"specialty":"Cardiologist","date":"2026-09-01"}`
	req := httptest.NewRequest(http.MethodPost, "/waitlist/promote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Found bool `json:"found"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Found {
		t.Error("found = true on an empty waitlist")
	}
}

func TestWaitlistRemoveAndPosition(t *testing.T) {
	env := newTestEnv(t)
	r := waitlistRouter(NewWaitlistHandler(env.waitlist, nil))

	entry, err := env.waitlist.Add(context.Background(), "Asha Rao", "Cardiologist", "2026-09-01", 7)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/waitlist/"+entry.ID+"/position", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var pos struct {
		Position int `json:"position"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pos); err != nil {
		t.Fatal(err)
	}
	if pos.Position != 1 {
		t.Errorf("position = %d", pos.Position)
	}

	req = httptest.NewRequest(http.MethodDelete, "/waitlist/"+entry.ID, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Unknown entry now reads position 0.
	req = httptest.NewRequest(http.MethodGet, "/waitlist/"+entry.ID+"/position", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &pos); err != nil {
		t.Fatal(err)
	}
	if pos.Position != 0 {
		t.Errorf("position after remove = %d", pos.Position)
	}
}
