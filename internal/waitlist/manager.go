package waitlist

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthsync-ai/scheduler/internal/dates"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// Manager owns the waitlist. Priority is severity score descending with
// first-come-first-served among equal scores; the order is recomputed on
// every read rather than cached.
//
// The manager never checks capacity. Deciding that a day is actually full
// belongs to whoever routes the booking request.
type Manager struct {
	store  *Store
	logger *logging.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewManager creates a waitlist manager.
func NewManager(store *Store, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		store:  store,
		logger: logger.Component("waitlist"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Add registers a deferred booking request and returns the stored entry.
func (m *Manager) Add(ctx context.Context, patientName, specialty, preferredDate string, severityScore int) (Entry, error) {
	if patientName == "" {
		return Entry{}, ErrEmptyPatient
	}
	if specialty == "" {
		return Entry{}, ErrEmptySpecialty
	}
	if !dates.Valid(preferredDate) {
		return Entry{}, ErrInvalidDate
	}
	if severityScore < 1 || severityScore > 10 {
		return Entry{}, ErrInvalidScore
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.store.LoadAll(ctx)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{
		ID:            m.newID(),
		PatientName:   patientName,
		Specialty:     specialty,
		PreferredDate: preferredDate,
		SeverityScore: severityScore,
		CreatedAt:     m.now().UTC(),
	}
	entries = append(entries, entry)
	if err := m.store.SaveAll(ctx, entries); err != nil {
		return Entry{}, err
	}

	m.logger.Info("waitlist entry added",
		"entry_id", entry.ID,
		"specialty", specialty,
		"preferred_date", preferredDate,
		"severity_score", severityScore,
	)
	return entry, nil
}

// List returns all entries in priority order.
func (m *Manager) List(ctx context.Context) ([]Entry, error) {
	entries, err := m.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByPriority(entries)
	return entries, nil
}

// Remove deletes an entry by id. Removing an unknown id is a no-op.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(ctx, id)
}

func (m *Manager) removeLocked(ctx context.Context, id string) error {
	entries, err := m.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return m.store.SaveAll(ctx, kept)
}

// Promote removes and returns the highest-priority entry waiting on
// (specialty, date), marked notified. ok is false when nobody matches.
// Promotion does not touch the capacity ledger; booking the promoted
// patient is the caller's next step.
func (m *Manager) Promote(ctx context.Context, specialty, date string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.store.LoadAll(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	sortByPriority(entries)
	for _, e := range entries {
		if e.Specialty == specialty && e.PreferredDate == date {
			if err := m.removeLocked(ctx, e.ID); err != nil {
				return Entry{}, false, err
			}
			e.Notified = true
			m.logger.Info("waitlist entry promoted",
				"entry_id", e.ID, "specialty", specialty, "date", date)
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

// Position returns the 1-based rank of an entry in the full priority order,
// or 0 if the id is unknown.
func (m *Manager) Position(ctx context.Context, id string) (int, error) {
	entries, err := m.List(ctx)
	if err != nil {
		return 0, err
	}
	for i, e := range entries {
		if e.ID == id {
			return i + 1, nil
		}
	}
	return 0, nil
}

func sortByPriority(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].SeverityScore != entries[j].SeverityScore {
			return entries[i].SeverityScore > entries[j].SeverityScore
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}
