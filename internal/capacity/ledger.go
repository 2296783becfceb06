package capacity

import (
	"context"
	"sync"

	"github.com/healthsync-ai/scheduler/internal/dates"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// DefaultHorizonDays bounds the next-available-date scan.
const DefaultHorizonDays = 14

// Ledger tracks per-(specialty, day) booking counts against the clinic's
// capacity policy. Records are created lazily: reading an unknown pair
// returns a zero-booked record with policy defaults and writes nothing.
//
// A mutex serializes read-modify-write cycles within this process; TryBook
// holds it across the ceiling check and the claim. Separate processes sharing
// the same store can still race on the last open slot; deployments with more
// than one writer need a store-side transaction instead.
type Ledger struct {
	store  *Store
	policy Policy
	logger *logging.Logger

	mu sync.Mutex
}

// NewLedger creates a ledger, rejecting an invalid capacity policy up front.
func NewLedger(store *Store, policy Policy, logger *logging.Logger) (*Ledger, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Ledger{store: store, policy: policy, logger: logger.Component("capacity")}, nil
}

func validateKey(specialty, date string) error {
	if specialty == "" {
		return ErrEmptySpecialty
	}
	if !dates.Valid(date) {
		return ErrInvalidDate
	}
	return nil
}

// Get returns the record for (specialty, date), existing or defaulted.
// Reads never write.
func (l *Ledger) Get(ctx context.Context, specialty, date string) (Record, error) {
	if err := validateKey(specialty, date); err != nil {
		return Record{}, err
	}
	records, err := l.store.LoadAll(ctx)
	if err != nil {
		return Record{}, err
	}
	if rec, ok := find(records, specialty, date); ok {
		return rec, nil
	}
	return l.defaultRecord(specialty, date), nil
}

// CanBook reports whether a normal booking fits under the capacity ceiling,
// leaving the emergency buffer untouched.
func (l *Ledger) CanBook(ctx context.Context, specialty, date string) (bool, error) {
	rec, err := l.Get(ctx, specialty, date)
	if err != nil {
		return false, err
	}
	return rec.Booked < rec.bookableSlots(), nil
}

// TryBook atomically checks the normal-booking ceiling and claims one slot.
// ok is false, with nothing written, when the day is already full. Check and
// increment happen under one lock so two concurrent requests cannot both
// claim the last open slot.
func (l *Ledger) TryBook(ctx context.Context, specialty, date string) (Record, bool, error) {
	if err := validateKey(specialty, date); err != nil {
		return Record{}, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.store.LoadAll(ctx)
	if err != nil {
		return Record{}, false, err
	}
	idx := indexOf(records, specialty, date)
	if idx < 0 {
		records = append(records, l.defaultRecord(specialty, date))
		idx = len(records) - 1
	}
	if records[idx].Booked >= records[idx].bookableSlots() {
		return records[idx], false, nil
	}
	records[idx].Booked++
	if err := l.store.SaveAll(ctx, records); err != nil {
		return Record{}, false, err
	}
	return records[idx], true, nil
}

// Availability derives booked/available/full status for one day.
func (l *Ledger) Availability(ctx context.Context, specialty, date string) (Availability, error) {
	rec, err := l.Get(ctx, specialty, date)
	if err != nil {
		return Availability{}, err
	}
	return rec.availability(), nil
}

// Increment records one booking. It deliberately accepts counts beyond the
// normal ceiling: administrative overrides may book into the emergency
// buffer, so enforcement stays with callers via CanBook.
func (l *Ledger) Increment(ctx context.Context, specialty, date string) (Record, error) {
	if err := validateKey(specialty, date); err != nil {
		return Record{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.store.LoadAll(ctx)
	if err != nil {
		return Record{}, err
	}
	idx := indexOf(records, specialty, date)
	if idx < 0 {
		records = append(records, l.defaultRecord(specialty, date))
		idx = len(records) - 1
	}
	records[idx].Booked++
	if err := l.store.SaveAll(ctx, records); err != nil {
		return Record{}, err
	}

	rec := records[idx]
	if rec.Booked > rec.bookableSlots() {
		l.logger.Warn("booking exceeds normal capacity",
			"specialty", specialty, "date", date, "booked", rec.Booked)
	}
	return rec, nil
}

// Decrement releases one booking, flooring at zero. Releasing against an
// unknown or already-empty record is a no-op and writes nothing.
func (l *Ledger) Decrement(ctx context.Context, specialty, date string) (Record, error) {
	if err := validateKey(specialty, date); err != nil {
		return Record{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.store.LoadAll(ctx)
	if err != nil {
		return Record{}, err
	}
	idx := indexOf(records, specialty, date)
	if idx < 0 {
		return l.defaultRecord(specialty, date), nil
	}
	if records[idx].Booked == 0 {
		return records[idx], nil
	}
	records[idx].Booked--
	if err := l.store.SaveAll(ctx, records); err != nil {
		return Record{}, err
	}
	return records[idx], nil
}

// NextAvailableDate scans forward from the day after `after`, up to
// horizonDays out, and returns the first day that still has normal-booking
// room. ok is false when every day in the horizon is full; callers get an
// explicit signal instead of an echoed input date they cannot tell apart
// from a genuine match.
func (l *Ledger) NextAvailableDate(ctx context.Context, specialty, after string, horizonDays int) (string, bool, error) {
	if err := validateKey(specialty, after); err != nil {
		return "", false, err
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	records, err := l.store.LoadAll(ctx)
	if err != nil {
		return "", false, err
	}

	for i := 1; i <= horizonDays; i++ {
		day := dates.Add(after, i)
		rec, ok := find(records, specialty, day)
		if !ok || rec.Booked < rec.bookableSlots() {
			return day, true, nil
		}
	}
	return "", false, nil
}

// BookedOn sums bookings across all specialties for one day. The load
// forecaster reads total demand through this.
func (l *Ledger) BookedOn(ctx context.Context, date string) (int, error) {
	if !dates.Valid(date) {
		return 0, ErrInvalidDate
	}
	records, err := l.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range records {
		if rec.Date == date {
			total += rec.Booked
		}
	}
	return total, nil
}

// PruneBefore drops records older than cutoff and returns how many were
// removed. Stale past-day records are harmless, so this only runs when an
// operator asks for it.
func (l *Ledger) PruneBefore(ctx context.Context, cutoff string) (int, error) {
	if !dates.Valid(cutoff) {
		return 0, ErrInvalidDate
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	kept := records[:0]
	for _, rec := range records {
		if rec.Date >= cutoff {
			kept = append(kept, rec)
		}
	}
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := l.store.SaveAll(ctx, kept); err != nil {
		return 0, err
	}
	l.logger.Info("pruned stale capacity records", "cutoff", cutoff, "removed", removed)
	return removed, nil
}

// Policy returns the ledger's standing capacity policy.
func (l *Ledger) Policy() Policy {
	return l.policy
}

func (l *Ledger) defaultRecord(specialty, date string) Record {
	return Record{
		Specialty:       specialty,
		Date:            date,
		MaxPerDay:       l.policy.MaxPerDay,
		EmergencyBuffer: l.policy.EmergencyBuffer,
	}
}

func find(records []Record, specialty, date string) (Record, bool) {
	if idx := indexOf(records, specialty, date); idx >= 0 {
		return records[idx], true
	}
	return Record{}, false
}

func indexOf(records []Record, specialty, date string) int {
	for i, rec := range records {
		if rec.Specialty == specialty && rec.Date == date {
			return i
		}
	}
	return -1
}
