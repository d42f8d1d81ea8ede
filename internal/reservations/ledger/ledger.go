// Package ledger owns all reservation records. It is the single shared
// mutable resource in the system: every mutation goes through its
// synchronized API, and the central invariant is that at most one active
// reservation exists per (table, slot) pair at any time.
package ledger

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	reserrors "tably/internal/reservations/errors"
	"tably/pkg/model"
)

type slotKey struct {
	tableID int
	date    model.Date
	time    model.TimeOfDay
}

type Ledger struct {
	mu     sync.Mutex
	byID   map[string]*model.Reservation
	active map[slotKey]string
	order  []*model.Reservation
	seq    int
}

func New() *Ledger {
	return &Ledger{
		byID:   make(map[string]*model.Reservation),
		active: make(map[slotKey]string),
	}
}

func key(tableID int, slot model.TimeSlot) slotKey {
	return slotKey{tableID: tableID, date: slot.Date, time: slot.Time}
}

// ActiveConflict reports whether an active reservation already holds the
// exact (table, slot) pair.
func (l *Ledger) ActiveConflict(tableID int, slot model.TimeSlot) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, taken := l.active[key(tableID, slot)]
	return taken
}

// Insert atomically re-checks the conflict invariant and adds the record.
// A losing race returns ErrSlotTaken. The ledger assigns the id ("RES" plus
// a zero-padded, strictly increasing sequence number, never reused) and the
// creation timestamp; the returned value is a copy the caller owns.
func (l *Ledger) Insert(res model.Reservation) (model.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(res.TableID, res.Slot)
	if _, taken := l.active[k]; taken {
		return model.Reservation{}, fmt.Errorf("table %d at %s: %w", res.TableID, res.Slot, reserrors.ErrSlotTaken)
	}

	l.seq++
	res.ID = fmt.Sprintf("RES%04d", l.seq)
	res.Status = model.StatusActive
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}

	stored := res
	l.byID[stored.ID] = &stored
	l.active[k] = stored.ID
	l.order = append(l.order, &stored)
	return res, nil
}

// Get returns a copy of the record with the given id.
func (l *Ledger) Get(id string) (model.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, ok := l.byID[id]
	if !ok {
		return model.Reservation{}, reserrors.ErrNotFound
	}
	return *res, nil
}

// Cancel flips the record to cancelled and releases its (table, slot) hold.
// Cancellation is a soft delete: the record stays queryable forever.
func (l *Ledger) Cancel(id string) (model.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, ok := l.byID[id]
	if !ok {
		return model.Reservation{}, reserrors.ErrNotFound
	}
	if res.Status == model.StatusCancelled {
		return model.Reservation{}, reserrors.ErrAlreadyCancelled
	}

	res.Status = model.StatusCancelled
	delete(l.active, key(res.TableID, res.Slot))
	return *res, nil
}

// Query returns copies of every record matching pred, sorted by (date,
// time) ascending with ties broken by insertion order. The read path never
// mutates.
func (l *Ledger) Query(pred func(model.Reservation) bool) []model.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Reservation, 0, len(l.order))
	for _, res := range l.order {
		if pred == nil || pred(*res) {
			out = append(out, *res)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Slot.Date != out[j].Slot.Date {
			return out[i].Slot.Date < out[j].Slot.Date
		}
		return out[i].Slot.Time.Before(out[j].Slot.Time)
	})
	return out
}

// Snapshot returns a copy of the full ledger in insertion order, suitable
// for the optional persistence hook.
func (l *Ledger) Snapshot() []model.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Reservation, 0, len(l.order))
	for _, res := range l.order {
		out = append(out, *res)
	}
	return out
}

var idPattern = regexp.MustCompile(`^RES(\d{4,})$`)

// Restore replaces the ledger contents with a previously captured snapshot.
// The records must be in their original insertion order; the sequence
// counter resumes past the highest id seen so ids are never reused.
func (l *Ledger) Restore(records []model.Reservation) error {
	byID := make(map[string]*model.Reservation, len(records))
	active := make(map[slotKey]string, len(records))
	order := make([]*model.Reservation, 0, len(records))
	seq := 0

	for _, res := range records {
		m := idPattern.FindStringSubmatch(res.ID)
		if m == nil {
			return fmt.Errorf("malformed reservation ID %q", res.ID)
		}
		if _, dup := byID[res.ID]; dup {
			return fmt.Errorf("%w: %s", reserrors.ErrDuplicateID, res.ID)
		}
		if res.Status == model.StatusActive {
			k := key(res.TableID, res.Slot)
			if holder, taken := active[k]; taken {
				return fmt.Errorf("snapshot violates the no-double-booking invariant: %s and %s both hold table %d at %s",
					holder, res.ID, res.TableID, res.Slot)
			}
			active[k] = res.ID
		}
		n, _ := strconv.Atoi(m[1])
		if n > seq {
			seq = n
		}
		stored := res
		byID[stored.ID] = &stored
		order = append(order, &stored)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.byID = byID
	l.active = active
	l.order = order
	l.seq = seq
	return nil
}

// Len reports the total number of records, cancelled included.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byID)
}
