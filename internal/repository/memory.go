package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

// MemoryStore is an in-process ReservationStore guarded by a mutex.  It
// backs the test suite and lets the service run without a database.  Its
// Insert enforces the same slot-level uniqueness the MySQL schema does, so
// the booking service behaves identically against either backend.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]model.Reservation
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]model.Reservation)}
}

func (s *MemoryStore) snapshot(keep func(model.Reservation) bool) []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Reservation
	for _, r := range s.byID {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].StartTick < out[j].StartTick
	})
	return out
}

// ListAll returns every stored reservation ordered by date, resource and
// start tick.
func (s *MemoryStore) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return s.snapshot(func(model.Reservation) bool { return true }), nil
}

// ListByDateRange returns reservations with from <= date < to; an empty
// bound leaves that side open.  ISO date strings compare correctly as text.
func (s *MemoryStore) ListByDateRange(ctx context.Context, from, to string) ([]model.Reservation, error) {
	return s.snapshot(func(r model.Reservation) bool {
		if from != "" && r.Date < from {
			return false
		}
		if to != "" && r.Date >= to {
			return false
		}
		return true
	}), nil
}

// ListForSlot returns the reservations for one resource on one date.
func (s *MemoryStore) ListForSlot(ctx context.Context, resource, date string) ([]model.Reservation, error) {
	return s.snapshot(func(r model.Reservation) bool {
		return r.Resource == resource && r.Date == date
	}), nil
}

// Insert stores the draft under a fresh id.  The occupancy re-check under
// the write lock mirrors the MySQL composite-key rejection: of two racing
// inserts for overlapping intervals, exactly one gets ErrSlotTaken.
func (s *MemoryStore) Insert(ctx context.Context, draft model.ReservationDraft) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Resource != draft.Resource || existing.Date != draft.Date {
			continue
		}
		if timeslot.Overlaps(draft.StartTick, draft.EndTick, existing.StartTick, existing.EndTick) {
			return nil, ErrSlotTaken
		}
	}
	res := model.Reservation{
		ID:        uuid.NewString(),
		Holder:    draft.Holder,
		Resource:  draft.Resource,
		Date:      draft.Date,
		StartTick: draft.StartTick,
		EndTick:   draft.EndTick,
		CreatedAt: time.Now().UTC(),
	}
	s.byID[res.ID] = res
	return &res, nil
}

// DeleteByID removes a reservation; a missing id is ErrNotFound.
func (s *MemoryStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
