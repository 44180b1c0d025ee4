package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/repository"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

// Identity classifies a caller's asserted holder pair as administrative or
// regular and scopes queries accordingly.  The administrative pair is a
// reserved convenience credential injected from configuration — it is not a
// security boundary, and swapping in real authentication later means
// replacing this classifier only.
type Identity struct {
	admin model.Holder
	store repository.ReservationStore
	now   func() time.Time
}

// NewIdentity returns an Identity recognizing admin as the administrative
// sentinel pair.
func NewIdentity(admin model.Holder, store repository.ReservationStore) *Identity {
	return &Identity{admin: admin, store: store, now: time.Now}
}

// WithClock overrides the clock used to compute "today" for scoping.
func (s *Identity) WithClock(now func() time.Time) *Identity {
	s.now = now
	return s
}

// IsAdmin reports whether the caller asserts the administrative pair.
func (s *Identity) IsAdmin(caller model.Holder) bool {
	return caller.Equal(s.admin)
}

// Lookup returns the reservations visible to the caller, ordered by date
// ascending.  The administrative identity sees everything; a regular caller
// sees only their own bookings dated today or later — past bookings are
// hidden from regular callers.
func (s *Identity) Lookup(ctx context.Context, caller model.Holder) ([]model.Reservation, error) {
	if caller.Name == "" || caller.ID == "" {
		return nil, fmt.Errorf("%w: holder name and id are required", ErrInvalidIdentity)
	}
	if s.IsAdmin(caller) {
		all, err := s.store.ListAll(ctx)
		if err != nil {
			log.Printf("identity: list reservations: %v", err)
			return nil, fmt.Errorf("%w: list reservations", ErrStoreFailure)
		}
		return all, nil
	}

	today := s.now().Format(timeslot.DateLayout)
	upcoming, err := s.store.ListByDateRange(ctx, today, "")
	if err != nil {
		log.Printf("identity: list reservations from %s: %v", today, err)
		return nil, fmt.Errorf("%w: list reservations", ErrStoreFailure)
	}
	var mine []model.Reservation
	for _, r := range upcoming {
		if r.Holder.Equal(caller) {
			mine = append(mine, r)
		}
	}
	return mine, nil
}
