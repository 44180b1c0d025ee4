package repository

import (
	"context"

	"github.com/knupi/practice-reservation/internal/model"
)

// ReservationStore is the only I/O edge of the booking core.  Any
// record-oriented backend can sit behind it as long as it honors these
// semantics:
//
//   - Insert persists a draft, assigns the opaque id, and fails with
//     ErrSlotTaken when any requested (resource, date, tick) slot is already
//     occupied.  It never enforces business rules beyond that uniqueness
//     guarantee; validation is the caller's job.
//   - List methods return bounded, restartable collections, never lazy
//     streams.
//   - DeleteByID is a hard delete; a missing id is ErrNotFound.
//
// Transport or storage failures surface as ordinary wrapped errors distinct
// from the sentinels above.
type ReservationStore interface {
	// ListAll returns every persisted reservation.
	ListAll(ctx context.Context) ([]model.Reservation, error)
	// ListByDateRange returns reservations with from <= date < to, both ISO
	// dates.  An empty bound disables that side of the restriction.
	ListByDateRange(ctx context.Context, from, to string) ([]model.Reservation, error)
	// ListForSlot returns the reservations for one resource on one date —
	// the snapshot the availability engine validates against, read
	// immediately before each admission decision and never cached.
	ListForSlot(ctx context.Context, resource, date string) ([]model.Reservation, error)
	// Insert persists the draft and returns the stored reservation with its
	// assigned id.
	Insert(ctx context.Context, draft model.ReservationDraft) (*model.Reservation, error)
	// DeleteByID removes the reservation with the given id.
	DeleteByID(ctx context.Context, id string) error
}
