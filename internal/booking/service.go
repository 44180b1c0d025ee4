package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/repository"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

// EventSink receives notifications about accepted bookings and
// cancellations.  Publishing is best-effort: failures are logged by the
// implementation and never fail the request.
type EventSink interface {
	ReservationCreated(ctx context.Context, r model.Reservation)
	ReservationCancelled(ctx context.Context, r model.Reservation)
}

// Service orchestrates reservation creation and cancellation.  It reads the
// relevant (resource, date) snapshot immediately before validation — never
// cached across requests — runs the availability engine, and persists
// through the store, whose slot uniqueness closes the read-validate-write
// race between concurrent callers.
type Service struct {
	store      repository.ReservationStore
	engine     *Engine
	identity   *Identity
	windowDays int
	now        func() time.Time
	events     EventSink
}

// NewService wires a booking Service.  windowDays bounds how far ahead a
// booking may start (0 disables the bound); events may be nil.
func NewService(store repository.ReservationStore, engine *Engine, identity *Identity, windowDays int, events EventSink) *Service {
	return &Service{
		store:      store,
		engine:     engine,
		identity:   identity,
		windowDays: windowDays,
		now:        time.Now,
		events:     events,
	}
}

// WithClock overrides the service clock.  Tests use it to pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Reserve admits and persists a candidate reservation.  On any validation
// error the error is returned untouched and nothing is written.  A conflict
// detected by the store after a concurrent insert surfaces as
// ErrSlotConflict, exactly as one caught by validation.
func (s *Service) Reserve(ctx context.Context, draft model.ReservationDraft) (*model.Reservation, error) {
	date, err := timeslot.ParseDate(draft.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q is not a valid ISO date", ErrInvalidTime, draft.Date)
	}
	if err := s.checkWindow(date); err != nil {
		return nil, err
	}

	existing, err := s.store.ListForSlot(ctx, draft.Resource, draft.Date)
	if err != nil {
		return nil, s.storeFailure("list reservations for slot", err)
	}
	if err := s.engine.Validate(draft, existing); err != nil {
		return nil, err
	}

	res, err := s.store.Insert(ctx, draft)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, fmt.Errorf("%w: slot was taken by a concurrent booking", ErrSlotConflict)
		}
		return nil, s.storeFailure("insert reservation", err)
	}

	if s.events != nil {
		s.events.ReservationCreated(ctx, *res)
	}
	return res, nil
}

// Cancel deletes the reservation with the given id on behalf of requester.
// The administrative identity may cancel anything; everyone else only their
// own.  Cancelling an already-cancelled id yields ErrNotFound, which callers
// should treat as the cancellation having already taken effect.
func (s *Service) Cancel(ctx context.Context, id string, requester model.Holder) error {
	// The store exposes no direct get, so resolve the id via ListAll.
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return s.storeFailure("list reservations", err)
	}
	var target *model.Reservation
	for i := range all {
		if all[i].ID == id {
			target = &all[i]
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}
	if !s.identity.IsAdmin(requester) && !requester.Equal(target.Holder) {
		return fmt.Errorf("%w: reservation %s is held by someone else", ErrForbidden, id)
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return s.storeFailure("delete reservation", err)
	}

	if s.events != nil {
		s.events.ReservationCancelled(ctx, *target)
	}
	return nil
}

// checkWindow enforces the rolling booking horizon: a reservation may start
// no earlier than today and no later than windowDays ahead.
func (s *Service) checkWindow(date time.Time) error {
	if s.windowDays <= 0 {
		return nil
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidTime)
	}
	if !date.Before(today.AddDate(0, 0, s.windowDays)) {
		return fmt.Errorf("%w: date is more than %d days ahead", ErrInvalidTime, s.windowDays)
	}
	return nil
}

// storeFailure logs the underlying error with detail and returns the
// generic store failure the client may see.
func (s *Service) storeFailure(op string, err error) error {
	log.Printf("booking: %s: %v", op, err)
	return fmt.Errorf("%w: %s", ErrStoreFailure, op)
}
