package booking

import (
	"fmt"

	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

// Policy carries the admission rules the availability engine applies beyond
// the fixed grid arithmetic.
//
// Fields:
//  Resources      – the closed set of bookable pianos.
//  HolderIDLength – required length of a non-administrative holder id
//                   (a student number); 0 disables the format check.
//  Admin          – the administrative sentinel pair, exempt from the holder
//                   id format rule.
type Policy struct {
	Resources      *timeslot.ResourceSet
	HolderIDLength int
	Admin          model.Holder
}

// Engine decides whether a candidate reservation may be admitted.  Validate
// is a pure function of its inputs: it performs no I/O, so the caller must
// supply a sufficiently fresh snapshot of existing reservations.  The
// store's slot uniqueness covers whatever staleness remains.
type Engine struct {
	policy Policy
}

// NewEngine returns an Engine applying the given policy.
func NewEngine(policy Policy) *Engine { return &Engine{policy: policy} }

// Validate checks the candidate against the grid, the identity policy, the
// resource set and the supplied snapshot of existing reservations, in that
// order.  The first failing rule decides the returned error kind; nil means
// the candidate may be persisted.
func (e *Engine) Validate(candidate model.ReservationDraft, existing []model.Reservation) error {
	if !timeslot.IsValidSlotRange(candidate.StartTick, candidate.EndTick) {
		return fmt.Errorf("%w: range %s-%s is not a valid half-hour interval between %s and %s",
			ErrInvalidTime, candidate.StartTick, candidate.EndTick, timeslot.OpenTick, timeslot.CloseTick)
	}
	if err := e.validateHolder(candidate.Holder); err != nil {
		return err
	}
	if !e.policy.Resources.Contains(candidate.Resource) {
		return fmt.Errorf("%w: %q", ErrUnknownResource, candidate.Resource)
	}
	for _, r := range existing {
		if r.Resource != candidate.Resource || r.Date != candidate.Date {
			continue
		}
		if timeslot.Overlaps(candidate.StartTick, candidate.EndTick, r.StartTick, r.EndTick) {
			return fmt.Errorf("%w: %s on %s is booked %s-%s",
				ErrSlotConflict, r.Resource, r.Date, r.StartTick, r.EndTick)
		}
	}
	return nil
}

func (e *Engine) validateHolder(h model.Holder) error {
	if h.Name == "" || h.ID == "" {
		return fmt.Errorf("%w: holder name and id are required", ErrInvalidIdentity)
	}
	if h.Equal(e.policy.Admin) {
		return nil
	}
	if n := e.policy.HolderIDLength; n > 0 && len([]rune(h.ID)) != n {
		return fmt.Errorf("%w: holder id must be %d characters", ErrInvalidIdentity, n)
	}
	return nil
}
