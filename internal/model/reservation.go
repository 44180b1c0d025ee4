package model

import (
	"time"

	"github.com/knupi/practice-reservation/internal/timeslot"
)

// Holder is the asserted name and id pair a reservation is booked under.
// It is not authenticated: the service trusts whatever the caller claims,
// with a single reserved administrative pair configured at startup.
//
// Fields:
//  Name – display name of the person holding the slot.
//  ID   – self-asserted identifier (a student number for club members).
type Holder struct {
	Name string `json:"holder_name"` // reservations.holder_name
	ID   string `json:"holder_id"`   // reservations.holder_id
}

// Equal reports whether two holders assert the same name and id.
func (h Holder) Equal(other Holder) bool {
	return h.Name == other.Name && h.ID == other.ID
}

// Reservation is the sole persisted entity: one exclusive booking of a piano
// for a contiguous run of half-hour slots on a single calendar date.  A
// reservation is created atomically after a successful availability check,
// never mutated, and destroyed by a hard delete on cancellation.
//
// Fields:
//  ID        – store-assigned opaque identifier, immutable.
//  Holder    – asserted name+id pair of the person holding the slot.
//  Resource  – piano name, validated against the configured resource set.
//  Date      – local civil date in ISO form ("2006-01-02").
//  StartTick – first occupied half-hour tick (inclusive).
//  EndTick   – first tick after the booking (exclusive); always > StartTick.
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        string        // reservations.id
	Holder    Holder        // reservations.holder_name / holder_id
	Resource  string        // reservations.resource
	Date      string        // reservations.date
	StartTick timeslot.Tick // reservations.start_tick
	EndTick   timeslot.Tick // reservations.end_tick
	CreatedAt time.Time     // reservations.created_at
}

// Start returns the booking's start as a fractional hour-of-day (13.5 means
// 13:30), the representation used at the API boundary.
func (r Reservation) Start() float64 { return r.StartTick.Hour() }

// End returns the booking's exclusive end as a fractional hour-of-day.
func (r Reservation) End() float64 { return r.EndTick.Hour() }

// DurationHours returns the booked duration in hours.
func (r Reservation) DurationHours() float64 {
	return (r.EndTick - r.StartTick).Hour()
}

// Overlaps reports whether r and other contend for the same piano at the
// same time.  Intervals that merely touch at a boundary do not overlap.
func (r Reservation) Overlaps(other Reservation) bool {
	if r.Resource != other.Resource || r.Date != other.Date {
		return false
	}
	return timeslot.Overlaps(r.StartTick, r.EndTick, other.StartTick, other.EndTick)
}

// ReservationDraft is a candidate reservation before admission: everything a
// Reservation carries except the store-assigned id and timestamp.  Drafts
// are what the availability engine validates and what the store persists.
type ReservationDraft struct {
	Holder    Holder
	Resource  string
	Date      string
	StartTick timeslot.Tick
	EndTick   timeslot.Tick
}
