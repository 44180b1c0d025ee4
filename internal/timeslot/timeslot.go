// Package timeslot defines the half-hour scheduling grid and the fixed set of
// bookable pianos.  Everything in this package is a pure value type: there is
// no I/O and no failure mode beyond a boolean or a parse error.
//
// Time-of-day is handled as a Tick, an integer count of half hours since
// midnight (09:00 = tick 18, 13:30 = tick 27, 24:00 = tick 48).  Fractional
// hour values such as 13.5 only appear at the API boundary; all comparisons
// and overlap checks inside the service operate on ticks so that
// floating-point equality never decides whether two bookings collide.
package timeslot

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TickMinutes is the slot granularity in minutes.
	TickMinutes = 30
	// OpenTick is the first bookable tick of the day (09:00).
	OpenTick Tick = 18
	// CloseTick is the exclusive upper bound of the grid (24:00).
	CloseTick Tick = 48
)

// DateLayout is the ISO format every reservation date is stored in.  Dates
// are local civil dates; no time zone conversion is ever applied to them.
const DateLayout = "2006-01-02"

// Tick is a time of day counted in half hours since midnight.
type Tick int

// FromHour converts a fractional hour-of-day (e.g. 13.5 for 13:30) into a
// Tick.  It reports false when the value is not quantized to half hours.
func FromHour(h float64) (Tick, bool) {
	doubled := h * 2
	if doubled != float64(int(doubled)) {
		return 0, false
	}
	return Tick(doubled), true
}

// Hour converts a Tick back to the fractional hour-of-day used by clients.
func (t Tick) Hour() float64 { return float64(t) / 2 }

// String renders a Tick as a wall-clock label, e.g. "13:30".
func (t Tick) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/2, int(t)%2*TickMinutes)
}

// IsValidTime reports whether t lies on the bookable grid, inclusive of both
// edges so that 24:00 is acceptable as an end time.
func IsValidTime(t Tick) bool { return t >= OpenTick && t <= CloseTick }

// IsValidSlotRange reports whether [start, end) is a well-formed interval on
// the grid: both endpoints valid and start strictly before end.
func IsValidSlotRange(start, end Tick) bool {
	return IsValidTime(start) && IsValidTime(end) && start < end
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.  Intervals that merely touch at a boundary do not
// overlap, so back-to-back bookings are permitted.
func Overlaps(aStart, aEnd, bStart, bEnd Tick) bool {
	return aStart < bEnd && bStart < aEnd
}

// GridTicks returns every bookable start tick of a day in ascending order
// (09:00 through 23:30).  The presentation layer renders one occupancy cell
// per entry.
func GridTicks() []Tick {
	out := make([]Tick, 0, CloseTick-OpenTick)
	for t := OpenTick; t < CloseTick; t++ {
		out = append(out, t)
	}
	return out
}

// ParseDate parses an ISO calendar date ("2006-01-02").
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DefaultPianos is the practice room's piano inventory.  Deployments with a
// different floor plan override it through configuration.
var DefaultPianos = []string{"piano-1", "piano-2", "piano-3", "piano-4"}

// ResourceSet is the closed set of bookable resource names.  Membership
// checks are O(1); List preserves the configured order for display.
type ResourceSet struct {
	names   []string
	members map[string]struct{}
}

// NewResourceSet builds a ResourceSet from the given names.  Blank entries
// are skipped and duplicates collapse to one member.
func NewResourceSet(names []string) *ResourceSet {
	s := &ResourceSet{members: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := s.members[n]; ok {
			continue
		}
		s.members[n] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

// Contains reports whether name is one of the known resources.
func (s *ResourceSet) Contains(name string) bool {
	_, ok := s.members[name]
	return ok
}

// List returns the resource names in configured order.
func (s *ResourceSet) List() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
