// Package booking implements the reservation core: the availability engine
// that decides whether a candidate booking may be admitted, the booking
// service that orchestrates creation and cancellation, identity
// classification with scoped lookups, and the monthly usage ranking.
package booking

import "errors"

// The error taxonomy of the booking core.  Every failure a caller can
// recover from maps to exactly one of these sentinels; handlers translate
// them into user-facing messages and HTTP statuses.  None is fatal to the
// process.
var (
	// ErrInvalidTime covers off-grid times, times outside 09:00–24:00,
	// start >= end, malformed dates and dates outside the booking window.
	ErrInvalidTime = errors.New("invalid time")
	// ErrInvalidIdentity covers empty holder names or ids and ids that do
	// not match the configured format.
	ErrInvalidIdentity = errors.New("invalid identity")
	// ErrUnknownResource means the requested piano is not in the known set.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrSlotConflict means an existing reservation occupies part of the
	// requested interval on the same piano and date.
	ErrSlotConflict = errors.New("slot conflict")
	// ErrNotFound means no reservation with the given id exists.
	ErrNotFound = errors.New("reservation not found")
	// ErrForbidden means the requester is neither the administrative
	// identity nor the holder of the reservation.
	ErrForbidden = errors.New("forbidden")
	// ErrStoreFailure wraps transport or storage errors.  The detail is
	// logged server-side; clients only see a generic retry message.
	ErrStoreFailure = errors.New("store failure")
)
