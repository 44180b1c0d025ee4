// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Event kinds carried on the reservation.events queue.
const (
	KindReservationCreated   = "reservation.created"
	KindReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published when a reservation is accepted or cancelled.
// It contains enough information for downstream consumers to log or trigger
// analytics without querying the primary database.  Start and End are
// fractional hours-of-day (13.5 means 13:30).
type ReservationEvent struct {
	Kind          string  `json:"kind"`
	ReservationID string  `json:"reservation_id"`
	HolderName    string  `json:"holder_name"`
	HolderID      string  `json:"holder_id"`
	Resource      string  `json:"resource"`
	Date          string  `json:"date"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	OccurredAt    string  `json:"occurred_at"`
}
