// Package repository provides durable access to reservations.  It defines
// the ReservationStore interface the rest of the service depends on, plus a
// MySQL implementation and an in-memory implementation with identical
// semantics.  Sentinel errors declared here let higher layers distinguish
// failure scenarios with errors.Is without inspecting driver-specific types.
package repository

import "errors"

// ErrNotFound is returned when a delete targets a reservation id that does
// not exist.  Deleting twice yields ErrNotFound the second time; callers
// should treat it as the cancellation having already taken effect.
var ErrNotFound = errors.New("reservation not found")

// ErrSlotTaken is returned by Insert when the store's uniqueness constraint
// on (resource, date, tick) rejects the write.  It means another reservation
// already occupies at least one of the requested half-hour slots — including
// one inserted by a concurrent caller after the availability check ran.
var ErrSlotTaken = errors.New("slot already taken")
