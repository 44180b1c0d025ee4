package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/knupi/practice-reservation/internal/booking"
	"github.com/knupi/practice-reservation/internal/middleware"
	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

// ReservationHandler exposes reservation creation, cancellation and scoped
// lookup over HTTP.  All admission decisions live in the booking core; this
// layer only converts between the wire representation (fractional hours,
// JSON bodies, headers) and domain types, and maps error kinds to statuses
// and user-facing messages.
type ReservationHandler struct {
	Booking  *booking.Service
	Identity *booking.Identity
}

// NewReservationHandler constructs a ReservationHandler.  Both dependencies
// must be non-nil.
func NewReservationHandler(svc *booking.Service, identity *booking.Identity) *ReservationHandler {
	if svc == nil || identity == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Booking: svc, Identity: identity}
}

// reservationResponse is the wire shape of a reservation.  Start and end are
// fractional hours-of-day (13.5 means 13:30), matching what clients render.
type reservationResponse struct {
	ID         string  `json:"id"`
	HolderName string  `json:"holder_name"`
	HolderID   string  `json:"holder_id"`
	Resource   string  `json:"resource"`
	Date       string  `json:"date"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
}

func toResponse(r model.Reservation) reservationResponse {
	return reservationResponse{
		ID:         r.ID,
		HolderName: r.Holder.Name,
		HolderID:   r.Holder.ID,
		Resource:   r.Resource,
		Date:       r.Date,
		Start:      r.Start(),
		End:        r.End(),
	}
}

// writeBookingError maps a booking error kind to an HTTP status and a
// user-facing message.  Store failures deliberately stay generic; the
// detail has already been logged by the core.
func writeBookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidTime):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time slot"})
	case errors.Is(err, booking.ErrInvalidIdentity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and a valid student id are required"})
	case errors.Is(err, booking.ErrUnknownResource):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown piano"})
	case errors.Is(err, booking.ErrSlotConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already booked"})
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "temporary failure, please try again"})
	}
}

// Create handles POST /v1/reservations.  The request body carries the
// asserted holder pair, the piano, an ISO date and the slot boundaries as
// fractional hours.  Off-grid times are rejected before the core runs.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body struct {
		HolderName string  `json:"holder_name"`
		HolderID   string  `json:"holder_id"`
		Resource   string  `json:"resource"`
		Date       string  `json:"date"`
		Start      float64 `json:"start"`
		End        float64 `json:"end"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	start, ok := timeslot.FromHour(body.Start)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time slot"})
	}
	end, ok := timeslot.FromHour(body.End)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time slot"})
	}

	draft := model.ReservationDraft{
		Holder:    model.Holder{Name: body.HolderName, ID: body.HolderID},
		Resource:  body.Resource,
		Date:      body.Date,
		StartTick: start,
		EndTick:   end,
	}
	res, err := h.Booking.Reserve(c.Request().Context(), draft)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, toResponse(*res))
}

// Cancel handles DELETE /v1/reservations/:id.  The requester's identity
// comes from the X-Holder-Name / X-Holder-Id headers; the booking core
// decides whether that identity may cancel the reservation.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	requester := middleware.HolderFromContext(c)
	if requester.Name == "" || requester.ID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and a valid student id are required"})
	}
	if err := h.Booking.Cancel(c.Request().Context(), id, requester); err != nil {
		return writeBookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Lookup handles GET /v1/reservations.  The caller's holder pair comes from
// query parameters, falling back to the identity headers.  The booking core
// scopes the result: the administrative pair sees everything, a regular
// caller only their own upcoming bookings.
func (h *ReservationHandler) Lookup(c echo.Context) error {
	caller := model.Holder{
		Name: c.QueryParam("holder_name"),
		ID:   c.QueryParam("holder_id"),
	}
	if caller.Name == "" && caller.ID == "" {
		caller = middleware.HolderFromContext(c)
	}
	list, err := h.Identity.Lookup(c.Request().Context(), caller)
	if err != nil {
		return writeBookingError(c, err)
	}
	out := make([]reservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toResponse(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}
