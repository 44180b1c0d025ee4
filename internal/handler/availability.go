package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/knupi/practice-reservation/internal/repository"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

// PianoHandler serves the read-only occupancy views the presentation layer
// renders: the piano list and the per-date half-hour occupancy bar.  It
// reads straight from the store; all writes go through the booking service.
type PianoHandler struct {
	Resources *timeslot.ResourceSet
	Store     repository.ReservationStore
}

// NewPianoHandler constructs a PianoHandler.
func NewPianoHandler(resources *timeslot.ResourceSet, store repository.ReservationStore) *PianoHandler {
	if resources == nil || store == nil {
		panic("nil dependency passed to NewPianoHandler")
	}
	return &PianoHandler{Resources: resources, Store: store}
}

// GetPianos handles GET /v1/pianos and returns the configured piano names
// in display order.
func (h *PianoHandler) GetPianos(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"pianos": h.Resources.List()})
}

// slotStatus is one cell of the occupancy bar: a half-hour grid slot and
// whether it is still bookable.
type slotStatus struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Available bool    `json:"available"`
}

// GetSlots handles GET /v1/pianos/:resource/slots?date=YYYY-MM-DD.  It
// returns one entry per grid slot (09:00 through 23:30) with its occupancy
// for the requested date.
func (h *PianoHandler) GetSlots(c echo.Context) error {
	resource := c.Param("resource")
	if !h.Resources.Contains(resource) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown piano"})
	}
	date := c.QueryParam("date")
	if _, err := timeslot.ParseDate(date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be an ISO date (YYYY-MM-DD)"})
	}

	existing, err := h.Store.ListForSlot(c.Request().Context(), resource, date)
	if err != nil {
		c.Logger().Errorf("list reservations for %s on %s: %v", resource, date, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "temporary failure, please try again"})
	}

	occupied := make(map[timeslot.Tick]bool)
	for _, r := range existing {
		for t := r.StartTick; t < r.EndTick; t++ {
			occupied[t] = true
		}
	}

	grid := timeslot.GridTicks()
	slots := make([]slotStatus, 0, len(grid))
	for _, t := range grid {
		slots = append(slots, slotStatus{
			Start:     t.Hour(),
			End:       (t + 1).Hour(),
			Available: !occupied[t],
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"resource": resource,
		"date":     date,
		"slots":    slots,
	})
}
