package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/knupi/practice-reservation/internal/booking"
)

// RankingHandler serves the monthly top-N usage ranking shown on the
// club's landing page.
type RankingHandler struct {
	Booking *booking.Service
	Size    int
}

// NewRankingHandler constructs a RankingHandler returning size entries.
func NewRankingHandler(svc *booking.Service, size int) *RankingHandler {
	if svc == nil {
		panic("nil service passed to NewRankingHandler")
	}
	if size <= 0 {
		size = 3
	}
	return &RankingHandler{Booking: svc, Size: size}
}

// GetMonthly handles GET /v1/rankings/monthly?year=&month=.  Omitted
// parameters default to the current month.
func (h *RankingHandler) GetMonthly(c echo.Context) error {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := c.QueryParam("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2000 || n > 9999 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		year = n
	}
	if v := c.QueryParam("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month"})
		}
		month = time.Month(n)
	}

	entries, err := h.Booking.MonthlyRanking(c.Request().Context(), year, month, h.Size)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"year":    year,
		"month":   int(month),
		"ranking": entries,
	})
}
