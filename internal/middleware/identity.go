package middleware

// identity.go extracts the caller's asserted holder identity from request
// headers and stores it in the Echo context for downstream use (rate-limit
// keys, cancellation requests).  There is no authentication here: the
// holder pair is a self-asserted convention, and the single administrative
// pair is classified by the booking core, not by middleware.

import (
	"github.com/labstack/echo/v4"

	"github.com/knupi/practice-reservation/internal/model"
)

// Header names carrying the asserted holder pair.
const (
	HeaderHolderName = "X-Holder-Name"
	HeaderHolderID   = "X-Holder-Id"
)

// Context keys under which the holder pair is stored.
const (
	ctxHolderName = "holder_name"
	ctxHolderID   = "holder_id"
)

// HolderIdentity copies the asserted holder headers into the request
// context.  Requests without the headers pass through unchanged; handlers
// that require an identity reject them with the invalid-identity error.
func HolderIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if name := c.Request().Header.Get(HeaderHolderName); name != "" {
				c.Set(ctxHolderName, name)
			}
			if id := c.Request().Header.Get(HeaderHolderID); id != "" {
				c.Set(ctxHolderID, id)
			}
			return next(c)
		}
	}
}

// HolderFromContext returns the holder pair asserted by the request, if any.
func HolderFromContext(c echo.Context) model.Holder {
	var h model.Holder
	if v, ok := c.Get(ctxHolderName).(string); ok {
		h.Name = v
	}
	if v, ok := c.Get(ctxHolderID).(string); ok {
		h.ID = v
	}
	return h
}
