package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/knupi/practice-reservation/internal/handler"    // handlers implementing the API surface
	"github.com/knupi/practice-reservation/internal/middleware" // holder identity, rate limiting and caching middleware
)

// RegisterRoutes registers routes that do not require any middleware on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the reservation API under /v1.  The identity
// middleware extracts the asserted holder pair from headers so that the
// rate limiter can key on it and cancellation can attribute the requester;
// there is no authentication involved.  rateLimit applies to the whole
// group, cache only to the read-only occupancy and ranking routes — lookup
// responses are per-caller and must never be served from a shared cache.
// Either middleware may be nil.
func RegisterAPI(e *echo.Echo, r *handler.ReservationHandler, p *handler.PianoHandler, rank *handler.RankingHandler, rateLimit, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.HolderIdentity())
	if rateLimit != nil {
		g.Use(rateLimit)
	}

	// Booking: create a reservation, cancel one by id, look up the
	// caller's visible reservations.
	g.POST("/reservations", r.Create)
	g.DELETE("/reservations/:id", r.Cancel)
	g.GET("/reservations", r.Lookup)

	// Occupancy views consumed by the presentation layer, cacheable for a
	// short TTL.
	var cached []echo.MiddlewareFunc
	if cache != nil {
		cached = append(cached, cache)
	}
	g.GET("/pianos", p.GetPianos, cached...)
	g.GET("/pianos/:resource/slots", p.GetSlots, cached...)

	// Monthly usage ranking for the landing page.
	g.GET("/rankings/monthly", rank.GetMonthly, cached...)
}
