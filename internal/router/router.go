package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterBooking mounts the booking endpoints.  auth runs before limiter
// so the limiter can key on the authenticated user.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, auth, limiter echo.MiddlewareFunc) {
	g := e.Group("/booking", auth, limiter)
	g.GET("", h.GetBooking)
	g.POST("", h.PostBooking)
	g.PUT("/:bookingId", h.PutBooking)
}
