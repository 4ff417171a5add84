package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// BookingService is the part of service.BookingService the handler drives.
type BookingService interface {
	GetBooking(ctx context.Context, userID uint64) (model.BookingView, error)
	InsertBooking(ctx context.Context, userID, roomID uint64) (uint64, error)
	ChangeBooking(ctx context.Context, userID, roomID, bookingID uint64) (uint64, error)
}

// BookingHandler serves /booking.  SessionAuth must run first so the
// user id is in the context.
type BookingHandler struct {
	svc     BookingService
	timeout time.Duration
}

// NewBookingHandler panics on a nil service.  A non-positive timeout leaves
// the request context untouched.
func NewBookingHandler(svc BookingService, timeout time.Duration) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{svc: svc, timeout: timeout}
}

type roomRequest struct {
	RoomID json.Number `json:"roomId" validate:"required"`
}

type bookingIDResponse struct {
	BookingID uint64 `json:"bookingId"`
}

// GetBooking handles GET /booking.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := h.context(c)
	defer cancel()

	view, err := h.svc.GetBooking(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// PostBooking handles POST /booking with body {"roomId": n}.
func (h *BookingHandler) PostBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok, err := h.bindRoom(c)
	if !ok {
		return err
	}
	ctx, cancel := h.context(c)
	defer cancel()

	id, err := h.svc.InsertBooking(ctx, userID, roomID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookingIDResponse{BookingID: id})
}

// PutBooking handles PUT /booking/:bookingId with body {"roomId": n}.
func (h *BookingHandler) PutBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := parseNumericID(c.Param("bookingId"))
	if !ok {
		return badRequest(c, "bookingId must be numeric")
	}
	roomID, ok, err := h.bindRoom(c)
	if !ok {
		return err
	}
	ctx, cancel := h.context(c)
	defer cancel()

	id, err := h.svc.ChangeBooking(ctx, userID, roomID, bookingID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookingIDResponse{BookingID: id})
}

// bindRoom decodes the body and checks that roomId is present and
// numeric.  Range is left to the service.  When ok is false the 400
// response has already been written and err is its write result.
func (h *BookingHandler) bindRoom(c echo.Context) (roomID uint64, ok bool, err error) {
	var body roomRequest
	if err := c.Bind(&body); err != nil {
		return 0, false, badRequest(c, "invalid request body")
	}
	if err := c.Validate(&body); err != nil {
		return 0, false, badRequest(c, validationMessages(err)...)
	}
	roomID, ok = parseNumericID(body.RoomID.String())
	if !ok {
		return 0, false, badRequest(c, "roomId must be numeric")
	}
	return roomID, true, nil
}

func (h *BookingHandler) context(c echo.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request().Context())
	}
	return context.WithTimeout(c.Request().Context(), h.timeout)
}
