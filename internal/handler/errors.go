package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/service"
)

var categoryStatus = map[service.Category]int{
	service.CategoryBadRequest: http.StatusBadRequest,
	service.CategoryNotFound:   http.StatusNotFound,
	service.CategoryForbidden:  http.StatusForbidden,
}

// writeError is the only place a service category becomes a status code.
// Errors without a category are reported as 500.
func writeError(c echo.Context, err error) error {
	e, ok := service.AsError(err)
	if !ok {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	msgs := e.Messages
	if len(msgs) == 0 && e.Err != nil {
		msgs = []string{e.Err.Error()}
	}
	return c.JSON(categoryStatus[e.Category], echo.Map{
		"error":    e.Category.String(),
		"messages": msgs,
	})
}

func badRequest(c echo.Context, msgs ...string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":    service.CategoryBadRequest.String(),
		"messages": msgs,
	})
}
