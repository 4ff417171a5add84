package handler

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// getUserID reads the user id that SessionAuth stored in the context.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// parseNumericID accepts any numeric literal; ok is false only when raw is
// not a number.  Integral values map to themselves ("7.0" is 7, "1e2" is
// 100).  Numbers that cannot be a row id (zero, negative, fractional or
// out of range) map to 0, which no table uses, so the lookup that follows
// reports the row as missing.
func parseNumericID(raw string) (id uint64, ok bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, true
		}
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	if f < 1 || f != math.Trunc(f) || f >= math.MaxUint64 {
		return 0, true
	}
	return uint64(f), true
}
