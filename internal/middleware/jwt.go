package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionLookup resolves the owner of a stored session token.
type SessionLookup interface {
	UserIDByToken(ctx context.Context, token string) (uint64, error)
}

// SessionAuth validates a Bearer token and requires a matching session row.
// On success the numeric user id is stored under "user_id" as a uint64.
func SessionAuth(secret string, sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, "missing bearer token")
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if raw == "" {
				return unauthorized(c, "missing bearer token")
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return unauthorized(c, "invalid token")
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c, "invalid claims")
			}
			userID, ok := claimUserID(claims)
			if !ok {
				return unauthorized(c, "invalid claims")
			}

			owner, err := sessions.UserIDByToken(c.Request().Context(), raw)
			if err != nil || owner != userID {
				return unauthorized(c, "session not found")
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}

// claimUserID reads "sub", falling back to the older "userId" claim.  Both
// numeric and string encodings are accepted.
func claimUserID(claims jwt.MapClaims) (uint64, bool) {
	for _, name := range []string{"sub", "userId"} {
		switch v := claims[name].(type) {
		case float64:
			if v > 0 && v == float64(uint64(v)) {
				return uint64(v), true
			}
		case string:
			if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
				return n, true
			}
		}
	}
	return 0, false
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}
