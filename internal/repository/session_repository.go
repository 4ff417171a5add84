package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SessionRepo looks up login sessions.  Sessions are created by the sign-in
// flow, which lives outside this service.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// UserIDByToken returns the owner of the session carrying token, or
// ErrSessionNotFound.
func (r *SessionRepo) UserIDByToken(ctx context.Context, token string) (uint64, error) {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM sessions WHERE token=? ORDER BY id DESC LIMIT 1",
		token).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("find session: %w", err)
	}
	return userID, nil
}
