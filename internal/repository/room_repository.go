package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// RoomRepo reads hotel rooms.  Rooms are never written by this service.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// GetByID retrieves a room by its ID.  It returns ErrRoomNotFound when no
// row is found.
func (r *RoomRepo) GetByID(ctx context.Context, roomID uint64) (*model.Room, error) {
	const q = `SELECT id, name, capacity, hotel_id, created_at, updated_at FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, roomID).
		Scan(&room.ID, &room.Name, &room.Capacity, &room.HotelID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room %d: %w", roomID, err)
	}
	return &room, nil
}
