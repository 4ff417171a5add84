package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// BookingRepo provides data access to the bookings table.  All timestamps
// are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, user_id, room_id, created_at, updated_at`

// FindByUserID returns the user's booking joined with its room.  When
// several rows exist for the user (possible under concurrent inserts) the
// oldest one wins.  ErrBookingNotFound is returned when the user has none.
func (r *BookingRepo) FindByUserID(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
	const q = `SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
	                  r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at
	           FROM bookings b
	           JOIN rooms r ON r.id = b.room_id
	           WHERE b.user_id = ?
	           ORDER BY b.id
	           LIMIT 1`
	var b model.BookingWithRoom
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
		&b.Room.ID, &b.Room.Name, &b.Room.Capacity, &b.Room.HotelID, &b.Room.CreatedAt, &b.Room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking by user %d: %w", userID, err)
	}
	return &b, nil
}

// FindByID retrieves a booking by its primary key.
func (r *BookingRepo) FindByID(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	b, err := r.get(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", bookingID, err)
	}
	return b, nil
}

// Create inserts a booking for the user and room and reads the row back so
// the returned value carries the generated id and timestamps.  No
// uniqueness is enforced here.
func (r *BookingRepo) Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	const q = `INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, userID, roomID)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	b, err := r.get(ctx, uint64(id))
	if err != nil {
		return nil, fmt.Errorf("read back booking %d: %w", id, err)
	}
	return b, nil
}

// CountByRoom returns the number of bookings that reference the room.
func (r *BookingRepo) CountByRoom(ctx context.Context, roomID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE room_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, roomID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bookings for room %d: %w", roomID, err)
	}
	return n, nil
}

// UpdateRoom reassigns an existing booking to another room.  It returns
// ErrBookingNotFound when the booking does not exist.  An update that
// changes nothing (same room within the same second) affects zero rows,
// so existence is decided by the read back.
func (r *BookingRepo) UpdateRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	const q = `UPDATE bookings SET room_id = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, roomID, bookingID); err != nil {
		return nil, fmt.Errorf("update booking %d: %w", bookingID, err)
	}
	b, err := r.get(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("read back booking %d: %w", bookingID, err)
	}
	return b, nil
}

// Delete removes a booking.  It returns ErrBookingNotFound when no row
// was deleted.
func (r *BookingRepo) Delete(ctx context.Context, bookingID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, bookingID)
	if err != nil {
		return fmt.Errorf("delete booking %d: %w", bookingID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking %d: %w", bookingID, err)
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepo) get(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id).
		Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}
