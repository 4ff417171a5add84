package model

import "time"

// Booking links a user to a hotel room for the duration of the event.
// A user is expected to hold at most one booking; the store does not
// enforce it.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who owns the booking.
//  RoomID    – room the booking occupies.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp (changes when the room is reassigned).
type Booking struct {
	ID        uint64    // bookings.id
	UserID    uint64    // bookings.user_id
	RoomID    uint64    // bookings.room_id
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}

// BookingWithRoom is a booking joined with the room it occupies.
type BookingWithRoom struct {
	Booking
	Room Room
}

// BookingView is the shape returned to the owner of a booking.  Internal
// timestamps are stripped from both the booking and its room.
type BookingView struct {
	ID   uint64   `json:"id"`
	Room RoomView `json:"Room"`
}

// View converts a joined booking into its public representation.
func (b BookingWithRoom) View() BookingView {
	return BookingView{ID: b.ID, Room: b.Room.View()}
}
