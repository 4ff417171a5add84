// Package queue defines booking events exchanged over the message broker
// together with their publisher and the audit consumer.
package queue

// Event types carried in BookingEvent.Type.
const (
	EventBookingCreated = "booking.created"
	EventBookingChanged = "booking.changed"
)

// BookingEvent is published after a booking is created or moved to another
// room.  PreviousRoomID is zero for booking.created.
type BookingEvent struct {
	EventID        string `json:"event_id"`
	Type           string `json:"type"`
	BookingID      uint64 `json:"booking_id"`
	UserID         uint64 `json:"user_id"`
	RoomID         uint64 `json:"room_id"`
	PreviousRoomID uint64 `json:"previous_room_id,omitempty"`
	OccurredAt     string `json:"occurred_at"`
}
