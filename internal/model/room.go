package model

import "time"

// Room is a hotel room that accepts up to Capacity bookings.  Rooms are
// read-only from the booking service's point of view.
type Room struct {
	ID        uint64    // rooms.id
	Name      string    // rooms.name
	Capacity  int       // rooms.capacity (>= 1)
	HotelID   uint64    // rooms.hotel_id
	CreatedAt time.Time // rooms.created_at
	UpdatedAt time.Time // rooms.updated_at
}

// RoomView is a room without its timestamps.
type RoomView struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	HotelID  uint64 `json:"hotelId"`
}

func (r Room) View() RoomView {
	return RoomView{ID: r.ID, Name: r.Name, Capacity: r.Capacity, HotelID: r.HotelID}
}
