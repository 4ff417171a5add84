package service

import (
	"context"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

const (
	msgTicketNotEligible = "user does not have a paid, in-person ticket with accommodation"
	msgRoomFull          = "room has reached its full capacity"
	msgRoomNotFound      = "room not found"
)

// TicketStore loads the ticket eligibility projection.
type TicketStore interface {
	FindEligibility(ctx context.Context, userID uint64) (*model.TicketEligibility, error)
}

// RoomStore loads rooms.  A missing room is reported as
// repository.ErrRoomNotFound.
type RoomStore interface {
	GetByID(ctx context.Context, roomID uint64) (*model.Room, error)
}

// OccupancyCounter counts the bookings referencing a room.
type OccupancyCounter interface {
	CountByRoom(ctx context.Context, roomID uint64) (int, error)
}

// CheckTicket decides whether the snapshot entitles its user to a hotel
// booking: an enrollment with a ticket that is PAID, includes the hotel
// and is not remote.  Every failing condition is Forbidden.
func CheckTicket(el *model.TicketEligibility) error {
	switch {
	case el == nil || el.EnrollmentID == nil:
		return Forbidden(msgTicketNotEligible)
	case el.Ticket == nil:
		return Forbidden(msgTicketNotEligible)
	case el.Ticket.Status != model.TicketPaid:
		return Forbidden(msgTicketNotEligible)
	case !el.Ticket.IncludesHotel:
		return Forbidden(msgTicketNotEligible)
	case el.Ticket.IsRemote:
		return Forbidden(msgTicketNotEligible)
	}
	return nil
}

// CheckCapacity rejects a room whose occupancy has reached its capacity.
func CheckCapacity(room *model.Room, occupancy int) error {
	if occupancy >= room.Capacity {
		return Forbidden(msgRoomFull)
	}
	return nil
}

// Eligibility loads the data needed by CheckTicket and CheckCapacity.
// Store failures are returned as-is, without a category.
type Eligibility struct {
	tickets  TicketStore
	rooms    RoomStore
	bookings OccupancyCounter
}

func NewEligibility(tickets TicketStore, rooms RoomStore, bookings OccupancyCounter) *Eligibility {
	return &Eligibility{tickets: tickets, rooms: rooms, bookings: bookings}
}

// VerifyTicket fails with Forbidden unless the user holds an eligible
// ticket.
func (e *Eligibility) VerifyTicket(ctx context.Context, userID uint64) error {
	el, err := e.tickets.FindEligibility(ctx, userID)
	if err != nil {
		return err
	}
	return CheckTicket(el)
}

// VerifyRoomCapacity fails with NotFound when the room does not exist and
// with Forbidden when it is full.  The answer is a snapshot: nothing stops
// another request from filling the room before the caller writes.
func (e *Eligibility) VerifyRoomCapacity(ctx context.Context, roomID uint64) error {
	room, err := e.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return NotFound(msgRoomNotFound)
		}
		return err
	}
	occupancy, err := e.bookings.CountByRoom(ctx, roomID)
	if err != nil {
		return err
	}
	return CheckCapacity(room, occupancy)
}
