// Package service holds the booking business rules.  Operations are a
// single fetch, validate, mutate sequence; nothing is kept in memory
// between calls and nothing coordinates concurrent requests.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

const (
	msgBookingNotFound = "booking not found"
	msgAlreadyBooked   = "user already has a booking"
	msgNotBookingOwner = "booking does not belong to user"
)

// BookingStore is the persistence the service needs for bookings.
// Missing rows are reported as repository.ErrBookingNotFound.
type BookingStore interface {
	OccupancyCounter
	FindByUserID(ctx context.Context, userID uint64) (*model.BookingWithRoom, error)
	FindByID(ctx context.Context, bookingID uint64) (*model.Booking, error)
	Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
	UpdateRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error)
}

// EventPublisher receives booking events after a successful write.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// BookingService implements viewing, creating and changing a user's
// hotel-room booking.
type BookingService struct {
	bookings    BookingStore
	eligibility *Eligibility
	events      EventPublisher
	log         *logrus.Logger
	now         func() time.Time
}

// NewBookingService wires the service.  events may be nil, in which case
// no booking events are emitted.
func NewBookingService(bookings BookingStore, rooms RoomStore, tickets TicketStore, events EventPublisher, log *logrus.Logger) *BookingService {
	if bookings == nil || rooms == nil || tickets == nil || log == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{
		bookings:    bookings,
		eligibility: NewEligibility(tickets, rooms, bookings),
		events:      events,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetBooking returns the caller's booking with its room, timestamps
// stripped.  It fails with NotFound when the user has no booking.
func (s *BookingService) GetBooking(ctx context.Context, userID uint64) (model.BookingView, error) {
	b, err := s.bookings.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return model.BookingView{}, NotFound(msgBookingNotFound)
		}
		return model.BookingView{}, s.fail("get booking", err, logrus.Fields{"user_id": userID})
	}
	return b.View(), nil
}

// InsertBooking books roomID for the user and returns the new booking id.
// It fails with Forbidden when the user already has a booking or holds no
// eligible ticket, with NotFound when the room does not exist and with
// Forbidden when the room is full.  The checks and the insert are separate
// statements, so concurrent calls can all pass the checks.
func (s *BookingService) InsertBooking(ctx context.Context, userID, roomID uint64) (uint64, error) {
	fields := logrus.Fields{"user_id": userID, "room_id": roomID}

	_, err := s.bookings.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		return 0, Forbidden(msgAlreadyBooked)
	case !errors.Is(err, repository.ErrBookingNotFound):
		return 0, s.fail("insert booking", err, fields)
	}

	if err := s.eligibility.VerifyTicket(ctx, userID); err != nil {
		return 0, s.fail("insert booking", err, fields)
	}
	if err := s.eligibility.VerifyRoomCapacity(ctx, roomID); err != nil {
		return 0, s.fail("insert booking", err, fields)
	}

	b, err := s.bookings.Create(ctx, userID, roomID)
	if err != nil {
		return 0, s.fail("insert booking", err, fields)
	}

	fields["booking_id"] = b.ID
	s.log.WithFields(fields).Info("booking created")
	s.publish(ctx, queue.BookingEvent{
		Type:      queue.EventBookingCreated,
		BookingID: b.ID,
		UserID:    userID,
		RoomID:    roomID,
	})
	return b.ID, nil
}

// ChangeBooking moves the caller's booking to roomID in place and returns
// its id.  It fails with NotFound when bookingID does not exist, with
// Forbidden when it belongs to someone else, and with the room capacity
// outcome otherwise.  Ticket eligibility is not re-checked.
func (s *BookingService) ChangeBooking(ctx context.Context, userID, roomID, bookingID uint64) (uint64, error) {
	fields := logrus.Fields{"user_id": userID, "room_id": roomID, "booking_id": bookingID}

	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return 0, NotFound(msgBookingNotFound)
		}
		return 0, s.fail("change booking", err, fields)
	}
	if b.UserID != userID {
		return 0, Forbidden(msgNotBookingOwner)
	}

	if err := s.eligibility.VerifyRoomCapacity(ctx, roomID); err != nil {
		return 0, s.fail("change booking", err, fields)
	}

	changed, err := s.bookings.UpdateRoom(ctx, bookingID, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return 0, NotFound(msgBookingNotFound)
		}
		return 0, s.fail("change booking", err, fields)
	}

	s.log.WithFields(fields).WithField("previous_room_id", b.RoomID).Info("booking changed")
	s.publish(ctx, queue.BookingEvent{
		Type:           queue.EventBookingChanged,
		BookingID:      changed.ID,
		UserID:         userID,
		RoomID:         roomID,
		PreviousRoomID: b.RoomID,
	})
	return changed.ID, nil
}

// fail categorizes err and logs failures that did not already carry a
// category, since those point at the store rather than the caller.
func (s *BookingService) fail(op string, err error, fields logrus.Fields) error {
	if _, ok := AsError(err); ok {
		return err
	}
	s.log.WithFields(fields).WithError(err).Error(op + " failed")
	return categorize(err)
}

func (s *BookingService) publish(ctx context.Context, ev queue.BookingEvent) {
	if s.events == nil {
		return
	}
	ev.EventID = uuid.NewString()
	ev.OccurredAt = s.now().Format(time.RFC3339)
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":      ev.Type,
			"booking_id": ev.BookingID,
		}).Warn("publish booking event failed")
	}
}
