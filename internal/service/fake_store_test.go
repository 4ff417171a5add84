package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// memStore is an in-memory stand-in for the MySQL repositories.  Like the
// real store it checks nothing on write.
type memStore struct {
	mu       sync.Mutex
	nextID   uint64
	bookings map[uint64]model.Booking
	rooms    map[uint64]model.Room
	tickets  map[uint64]*model.TicketEligibility

	// beforeFindByUser runs outside the lock on every FindByUserID call.
	beforeFindByUser func()
	// beforeCount runs outside the lock on every CountByRoom call.
	beforeCount func()
	failWith    error
}

func newMemStore() *memStore {
	return &memStore{
		bookings: map[uint64]model.Booking{},
		rooms:    map[uint64]model.Room{},
		tickets:  map[uint64]*model.TicketEligibility{},
	}
}

func (m *memStore) addRoom(id uint64, capacity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[id] = model.Room{ID: id, Name: "Room", Capacity: capacity, HotelID: 1,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
}

func (m *memStore) addEligibleUser(userID uint64) {
	m.setTicket(userID, model.TicketPaid, true, false)
}

func (m *memStore) setTicket(userID uint64, status model.TicketStatus, includesHotel, isRemote bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	enrollment := userID + 100
	m.tickets[userID] = &model.TicketEligibility{
		UserID:       userID,
		EnrollmentID: &enrollment,
		Ticket: &model.TicketSnapshot{
			ID: userID + 200, Status: status, IncludesHotel: includesHotel, IsRemote: isRemote,
		},
	}
}

func (m *memStore) seedBooking(userID, roomID uint64) uint64 {
	b, _ := m.Create(context.Background(), userID, roomID)
	return b.ID
}

func (m *memStore) FindByUserID(_ context.Context, userID uint64) (*model.BookingWithRoom, error) {
	if m.beforeFindByUser != nil {
		m.beforeFindByUser()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	ids := make([]uint64, 0)
	for id, b := range m.bookings {
		if b.UserID == userID {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, repository.ErrBookingNotFound
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	b := m.bookings[ids[0]]
	return &model.BookingWithRoom{Booking: b, Room: m.rooms[b.RoomID]}, nil
}

func (m *memStore) FindByID(_ context.Context, bookingID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return &b, nil
}

func (m *memStore) Create(_ context.Context, userID, roomID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	now := time.Now()
	b := model.Booking{ID: m.nextID, UserID: userID, RoomID: roomID, CreatedAt: now, UpdatedAt: now}
	m.bookings[b.ID] = b
	return &b, nil
}

func (m *memStore) CountByRoom(_ context.Context, roomID uint64) (int, error) {
	if m.beforeCount != nil {
		m.beforeCount()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) UpdateRoom(_ context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	b.RoomID = roomID
	b.UpdatedAt = time.Now()
	m.bookings[bookingID] = b
	return &b, nil
}

func (m *memStore) GetByID(_ context.Context, roomID uint64) (*model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &r, nil
}

func (m *memStore) FindEligibility(_ context.Context, userID uint64) (*model.TicketEligibility, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.tickets[userID]; ok {
		return el, nil
	}
	return &model.TicketEligibility{UserID: userID}, nil
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

var errStoreDown = errors.New("store down")
