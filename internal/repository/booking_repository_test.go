package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var bookingCols = []string{"id", "user_id", "room_id", "created_at", "updated_at"}

func TestBookingRepo_FindByUserID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "room_id", "created_at", "updated_at",
		"id", "name", "capacity", "hotel_id", "created_at", "updated_at",
	}).AddRow(10, 3, 5, now, now, 5, "101", 3, 2, now, now)
	mock.ExpectQuery(`FROM bookings b\s+JOIN rooms r`).WithArgs(uint64(3)).WillReturnRows(rows)

	b, err := repo.FindByUserID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), b.ID)
	assert.Equal(t, uint64(5), b.RoomID)
	assert.Equal(t, "101", b.Room.Name)
	assert.Equal(t, 3, b.Room.Capacity)
	assert.Equal(t, uint64(2), b.Room.HotelID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_FindByUserID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	mock.ExpectQuery(`FROM bookings b`).WithArgs(uint64(3)).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUserID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingRepo_FindByUserID_StoreFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`FROM bookings b`).WithArgs(uint64(3)).WillReturnError(boom)

	_, err := repo.FindByUserID(context.Background(), 3)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingRepo_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = ?`)).WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(10, 3, 5, now, now))

	b, err := repo.FindByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), b.UserID)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = ?`)).WithArgs(uint64(11)).
		WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByID(context.Background(), 11)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`)).
		WithArgs(uint64(3), uint64(5)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = ?`)).WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(42, 3, 5, now, now))

	b, err := repo.Create(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), b.ID)
	assert.Equal(t, uint64(5), b.RoomID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_CountByRoom(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM bookings WHERE room_id = ?`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByRoom(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_UpdateRoom(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE bookings SET room_id = \?`).
		WithArgs(uint64(8), uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = ?`)).WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(10, 3, 8, now, now))

	b, err := repo.UpdateRoom(context.Background(), 10, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), b.RoomID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_UpdateRoom_Missing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	mock.ExpectExec(`UPDATE bookings SET room_id = \?`).
		WithArgs(uint64(8), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = ?`)).WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := repo.UpdateRoom(context.Background(), 99, 8)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_UpdateRoom_NothingChanged(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	now := time.Now().UTC().Truncate(time.Second)

	// Same room, same second: MySQL reports zero changed rows.
	mock.ExpectExec(`UPDATE bookings SET room_id = \?`).
		WithArgs(uint64(7), uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = ?`)).WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(10, 1, 7, now, now))

	b, err := repo.UpdateRoom(context.Background(), 10, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), b.ID)
	assert.Equal(t, uint64(7), b.RoomID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM bookings WHERE id = ?`)).
		WithArgs(uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 10))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM bookings WHERE id = ?`)).
		WithArgs(uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 10), ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
