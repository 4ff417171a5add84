package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// TicketRepo exposes the read-only projection used by the booking
// eligibility rules.  Enrollments, tickets and payments are owned by
// other parts of the platform.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// FindEligibility walks user -> enrollment -> ticket -> ticket type ->
// payment and returns a snapshot of the first enrollment and its first
// ticket.  A user without an enrollment yields a snapshot with a nil
// EnrollmentID; an enrollment without a ticket yields a nil Ticket.
func (r *TicketRepo) FindEligibility(ctx context.Context, userID uint64) (*model.TicketEligibility, error) {
	const q = `SELECT e.id, t.id, t.status, tt.includes_hotel, tt.is_remote, p.id
	           FROM enrollments e
	           LEFT JOIN tickets t ON t.enrollment_id = e.id
	           LEFT JOIN ticket_types tt ON tt.id = t.ticket_type_id
	           LEFT JOIN payments p ON p.ticket_id = t.id
	           WHERE e.user_id = ?
	           ORDER BY e.id, t.id, p.id
	           LIMIT 1`
	var (
		enrollmentID  uint64
		ticketID      sql.NullInt64
		status        sql.NullString
		includesHotel sql.NullBool
		isRemote      sql.NullBool
		paymentID     sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q, userID).
		Scan(&enrollmentID, &ticketID, &status, &includesHotel, &isRemote, &paymentID)
	out := &model.TicketEligibility{UserID: userID}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, nil
		}
		return nil, fmt.Errorf("find ticket eligibility for user %d: %w", userID, err)
	}
	out.EnrollmentID = &enrollmentID
	if !ticketID.Valid {
		return out, nil
	}
	out.Ticket = &model.TicketSnapshot{
		ID:            uint64(ticketID.Int64),
		Status:        model.TicketStatus(status.String),
		IncludesHotel: includesHotel.Bool,
		IsRemote:      isRemote.Bool,
	}
	if paymentID.Valid {
		pid := uint64(paymentID.Int64)
		out.Ticket.PaymentID = &pid
	}
	return out, nil
}
