package model

// TicketStatus mirrors the tickets.status enum.
type TicketStatus string

const (
	TicketReserved TicketStatus = "RESERVED"
	TicketPaid     TicketStatus = "PAID"
)

// TicketEligibility is a read-only snapshot of the chain
// user -> enrollment -> ticket -> ticket type -> payment taken at check
// time.  Only the first enrollment and its first ticket are considered.
//
// EnrollmentID is nil when the user never enrolled.  Ticket is nil when
// the enrollment has no ticket.
type TicketEligibility struct {
	UserID       uint64
	EnrollmentID *uint64
	Ticket       *TicketSnapshot
}

// TicketSnapshot carries the ticket attributes consulted by the
// eligibility rules.  PaymentID is informational; status is authoritative.
type TicketSnapshot struct {
	ID            uint64
	Status        TicketStatus
	IncludesHotel bool
	IsRemote      bool
	PaymentID     *uint64
}
