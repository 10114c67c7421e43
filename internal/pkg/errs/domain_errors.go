package errs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors shared by the usecase and handler layers.
var (
	// Reservation
	ErrInvalidSeatSelection = errors.New("invalid seat selection")
	ErrSeatsAlreadyTaken    = errors.New("seats already taken")
	ErrEventNotFound        = errors.New("event not found")

	// Purchase
	ErrInvalidTicketSelection = errors.New("invalid ticket selection")
	ErrTicketNotReserved      = errors.New("ticket not reserved")
	ErrTicketNotOwned         = errors.New("ticket not owned by user")

	// Payment
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentRejected     = errors.New("payment request rejected")
	ErrPaymentNotSucceeded = errors.New("payment not successful")
	ErrEventMismatch       = errors.New("payment was for a different event")
	ErrSeatMismatch        = errors.New("payment was for different seats")

	// Split payment
	ErrSplitPaymentNotFound = errors.New("split payment not found")
	ErrInvalidSplitRequest  = errors.New("invalid split payment request")

	// Cross-cutting
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// InvalidSeatsError names the requested seats the catalog does not know.
type InvalidSeatsError struct {
	SeatIDs []int64
}

func (e *InvalidSeatsError) Error() string {
	if len(e.SeatIDs) == 0 {
		return "One or more selected seats are invalid."
	}
	return fmt.Sprintf("Seats %s are not part of the event.", formatIDs(e.SeatIDs))
}

func (e *InvalidSeatsError) Is(target error) bool { return target == ErrInvalidSeatSelection }

// SeatsTakenError names the seats that already hold a live ticket.
type SeatsTakenError struct {
	SeatIDs []int64
}

func (e *SeatsTakenError) Error() string {
	if len(e.SeatIDs) == 0 {
		return "One or more selected seats are already taken."
	}
	return fmt.Sprintf("Seats %s are already taken.", formatIDs(e.SeatIDs))
}

func (e *SeatsTakenError) Is(target error) bool { return target == ErrSeatsAlreadyTaken }

// MissingTicketsError names ticket ids with no ledger row.
type MissingTicketsError struct {
	TicketIDs []int64
}

func (e *MissingTicketsError) Error() string {
	if len(e.TicketIDs) == 0 {
		return "One or more ticket IDs are invalid."
	}
	return fmt.Sprintf("Tickets %s are invalid.", formatIDs(e.TicketIDs))
}

func (e *MissingTicketsError) Is(target error) bool { return target == ErrInvalidTicketSelection }

type TicketNotReservedError struct {
	TicketID int64
}

func (e *TicketNotReservedError) Error() string {
	return fmt.Sprintf("Ticket %d is not reserved.", e.TicketID)
}

func (e *TicketNotReservedError) Is(target error) bool { return target == ErrTicketNotReserved }

type TicketNotOwnedError struct {
	TicketID int64
}

func (e *TicketNotOwnedError) Error() string {
	return fmt.Sprintf("Ticket %d belongs to another user.", e.TicketID)
}

func (e *TicketNotOwnedError) Is(target error) bool { return target == ErrTicketNotOwned }

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
