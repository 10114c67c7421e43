package api

import (
	"errors"
	"net/http"

	"eventgo-ticketing/internal/handler/httperr"
	"eventgo-ticketing/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Checked in order; the first match decides the response.
var errorMappings = []errorMapping{
	{errs.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized: Login required."},
	{errs.ErrInvalidSeatSelection, http.StatusBadRequest, "One or more selected seats are invalid."},
	{errs.ErrSeatsAlreadyTaken, http.StatusBadRequest, "One or more selected seats are already taken."},
	{errs.ErrEventNotFound, http.StatusNotFound, "Event not found"},
	{errs.ErrInvalidTicketSelection, http.StatusBadRequest, "One or more ticket IDs are invalid."},
	{errs.ErrTicketNotReserved, http.StatusBadRequest, "Ticket is not reserved."},
	{errs.ErrTicketNotOwned, http.StatusForbidden, "Ticket belongs to another user."},
	{errs.ErrPaymentNotSucceeded, http.StatusBadRequest, "Payment not successful"},
	{errs.ErrEventMismatch, http.StatusBadRequest, "Payment was for a different event"},
	{errs.ErrSeatMismatch, http.StatusBadRequest, "Payment was for different seats"},
	{errs.ErrPaymentNotFound, http.StatusNotFound, "Payment not found"},
	{errs.ErrPaymentRejected, http.StatusBadRequest, "Payment request rejected"},
	{errs.ErrSplitPaymentNotFound, http.StatusNotFound, "Split payment not found"},
	{errs.ErrInvalidSplitRequest, http.StatusBadRequest, "Invalid split payment request"},
	{errs.ErrUpstreamUnavailable, http.StatusServiceUnavailable, "Upstream service unavailable"},
}

// abortWithDomainError maps usecase errors to a status. Errors that name the offending
// seats or tickets carry that text in detail.
func abortWithDomainError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, detailOf(err, m.target))
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func detailOf(err error, target error) any {
	var (
		invalid  *errs.InvalidSeatsError
		taken    *errs.SeatsTakenError
		missing  *errs.MissingTicketsError
		notRes   *errs.TicketNotReservedError
		notOwned *errs.TicketNotOwnedError
	)
	switch {
	case errors.As(err, &invalid):
		return invalid.Error()
	case errors.As(err, &taken):
		return taken.Error()
	case errors.As(err, &missing):
		return missing.Error()
	case errors.As(err, &notRes):
		return notRes.Error()
	case errors.As(err, &notOwned):
		return notOwned.Error()
	case errors.Is(target, errs.ErrInvalidSplitRequest):
		return err.Error()
	default:
		return nil
	}
}
