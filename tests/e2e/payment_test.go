//go:build e2e

package e2e

import (
	"net/http"
	"testing"

	"eventgo-ticketing/internal/domain/user"
	resdto "eventgo-ticketing/internal/handler/dto/response"
	"eventgo-ticketing/internal/usecase/shared"
	"eventgo-ticketing/tests/common/authtest"
	"eventgo-ticketing/tests/common/dbtest"
	"eventgo-ticketing/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PaymentE2ESuite struct {
	SharedSuite
	jwt      *authtest.JWTHelper
	customer uuid.UUID
}

func TestPaymentE2ESuite(t *testing.T) {
	suite.Run(t, new(PaymentE2ESuite))
}

func (s *PaymentE2ESuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
	s.customer = uuid.New()
}

func (s *PaymentE2ESuite) token(role user.Role) string {
	return s.jwt.GenerateToken(s.T(), s.customer, role)
}

func (s *PaymentE2ESuite) createIntent(eventID string, seats ...string) string {
	s.T().Helper()
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/create-payment-intent", map[string]any{
		"amount":   10000,
		"currency": "usd",
		"event_id": eventID,
		"seats":    seats,
	}, s.token(user.RoleCustomer))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var res resdto.PaymentIntentResponse
	s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &res))
	s.NotEmpty(res.ClientSecret)
	return res.PaymentIntentID
}

func (s *PaymentE2ESuite) TestValidatePayment() {
	s.Run("unpaid intent is not valid", func() {
		pi := s.createIntent("7", "101", "102")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/validate-payment", map[string]any{
			"payment_intent_id": pi,
			"event_id":          "7",
			"seats":             []string{"101", "102"},
		}, "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("succeeded intent validates in any seat order", func() {
		pi := s.createIntent("7", "101", "102")
		s.Gateway.Succeed(pi)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/validate-payment", map[string]any{
			"payment_intent_id": pi,
			"event_id":          "7",
			"seats":             []string{"102", "101"},
		}, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		s.JSONEq(`{"valid": true, "payment_status": "succeeded"}`, w.Body.String())
	})

	s.Run("seat mismatch", func() {
		pi := s.createIntent("7", "101")
		s.Gateway.Succeed(pi)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/validate-payment", map[string]any{
			"payment_intent_id": pi,
			"event_id":          "7",
			"seats":             []string{"103"},
		}, "")
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "Payment was for different seats")
	})

	s.Run("unknown intent is 404", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/payment-status/pi_missing", nil, "")
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *PaymentE2ESuite) TestConfirmPayment() {
	s.Run("confirm sells the reserved tickets", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/tickets/reserve", []int64{101, 102}, s.token(user.RoleCustomer))
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		var reserved resdto.ReserveTicketsResponse
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &reserved))

		pi := s.createIntent("7", "101", "102")
		s.Gateway.Succeed(pi)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/confirm-payment", map[string]any{
			"payment_intent_id": pi,
			"event_id":          "7",
			"seats":             []string{"101", "102"},
			"ticket_ids":        reserved.Tickets,
		}, s.token(user.RoleCustomer))
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var conf resdto.BookingConfirmationResponse
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &conf))
		s.Equal(pi, conf.PaymentIntentID)
		s.ElementsMatch(reserved.Tickets, conf.TicketIDs)

		for _, id := range reserved.Tickets {
			s.Equal("SOLD", dbtest.TicketStatus(s.T(), s.DB, id))
		}
		s.Equal(1, dbtest.CountOutbox(s.T(), s.DB, shared.TopicBookingConfirmed))

		// retrying the same confirmation succeeds without a second event
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/confirm-payment", map[string]any{
			"payment_intent_id": pi,
			"event_id":          "7",
			"seats":             []string{"101", "102"},
			"ticket_ids":        reserved.Tickets,
		}, s.token(user.RoleCustomer))
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		s.Equal(1, dbtest.CountOutbox(s.T(), s.DB, shared.TopicBookingConfirmed))
		s.Equal(1, dbtest.CountOutbox(s.T(), s.DB, shared.TopicTicketsSold))
	})

	s.Run("tickets must cover the paid seats", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/tickets/reserve", []int64{103}, s.token(user.RoleCustomer))
		s.Require().Equal(http.StatusCreated, w.Code)
		var reserved resdto.ReserveTicketsResponse
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &reserved))

		pi := s.createIntent("7", "104")
		s.Gateway.Succeed(pi)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/confirm-payment", map[string]any{
			"payment_intent_id": pi,
			"event_id":          "7",
			"seats":             []string{"104"},
			"ticket_ids":        reserved.Tickets,
		}, s.token(user.RoleCustomer))
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("RESERVED", dbtest.TicketStatus(s.T(), s.DB, reserved.Tickets[0]))
		s.Zero(dbtest.CountOutbox(s.T(), s.DB, shared.TopicBookingConfirmed))
	})

	s.Run("confirm requires a token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/confirm-payment", map[string]any{
			"payment_intent_id": "pi_x",
			"event_id":          "7",
			"seats":             []string{"101"},
		}, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *PaymentE2ESuite) TestRefund() {
	s.Run("customer cannot refund", func() {
		pi := s.createIntent("7", "101")
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/refund",
			map[string]any{"payment_intent_id": pi}, s.token(user.RoleCustomer))
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("staff refunds a partial amount", func() {
		pi := s.createIntent("7", "101")
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/refund",
			map[string]any{"payment_intent_id": pi, "amount": 2500}, s.token(user.RoleStaff))
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var res resdto.RefundResponse
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &res))
		s.Equal(pi, res.PaymentIntent)
		s.Equal(int64(2500), res.Amount)
	})
}

func (s *PaymentE2ESuite) TestSplitPayment() {
	s.Run("split settles once every link is paid", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/create-split-payment", map[string]any{
			"event_id":    "7",
			"currency":    "usd",
			"description": "Front row",
			"participants": []map[string]any{
				{"email": "alice@example.com", "ticket_id": "1", "amount": 2500, "redirect_url": "https://example.com/done"},
				{"email": "bob@example.com", "ticket_id": "2", "amount": 3500, "redirect_url": "https://example.com/done"},
			},
		}, s.token(user.RoleCustomer))
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var created resdto.SplitPaymentResponse
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &created))
		s.Require().Len(created.PaymentLinks, 2)
		s.Equal(int64(6000), created.TotalAmount)
		s.Equal(1, dbtest.CountOutbox(s.T(), s.DB, shared.TopicSplitPaymentCreated))

		status := func() resdto.SplitPaymentStatusResponse {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/split-payments/"+created.SplitPaymentID, nil, "")
			s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
			var res resdto.SplitPaymentStatusResponse
			s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &res))
			return res
		}

		s.Equal("pending", status().Status)

		s.Gateway.PayLink(created.PaymentLinks[0].PaymentLinkID)
		res := status()
		s.Equal("partially_paid", res.Status)
		s.Equal(int64(2500), res.AmountPaid)
		s.Equal(int64(3500), res.AmountPending)

		s.Gateway.PayLink(created.PaymentLinks[1].PaymentLinkID)
		s.Equal("completed", status().Status)
		s.Equal("completed", status().Status)
		s.Equal(1, dbtest.CountOutbox(s.T(), s.DB, shared.TopicSplitPaymentSettled))
	})

	s.Run("zero amount participant is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/create-split-payment", map[string]any{
			"event_id": "7",
			"currency": "usd",
			"participants": []map[string]any{
				{"email": "alice@example.com", "amount": 0, "redirect_url": "https://example.com/done"},
			},
		}, s.token(user.RoleCustomer))
		s.Equal(http.StatusBadRequest, w.Code)
		s.Zero(dbtest.CountOutbox(s.T(), s.DB, shared.TopicSplitPaymentCreated))
	})

	s.Run("unknown split is 404", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/split-payments/"+uuid.NewString(), nil, "")
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *PaymentE2ESuite) TestPaymentStatus() {
	s.Run("metadata round trips through the gateway", func() {
		pi := s.createIntent("8", "201", "202")
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/payment-status/"+pi, nil, "")
		s.Require().Equal(http.StatusOK, w.Code)

		var res resdto.PaymentStatusResponse
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &res))
		s.Equal("8", res.Metadata["event_id"])
		s.Equal("201,202", res.Metadata["seats"])
		s.Equal(int64(10000), res.Amount)
		s.Equal("requires_payment_method", res.Status)
	})
}
