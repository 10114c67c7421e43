//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"eventgo-ticketing/internal/domain/payment"
	"eventgo-ticketing/internal/domain/user"
	"eventgo-ticketing/internal/handler/api"
	resdto "eventgo-ticketing/internal/handler/dto/response"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/commands"
	"eventgo-ticketing/tests/common/builder"
	"eventgo-ticketing/tests/common/httptest"
	"eventgo-ticketing/tests/common/testutil"
	commandsmock "eventgo-ticketing/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands)

	auth := fakeAuth(user.RoleStaff)
	s.router.POST("/validate-payment", s.handler.Validate)
	s.router.GET("/payment-status/:payment_intent_id", s.handler.Status)
	s.router.PATCH("/confirm-payment", auth, s.handler.Confirm)
	s.router.POST("/create-payment-intent", auth, s.handler.CreateIntent)
	s.router.POST("/create-payment-link", auth, s.handler.CreateLink)
	s.router.POST("/refund", auth, s.handler.Refund)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func validateBody() map[string]any {
	return map[string]any{
		"payment_intent_id": "pi_test_123",
		"event_id":          "7",
		"seats":             []string{"1", "2"},
	}
}

// ================================================================================
// TestValidate
// ================================================================================

func (s *PaymentHandlerTestSuite) TestValidate() {
	url := "/validate-payment"
	expected := commands.ValidatePaymentRequest{PaymentIntentID: "pi_test_123", EventID: "7", Seats: []string{"1", "2"}}

	s.Run("success: returns 200 with valid=true", func() {
		s.mockCommands.EXPECT().ValidatePayment(gomock.Any(), expected).
			Return(&commands.ValidationResult{Valid: true, PaymentStatus: "succeeded"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validateBody(), "")

		var body resdto.PaymentValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Valid)
		s.Equal("succeeded", body.PaymentStatus)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseTicket{
			{name: "missing payment_intent_id", mutate: testutil.Field("payment_intent_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing event_id", mutate: testutil.Field("event_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing seats", mutate: testutil.Field("seats", nil), expectCode: http.StatusBadRequest},
			{name: "empty seats", mutate: testutil.Field("seats", []string{}), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), validateBody(), tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: maps validation failures", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "not succeeded", err: errs.ErrPaymentNotSucceeded, expectedStatus: http.StatusBadRequest, expectedMsg: "Payment not successful"},
			{name: "other event", err: errs.ErrEventMismatch, expectedStatus: http.StatusBadRequest, expectedMsg: "different event"},
			{name: "other seats", err: errs.ErrSeatMismatch, expectedStatus: http.StatusBadRequest, expectedMsg: "different seats"},
			{name: "unknown intent", err: errs.ErrPaymentNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Payment not found"},
			{name: "provider down", err: errs.ErrUpstreamUnavailable, expectedStatus: http.StatusServiceUnavailable, expectedMsg: "Upstream"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ValidatePayment(gomock.Any(), expected).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validateBody(), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestConfirm
// ================================================================================

func (s *PaymentHandlerTestSuite) TestConfirm() {
	url := "/confirm-payment"

	s.Run("success: sells the given tickets", func() {
		body := validateBody()
		body["ticket_ids"] = []int64{1, 2}
		expected := commands.ConfirmBookingRequest{
			ValidatePaymentRequest: commands.ValidatePaymentRequest{PaymentIntentID: "pi_test_123", EventID: "7", Seats: []string{"1", "2"}},
			TicketIDs:              []int64{1, 2},
		}
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), expected, testUserID).
			Return(&payment.Confirmation{
				Status:          "success",
				EventID:         "7",
				Seats:           []string{"1", "2"},
				PaymentIntentID: "pi_test_123",
				TicketIDs:       []int64{1, 2},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")

		var res resdto.BookingConfirmationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("success", res.Status)
		s.Equal([]int64{1, 2}, res.TicketIDs)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, validateBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: seat mismatch", func() {
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), gomock.Any(), testUserID).
			Return(nil, errs.ErrSeatMismatch).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, validateBody(), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "different seats")
	})
}

// ================================================================================
// TestStatus
// ================================================================================

func (s *PaymentHandlerTestSuite) TestStatus() {
	s.Run("success: returns the intent with metadata", func() {
		record := builder.NewPaymentRecordBuilder().Build()
		s.mockCommands.EXPECT().PaymentStatus(gomock.Any(), "pi_test_123").Return(record, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payment-status/pi_test_123", nil, "")

		var body resdto.PaymentStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("succeeded", body.Status)
		s.Equal("7", body.Metadata["event_id"])
	})

	s.Run("error: 404 for an unknown intent", func() {
		s.mockCommands.EXPECT().PaymentStatus(gomock.Any(), "pi_missing").Return(nil, errs.ErrPaymentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payment-status/pi_missing", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Payment not found")
	})
}

// ================================================================================
// TestCreateIntent / TestRefund / TestCreateLink
// ================================================================================

func (s *PaymentHandlerTestSuite) TestCreateIntent() {
	url := "/create-payment-intent"
	body := map[string]any{"amount": 10000, "currency": "usd", "event_id": "7", "seats": []string{"1", "2"}}

	s.Run("success: returns the client secret", func() {
		s.mockCommands.EXPECT().CreatePaymentIntent(gomock.Any(), payment.IntentRequest{
			Amount: 10000, Currency: "usd", EventID: "7", Seats: []string{"1", "2"},
		}).Return(&payment.Intent{ID: "pi_new", ClientSecret: "pi_new_secret"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		var res resdto.PaymentIntentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("pi_new_secret", res.ClientSecret)
		s.Equal("pi_new", res.PaymentIntentID)
	})

	s.Run("error: 400 on validation errors", func() {
		for _, mutate := range []func(map[string]any){
			testutil.Field("amount", 0),
			testutil.Field("currency", "dollars"),
			testutil.Field("seats", nil),
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), body, mutate), "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		}
	})

	s.Run("error: provider rejected the request", func() {
		s.mockCommands.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("amount_too_small"), errs.ErrPaymentRejected)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Payment request rejected")
	})
}

func (s *PaymentHandlerTestSuite) TestRefund() {
	url := "/refund"

	s.Run("success: partial refund", func() {
		amount := int64(2500)
		s.mockCommands.EXPECT().Refund(gomock.Any(), payment.RefundRequest{
			PaymentIntentID: "pi_test_123", Amount: &amount, Reason: "requested_by_customer",
		}).Return(&payment.Refund{ID: "re_1", PaymentIntentID: "pi_test_123", Amount: 2500, Currency: "usd", Status: "succeeded"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{
			"payment_intent_id": "pi_test_123",
			"amount":            2500,
			"reason":            "requested_by_customer",
		}, "bearer-token")

		var res resdto.RefundResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("re_1", res.ID)
		s.Equal(int64(2500), res.Amount)
	})

	s.Run("error: 400 on an unknown reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{
			"payment_intent_id": "pi_test_123",
			"reason":            "changed_my_mind",
		}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *PaymentHandlerTestSuite) TestCreateLink() {
	url := "/create-payment-link"
	body := map[string]any{
		"amount":       5000,
		"currency":     "usd",
		"description":  "Front row",
		"email":        "alice@example.com",
		"redirect_url": "https://example.com/done",
		"metadata":     map[string]string{"ticket_id": "10"},
	}
	expiresAt := time.Date(2025, 3, 1, 12, 10, 0, 0, time.UTC)

	s.Run("success: returns the link", func() {
		s.mockCommands.EXPECT().CreatePaymentLink(gomock.Any(), commands.PaymentLinkRequest{
			Amount:      5000,
			Currency:    "usd",
			Description: "Front row",
			Email:       "alice@example.com",
			RedirectURL: "https://example.com/done",
			Metadata:    map[string]string{"ticket_id": "10"},
		}).Return(&commands.PaymentLinkResult{
			PaymentLinkID: "plink_1", URL: "https://pay.example/plink_1", Amount: 5000, ExpiresAt: expiresAt,
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		var res resdto.PaymentLinkResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("plink_1", res.PaymentLinkID)
		s.Equal(expiresAt.Unix(), res.ExpiresAt)
	})

	s.Run("error: 400 on a bad email", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), body, testutil.Field("email", "alice")), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
