//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"eventgo-ticketing/internal/domain/split"
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
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SplitPaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSplitPaymentCommands
}

func (s *SplitPaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSplitPaymentCommands(s.mockCtrl)
	h := api.NewSplitPaymentHandler(s.mockCommands)

	s.router.POST("/create-split-payment", fakeAuth(user.RoleCustomer), h.Create)
	s.router.GET("/split-payments/:id", h.Status)
}

func (s *SplitPaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSplitPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(SplitPaymentHandlerTestSuite))
}

func splitBody() map[string]any {
	return map[string]any{
		"event_id":       "7",
		"reservation_id": "r-1",
		"currency":       "usd",
		"description":    "Concert",
		"participants": []map[string]any{
			{"email": "alice@example.com", "user_id": "u-1", "ticket_id": "10", "amount": 2500, "redirect_url": "https://example.com/done"},
			{"email": "bob@example.com", "user_id": "u-2", "ticket_id": "11", "amount": 3500, "redirect_url": "https://example.com/done"},
		},
	}
}

func splitFixture(now time.Time) *split.SplitPayment {
	return &split.SplitPayment{
		ID:          uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		EventID:     "7",
		Currency:    "usd",
		TotalAmount: 6000,
		CreatedAt:   now,
		Links: []split.Link{
			{PaymentLinkID: "plink_a", URL: "https://pay.example/a", ParticipantEmail: "alice@example.com", Amount: 2500, Status: split.LinkPaid, ExpiresAt: now.Add(10 * time.Minute)},
			{PaymentLinkID: "plink_b", URL: "https://pay.example/b", ParticipantEmail: "bob@example.com", Amount: 3500, Status: split.LinkUnpaid, ExpiresAt: now.Add(10 * time.Minute)},
		},
	}
}

func (s *SplitPaymentHandlerTestSuite) TestCreate() {
	url := "/create-split-payment"
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Run("success: returns one link per participant", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req split.Request) (*split.SplitPayment, error) {
				want := builder.NewSplitRequest()
				want.ReservationID = "r-1"
				s.Equal(want, req)
				return splitFixture(now), nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, splitBody(), "bearer-token")

		var body resdto.SplitPaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("22222222-2222-2222-2222-222222222222", body.SplitPaymentID)
		s.Equal(int64(6000), body.TotalAmount)
		s.Require().Len(body.PaymentLinks, 2)
		s.Equal("alice@example.com", body.PaymentLinks[0].Email)
	})

	s.Run("error: 400 on validation errors", func() {
		for _, mutate := range []func(map[string]any){
			testutil.Field("event_id", nil),
			testutil.Field("currency", "us"),
			testutil.Field("participants", []map[string]any{}),
			testutil.Field("participants", []map[string]any{{"email": "nope", "amount": 100, "redirect_url": "https://example.com"}}),
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), splitBody(), mutate), "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, splitBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: provider failure", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errs.ErrUpstreamUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, splitBody(), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Upstream")
	})
}

func (s *SplitPaymentHandlerTestSuite) TestStatus() {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sp := splitFixture(now)

	s.Run("success: aggregates paid and pending", func() {
		s.mockCommands.EXPECT().Status(gomock.Any(), sp.ID).Return(&commands.SplitStatusResult{
			SplitPayment: sp,
			Status:       split.StatusPartiallyPaid,
			AmountPaid:   2500,
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/split-payments/"+sp.ID.String(), nil, "")

		var body resdto.SplitPaymentStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(string(split.StatusPartiallyPaid), body.Status)
		s.Equal(int64(2500), body.AmountPaid)
		s.Equal(int64(3500), body.AmountPending)
		s.Equal(string(split.LinkPaid), body.PaymentLinks[0].Status)
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/split-payments/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid split payment id")
	})

	s.Run("error: 404 for an unknown split", func() {
		s.mockCommands.EXPECT().Status(gomock.Any(), sp.ID).Return(nil, errs.ErrSplitPaymentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/split-payments/"+sp.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Split payment not found")
	})
}
