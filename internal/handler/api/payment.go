package api

import (
	"net/http"
	"strings"

	reqdto "eventgo-ticketing/internal/handler/dto/request"
	resdto "eventgo-ticketing/internal/handler/dto/response"
	"eventgo-ticketing/internal/handler/httperr"
	"eventgo-ticketing/internal/handler/middleware"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
}

func NewPaymentHandler(cmds commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// @Summary Validate payment
// @Description Check that a payment intent succeeded for exactly this event and these seats
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.ValidatePaymentRequest true "Payment to validate"
// @Success 200 {object} resdto.PaymentValidationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /validate-payment [post]
func (h *PaymentHandler) Validate(c *gin.Context) {
	var req reqdto.ValidatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.ValidatePayment(c.Request.Context(), req.ToCommand())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidation(result))
}

// @Summary Confirm booking
// @Description Validate the payment and, when ticket ids are given, sell those tickets under it
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConfirmPaymentRequest true "Booking to confirm"
// @Success 200 {object} resdto.BookingConfirmationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /confirm-payment [patch]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortWithDomainError(c, errs.ErrUnauthorized)
		return
	}
	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	confirmation, err := h.cmds.ConfirmBooking(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConfirmation(confirmation))
}

// @Summary Create payment intent
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePaymentIntentRequest true "Intent"
// @Success 200 {object} resdto.PaymentIntentResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req reqdto.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	intent, err := h.cmds.CreatePaymentIntent(c.Request.Context(), req.ToDomain())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}

// @Summary Payment status
// @Tags payments
// @Produce json
// @Param payment_intent_id path string true "Payment intent ID"
// @Success 200 {object} resdto.PaymentStatusResponse
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /payment-status/{payment_intent_id} [get]
func (h *PaymentHandler) Status(c *gin.Context) {
	id := strings.TrimSpace(c.Param("payment_intent_id"))
	if id == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("empty payment intent id"), "Invalid payment intent id", nil)
		return
	}
	record, err := h.cmds.PaymentStatus(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentRecord(record))
}

// @Summary Refund payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RefundRequest true "Refund"
// @Success 200 {object} resdto.RefundResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req reqdto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	refund, err := h.cmds.Refund(c.Request.Context(), req.ToDomain())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefund(refund))
}

// @Summary Create payment link
// @Description Single payment link, used for ticket transfers
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePaymentLinkRequest true "Link"
// @Success 200 {object} resdto.PaymentLinkResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /create-payment-link [post]
func (h *PaymentHandler) CreateLink(c *gin.Context) {
	var req reqdto.CreatePaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	link, err := h.cmds.CreatePaymentLink(c.Request.Context(), req.ToCommand())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentLink(link))
}
