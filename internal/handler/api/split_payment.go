package api

import (
	"net/http"

	reqdto "eventgo-ticketing/internal/handler/dto/request"
	resdto "eventgo-ticketing/internal/handler/dto/response"
	"eventgo-ticketing/internal/handler/httperr"
	"eventgo-ticketing/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SplitPaymentHandler struct {
	cmds commands.SplitPaymentCommands
}

func NewSplitPaymentHandler(cmds commands.SplitPaymentCommands) *SplitPaymentHandler {
	return &SplitPaymentHandler{cmds: cmds}
}

// @Summary Create split payment
// @Description One payment link per participant
// @Tags split-payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSplitPaymentRequest true "Split payment"
// @Success 200 {object} resdto.SplitPaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /create-split-payment [post]
func (h *SplitPaymentHandler) Create(c *gin.Context) {
	var req reqdto.CreateSplitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	domainReq, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	sp, err := h.cmds.Create(c.Request.Context(), domainReq)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSplitPayment(sp))
}

// @Summary Split payment status
// @Description Polls the payment links and returns the aggregate status
// @Tags split-payments
// @Produce json
// @Param id path string true "Split payment ID"
// @Success 200 {object} resdto.SplitPaymentStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /split-payments/{id} [get]
func (h *SplitPaymentHandler) Status(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid split payment id", nil)
		return
	}
	result, err := h.cmds.Status(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSplitStatus(result))
}
