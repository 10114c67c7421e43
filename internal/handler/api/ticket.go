package api

import (
	"net/http"
	"strconv"

	reqdto "eventgo-ticketing/internal/handler/dto/request"
	resdto "eventgo-ticketing/internal/handler/dto/response"
	"eventgo-ticketing/internal/handler/httperr"
	"eventgo-ticketing/internal/handler/middleware"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/commands"
	"eventgo-ticketing/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	reservations commands.ReservationCommands
	purchases    commands.PurchaseCommands
	q            queries.TicketQueries
}

func NewTicketHandler(
	reservations commands.ReservationCommands,
	purchases commands.PurchaseCommands,
	q queries.TicketQueries,
) *TicketHandler {
	return &TicketHandler{
		reservations: reservations,
		purchases:    purchases,
		q:            q,
	}
}

// @Summary Reserve seats
// @Description Reserve every requested seat or none of them
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveTicketsRequest true "Seats to reserve"
// @Success 201 {object} resdto.ReserveTicketsResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /tickets/reserve [post]
func (h *TicketHandler) Reserve(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortWithDomainError(c, errs.ErrUnauthorized)
		return
	}
	var req reqdto.ReserveTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.reservations.Reserve(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.ReserveTicketsResponse{
		Message: "Tickets reserved successfully. Proceed to payment.",
		Tickets: result.TicketIDs,
	})
}

// @Summary Purchase tickets
// @Description Mark reserved tickets as sold, all or nothing
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PurchaseTicketsRequest true "Tickets to purchase"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /tickets/purchase [post]
func (h *TicketHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortWithDomainError(c, errs.ErrUnauthorized)
		return
	}
	var req reqdto.PurchaseTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.purchases.Purchase(c.Request.Context(), req.TicketIDs, userID); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Payment confirmed. Tickets are now SOLD."})
}

// @Summary My tickets
// @Description Tickets reserved or bought by the caller, newest first
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 50, max 200)"
// @Success 200 {array} resdto.TicketResponse
// @Failure 401 {object} httperr.Response
// @Router /tickets/me [get]
func (h *TicketHandler) Mine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortWithDomainError(c, errs.ErrUnauthorized)
		return
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.New("invalid limit"), "Invalid limit", nil)
			return
		}
		limit = n
	}

	views, err := h.q.ListMine(c.Request.Context(), userID, limit)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTicketViews(views))
}
