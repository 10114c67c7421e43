package api

import (
	"net/http"
	"strconv"

	resdto "eventgo-ticketing/internal/handler/dto/response"
	"eventgo-ticketing/internal/handler/httperr"
	"eventgo-ticketing/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SeatHandler struct {
	q queries.SeatQueries
}

func NewSeatHandler(q queries.SeatQueries) *SeatHandler {
	return &SeatHandler{q: q}
}

// @Summary Booked seats
// @Description Seat ids of the event that hold a reserved or sold ticket
// @Tags seats
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {array} int
// @Failure 400 {object} httperr.Response
// @Router /events/{event_id}/booked-seats [get]
func (h *SeatHandler) BookedSeats(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	ids, err := h.q.BookedSeats(c.Request.Context(), eventID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// @Summary Seats with status
// @Description Catalog seats of the event with AVAILABLE, RESERVED or SOLD status
// @Tags seats
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {array} resdto.SeatResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /events/{event_id}/seats [get]
func (h *SeatHandler) Seats(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	views, err := h.q.SeatsWithStatus(c.Request.Context(), eventID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSeatViews(views))
}

func parseEventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("event_id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = strconv.ErrRange
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid event id", nil)
		return 0, false
	}
	return id, true
}
