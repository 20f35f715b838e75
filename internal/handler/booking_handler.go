package handler

import (
	"net/http"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// BookingHandler serves the booking list and the admin action log
type BookingHandler struct {
	bookingService service.BookingService
	logService     service.LogService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService service.BookingService, logService service.LogService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, logService: logService}
}

// List handles listing bookings
// GET /api/admin/bookings
func (h *BookingHandler) List(c *gin.Context) {
	var query dto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	bookings, total, err := h.bookingService.List(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(bookings, query.Page, query.Limit, total))
}

// Logs handles listing admin actions
// GET /api/admin/logs
func (h *BookingHandler) Logs(c *gin.Context) {
	var query dto.ListAdminLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	actions, total, err := h.logService.List(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(actions, query.Page, query.Limit, total))
}
