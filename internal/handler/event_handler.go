package handler

import (
	"net/http"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// EventHandler handles event moderation HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles listing events with filters
// GET /api/admin/events
func (h *EventHandler) List(c *gin.Context) {
	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	events, total, err := h.eventService.List(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(events, query.Page, query.Limit, total))
}

// GetByID returns an event with its pricing options
// GET /api/admin/events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	event, err := h.eventService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.NewEventDetailResponse(event)))
}

// UpdateStatus handles publication and moderation changes
// PATCH /api/admin/events/:id/status
func (h *EventHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeInvalidStatus, msg))
		return
	}

	event, err := h.eventService.UpdateStatus(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	// recorded with the update
	middleware.SkipAudit(c)
	c.JSON(http.StatusOK, response.Success(gin.H{
		"message": "Event status updated successfully",
		"event":   event,
	}))
}

// UpdatePricing handles the discount form
// PUT /api/admin/events/:id/pricing
func (h *EventHandler) UpdatePricing(c *gin.Context) {
	var req dto.UpdateEventPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	event, err := h.eventService.UpdatePricing(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SkipAudit(c)
	c.JSON(http.StatusOK, response.Success(gin.H{
		"message":             "Event pricing updated successfully",
		"original_price":      event.OriginalPrice,
		"discounted_price":    event.DiscountedPrice,
		"discount_percentage": event.DiscountPercentage,
		"event":               event,
	}))
}

// Quote previews the price of a pricing option
// GET /api/admin/events/:id/pricing/quote
func (h *EventHandler) Quote(c *gin.Context) {
	var query dto.PricingQuoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	quote, err := h.eventService.Quote(c.Request.Context(), c.Param("id"), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(quote))
}

// Delete handles event deletion
// DELETE /api/admin/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventService.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	middleware.SkipAudit(c)
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Event deleted successfully"}))
}
