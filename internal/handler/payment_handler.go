package handler

import (
	"net/http"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment monitoring and refund HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Stats returns payment statistics
// GET /api/payments/admin/stats
func (h *PaymentHandler) Stats(c *gin.Context) {
	var query dto.PaymentStatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	stats, err := h.paymentService.Stats(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}

// Transactions lists payment transactions
// GET /api/payments/admin/transactions
func (h *PaymentHandler) Transactions(c *gin.Context) {
	var query dto.ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	payments, total, err := h.paymentService.Transactions(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(payments, query.Page, query.Limit, total))
}

// Revenue returns the revenue series
// GET /api/payments/admin/revenue
func (h *PaymentHandler) Revenue(c *gin.Context) {
	var query dto.RevenueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.paymentService.Revenue(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Refund refunds a payment through the provider
// POST /api/payments/admin/refund
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.paymentService.Refund(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SkipAudit(c)
	c.JSON(http.StatusOK, response.Success(result))
}

// Disputes lists chargebacks
// GET /api/payments/admin/disputes
func (h *PaymentHandler) Disputes(c *gin.Context) {
	var query dto.ListDisputesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	disputes, total, err := h.paymentService.Disputes(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(disputes, query.Page, query.Limit, total))
}
