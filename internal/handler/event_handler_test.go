package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/pricing"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEventHandler_List(t *testing.T) {
	s := newTestServer(t, nil)
	events := []*domain.Event{{ID: "ev-1", Title: "Jazz night"}, {ID: "ev-2", Title: "Techno"}}

	s.events.On("List", mock.Anything, mock.MatchedBy(func(q *dto.ListEventsQuery) bool {
		return q.Status == "pending" && q.Page == 2 && q.Limit == 2
	})).Return(events, int64(5), nil)

	w := s.do(t, http.MethodGet, "/api/admin/events?status=pending&page=2&limit=2", nil, "moderator")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, int64(5), env.Meta.Total)
	assert.Equal(t, 3, env.Meta.TotalPages)

	var got []*domain.Event
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
}

func TestEventHandler_GetByID(t *testing.T) {
	s := newTestServer(t, nil)
	s.events.On("Get", mock.Anything, "ev-1").
		Return(&domain.Event{ID: "ev-1", OriginalPrice: 50, DiscountedPrice: 40, DiscountPercentage: 20}, nil)
	s.events.On("Get", mock.Anything, "missing").Return(nil, service.ErrEventNotFound)

	w := s.do(t, http.MethodGet, "/api/admin/events/ev-1", nil, "admin")
	require.Equal(t, http.StatusOK, w.Code)

	var detail dto.EventDetailResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &detail))
	assert.Equal(t, "ev-1", detail.Event.ID)
	assert.NotEmpty(t, detail.PricingOptions)

	w = s.do(t, http.MethodGet, "/api/admin/events/missing", nil, "admin")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "EVENT_NOT_FOUND", decode(t, w).Error.Code)
}

func TestEventHandler_UpdateStatus(t *testing.T) {
	t.Run("invalid moderation status", func(t *testing.T) {
		s := newTestServer(t, nil)

		w := s.do(t, http.MethodPatch, "/api/admin/events/ev-1/status", gin.H{"moderation_status": "banned"}, "admin")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, response.ErrCodeInvalidStatus, decode(t, w).Error.Code)
		s.events.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("recorded by the service not the middleware", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.events.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(a domain.Actor) bool {
			return a.UserID == "admin-1" && a.Role == "moderator"
		}), "ev-1", mock.Anything).Return(&domain.Event{ID: "ev-1", ModerationStatus: "approved"}, nil)

		w := s.do(t, http.MethodPatch, "/api/admin/events/ev-1/status", gin.H{"moderation_status": "approved"}, "moderator")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, s.auditEntries(t))
	})
}

func TestEventHandler_UpdatePricing(t *testing.T) {
	s := newTestServer(t, nil)
	s.events.On("UpdatePricing", mock.Anything, mock.Anything, "ev-1", mock.Anything).
		Return(&domain.Event{ID: "ev-1", OriginalPrice: 80, DiscountedPrice: 60, DiscountPercentage: 25}, nil)
	s.events.On("UpdatePricing", mock.Anything, mock.Anything, "ev-2", mock.Anything).
		Return(nil, pricing.ErrDiscountAboveOriginal)

	w := s.do(t, http.MethodPut, "/api/admin/events/ev-1/pricing", gin.H{"original_price": 80, "discounted_price": 60}, "admin")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &body))
	assert.EqualValues(t, 25, body["discount_percentage"])

	w = s.do(t, http.MethodPut, "/api/admin/events/ev-2/pricing", gin.H{"original_price": 50, "discounted_price": 70}, "admin")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrCodeInvalidPricing, decode(t, w).Error.Code)

	w = s.do(t, http.MethodPut, "/api/admin/events/ev-1/pricing", gin.H{"discount_percentage": 150}, "admin")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandler_Quote(t *testing.T) {
	s := newTestServer(t, nil)
	s.events.On("Quote", mock.Anything, "ev-1", &dto.PricingQuoteQuery{TierID: "vip", Quantity: 3}).
		Return(&pricing.Quote{UnitPrice: 30, TotalPrice: 90, Quantity: 3}, nil)
	s.events.On("Quote", mock.Anything, "ev-1", &dto.PricingQuoteQuery{TierID: "gone", Quantity: 1}).
		Return(nil, &pricing.ValidationError{Code: "PRICING_OPTION_NOT_FOUND", Message: "Pricing option not found"})

	w := s.do(t, http.MethodGet, "/api/admin/events/ev-1/pricing/quote?tier_id=vip&quantity=3", nil, "admin")
	require.Equal(t, http.StatusOK, w.Code)
	var quote pricing.Quote
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &quote))
	assert.Equal(t, 90.0, quote.TotalPrice)

	w = s.do(t, http.MethodGet, "/api/admin/events/ev-1/pricing/quote?tier_id=gone&quantity=1", nil, "admin")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PRICING_OPTION_NOT_FOUND", decode(t, w).Error.Code)
}

func TestEventHandler_Delete(t *testing.T) {
	s := newTestServer(t, nil)
	s.events.On("Delete", mock.Anything, mock.Anything, "ev-1").Return(service.ErrEventHasBookings)
	s.events.On("Delete", mock.Anything, mock.Anything, "ev-2").Return(nil)
	s.events.On("Delete", mock.Anything, mock.Anything, "ev-3").Return(errors.New("connection reset"))

	w := s.do(t, http.MethodDelete, "/api/admin/events/ev-1", nil, "admin")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EVENT_HAS_BOOKINGS", decode(t, w).Error.Code)

	w = s.do(t, http.MethodDelete, "/api/admin/events/ev-2", nil, "admin")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, "/api/admin/events/ev-3", nil, "admin")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	assert.Empty(t, s.auditEntries(t))
}
