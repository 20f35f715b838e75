package handler

import (
	"errors"
	"net/http"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/pricing"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/beout/beout-admin/pkg/translation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// serviceErrors maps sentinel errors to HTTP responses. A zero status takes
// the status registered for the code; an empty message reuses the error text.
var serviceErrors = []errorMapping{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"},
	{service.ErrConsoleForbidden, 0, response.ErrCodeForbidden, "Admin access required"},
	{service.ErrAccountDisabled, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled"},
	{service.ErrAdminOnly, 0, response.ErrCodeForbidden, "Only admins can perform this action"},

	{service.ErrEventNotFound, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found"},
	{service.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND", "User not found"},
	{service.ErrPaymentNotFound, http.StatusNotFound, "PAYMENT_NOT_FOUND", "Payment not found"},
	{service.ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found"},
	{service.ErrTranslationNotFound, http.StatusNotFound, "TRANSLATION_NOT_FOUND", "Translations not found"},
	{service.ErrTemplateNotFound, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "Template not found"},
	{service.ErrSettingNotFound, http.StatusNotFound, "SETTING_NOT_FOUND", "Setting not found"},

	{service.ErrEventHasBookings, http.StatusConflict, "EVENT_HAS_BOOKINGS", "Cannot delete an event with confirmed bookings"},
	{service.ErrUserHasReferences, 0, response.ErrCodeResourceInUse, "User still owns events, bookings or payments"},
	{service.ErrCategoryInUse, 0, response.ErrCodeResourceInUse, "Category is used by events"},
	{service.ErrCategoryExists, 0, response.ErrCodeDuplicateEntry, "Category already exists"},
	{service.ErrTranslationExists, 0, response.ErrCodeDuplicateEntry, "Translations already exist for this language and namespace"},
	{service.ErrTemplateExists, 0, response.ErrCodeDuplicateEntry, "Template already exists for this language"},
	{service.ErrPushDisabled, http.StatusConflict, "PUSH_DISABLED", "Push notifications are disabled"},

	{service.ErrSelfRoleChange, 0, response.ErrCodeInvalidRole, "You cannot change your own role"},
	{service.ErrSelfDelete, 0, response.ErrCodeBadRequest, "You cannot delete your own account"},

	{domain.ErrPaymentNotRefundable, http.StatusBadRequest, "PAYMENT_NOT_REFUNDABLE", ""},
	{domain.ErrRefundExceedsAmount, http.StatusBadRequest, "INVALID_REFUND_AMOUNT", ""},
	{domain.ErrInvalidRefundAmount, http.StatusBadRequest, "INVALID_REFUND_AMOUNT", ""},
	{service.ErrRefundFailed, 0, response.ErrCodeRefundFailed, ""},

	{pricing.ErrPriceRequired, 0, response.ErrCodeInvalidPricing, ""},
	{pricing.ErrNegativePrice, 0, response.ErrCodeInvalidPricing, ""},
	{pricing.ErrDiscountAboveOriginal, 0, response.ErrCodeInvalidPricing, ""},
	{pricing.ErrInvalidPercentage, 0, response.ErrCodeInvalidPricing, ""},

	{translation.ErrInvalidLanguage, http.StatusBadRequest, "INVALID_LANGUAGE", ""},
	{translation.ErrInvalidNamespace, http.StatusBadRequest, "INVALID_NAMESPACE", ""},
}

// respondError writes the response for a service error
func respondError(c *gin.Context, err error) {
	if service.IsValidation(err) {
		c.JSON(response.GetHTTPStatus(response.ErrCodeValidationFailed), response.Error(response.ErrCodeValidationFailed, err.Error()))
		return
	}

	var pricingErr *pricing.ValidationError
	if errors.As(err, &pricingErr) {
		c.JSON(http.StatusBadRequest, response.Error(pricingErr.Code, pricingErr.Message))
		return
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			status, message := m.status, m.message
			if status == 0 {
				status = response.GetHTTPStatus(m.code)
			}
			if message == "" {
				message = err.Error()
			}
			c.JSON(status, response.Error(m.code, message))
			return
		}
	}

	logger.ErrorCtx(c.Request.Context(), "request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
}
