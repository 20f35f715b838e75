package response

import (
	"net/http"
)

// Response represents the standard API response structure
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo represents error details in the response
type ErrorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Meta represents pagination metadata, shaped the way the admin console reads it
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"pages"`
}

// --- Error Code Constants ---

const (
	// Client errors (4xx)
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeUnprocessableEntity = "UNPROCESSABLE_ENTITY"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodePayloadTooLarge     = "PAYLOAD_TOO_LARGE"

	// Server errors (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeBadGateway         = "BAD_GATEWAY"

	// Business logic errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeDuplicateEntry   = "DUPLICATE_ENTRY"
	ErrCodeResourceInUse    = "RESOURCE_IN_USE"
	ErrCodeRefundFailed     = "REFUND_FAILED"
	ErrCodeInvalidStatus    = "INVALID_STATUS"
	ErrCodeInvalidRole      = "INVALID_ROLE"
	ErrCodeInvalidPricing   = "INVALID_PRICING"
)

// ErrorCodeToHTTPStatus maps error codes to HTTP status codes
var ErrorCodeToHTTPStatus = map[string]int{
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeUnprocessableEntity: http.StatusUnprocessableEntity,
	ErrCodeTooManyRequests:     http.StatusTooManyRequests,
	ErrCodePayloadTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeInternalError:       http.StatusInternalServerError,
	ErrCodeServiceUnavailable:  http.StatusServiceUnavailable,
	ErrCodeBadGateway:          http.StatusBadGateway,
	ErrCodeValidationFailed:    http.StatusBadRequest,
	ErrCodeDuplicateEntry:      http.StatusConflict,
	ErrCodeResourceInUse:       http.StatusConflict,
	ErrCodeRefundFailed:        http.StatusBadGateway,
	ErrCodeInvalidStatus:       http.StatusBadRequest,
	ErrCodeInvalidRole:         http.StatusBadRequest,
	ErrCodeInvalidPricing:      http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeToHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// --- Response Builders ---

// Success creates a success response with data
func Success(data interface{}) *Response {
	return &Response{
		Success: true,
		Data:    data,
	}
}

// Error creates an error response
func Error(code string, message string) *Response {
	return &Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// ErrorWithDetails creates an error response with additional details
func ErrorWithDetails(code string, message string, details map[string]string) *Response {
	return &Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// Paginated creates a paginated success response. A non-positive limit yields a
// single page.
func Paginated(data interface{}, page, limit int, total int64) *Response {
	return &Response{
		Success: true,
		Data:    data,
		Meta:    NewMeta(page, limit, total),
	}
}

// NewMeta builds pagination metadata
func NewMeta(page, limit int, total int64) *Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total) / limit
		if int(total)%limit > 0 {
			totalPages++
		}
	} else if total > 0 {
		totalPages = 1
	}
	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// --- Common Error Responses ---

// BadRequest creates a bad request error response
func BadRequest(message string) *Response {
	return Error(ErrCodeBadRequest, message)
}

// Unauthorized creates an unauthorized error response
func Unauthorized(message string) *Response {
	if message == "" {
		message = "Authentication required"
	}
	return Error(ErrCodeUnauthorized, message)
}

// Forbidden creates a forbidden error response
func Forbidden(message string) *Response {
	if message == "" {
		message = "Access denied"
	}
	return Error(ErrCodeForbidden, message)
}

// InternalError creates an internal server error response
func InternalError(message string) *Response {
	if message == "" {
		message = "An internal error occurred"
	}
	return Error(ErrCodeInternalError, message)
}

// TooManyRequests creates a rate limit error response
func TooManyRequests(message string) *Response {
	if message == "" {
		message = "Too many requests, please try again later"
	}
	return Error(ErrCodeTooManyRequests, message)
}
