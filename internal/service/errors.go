package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrConsoleForbidden   = errors.New("account is not allowed to use the admin console")
	ErrAccountDisabled    = errors.New("account is disabled")

	ErrEventNotFound     = errors.New("event not found")
	ErrEventHasBookings  = errors.New("event has confirmed bookings")
	ErrUserNotFound      = errors.New("user not found")
	ErrAdminOnly         = errors.New("only admins can perform this action")
	ErrSelfRoleChange    = errors.New("admins cannot change their own role")
	ErrSelfDelete        = errors.New("admins cannot delete their own account")
	ErrUserHasReferences = errors.New("user still owns events or bookings")

	ErrPaymentNotFound = errors.New("payment not found")
	ErrRefundFailed    = errors.New("refund failed at payment provider")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category is used by events")

	ErrTranslationNotFound = errors.New("translations not found")
	ErrTranslationExists   = errors.New("translations already exist")

	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateExists   = errors.New("template already exists for this language")
	ErrSettingNotFound  = errors.New("setting not found")
	ErrPushDisabled     = errors.New("push notifications are disabled")
)

// ValidationError reports invalid input detected by a service
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
