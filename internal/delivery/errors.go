package delivery

import "errors"

// Code is a machine-readable rejection code.
type Code string

const (
	CodeDateRequired    Code = "date_required"
	CodeInvalidDate     Code = "invalid_date_format"
	CodeDateUnavailable Code = "date_unavailable"
	CodeIntegrity       Code = "integrity_check_failed"
)

// Error is a rejected delivery-date request. Message is for logs only;
// user-facing text is looked up by Code.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches by code so callers can test against the sentinels below.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrDateRequired = &Error{Code: CodeDateRequired, Message: "delivery date is required"}
	ErrInvalidDate  = &Error{Code: CodeInvalidDate, Message: "delivery date is malformed"}
	ErrUnavailable  = &Error{Code: CodeDateUnavailable, Message: "delivery date is not available"}
	ErrIntegrity    = &Error{Code: CodeIntegrity, Message: "request integrity check failed"}
)

// IsValidation reports whether err rejects the submitted date, either for
// its format or for the choice itself. Callers treat both the same way.
func IsValidation(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == CodeDateRequired || e.Code == CodeInvalidDate || e.Code == CodeDateUnavailable
}
