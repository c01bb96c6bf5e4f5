package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTripNotFound is returned when a trip is not found or not owned by the caller.
	ErrTripNotFound = errors.New("trip not found")
	// ErrAttendeeNotFound is returned when an attendee is not found or not owned by the caller.
	ErrAttendeeNotFound = errors.New("attendee not found")
	// ErrExpenseNotFound is returned when an expense is not found or not owned by the caller.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrScheduleItemNotFound is returned when a schedule item is not found or not owned by the caller.
	ErrScheduleItemNotFound = errors.New("schedule item not found")
	// ErrShareNotFound is returned when a share token matches no share.
	ErrShareNotFound = errors.New("share not found")

	// ErrInvalidAmount is returned when an expense amount is negative or unparseable.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidCategory is returned when an expense category is outside the known set.
	ErrInvalidCategory = errors.New("invalid expense category")
	// ErrEmptySplit is returned when a multi-payer expense selects no payers.
	ErrEmptySplit = errors.New("at least one payer must be selected")
	// ErrSplitMismatch is returned when payer amounts do not sum to the expense total.
	ErrSplitMismatch = errors.New("payer amounts do not sum to the expense total")
	// ErrMalformedRow is returned for a CSV row that cannot be imported.
	ErrMalformedRow = errors.New("malformed row")
	// ErrInvalidDate is returned when a schedule date or time is malformed.
	ErrInvalidDate = errors.New("invalid date or time")
	// ErrInvalidShareToken is returned when a share token is missing or too short.
	ErrInvalidShareToken = errors.New("invalid share token")

	// ErrShareExpiredOrRevoked is returned when a share link has expired or been revoked.
	ErrShareExpiredOrRevoked = errors.New("share link expired or revoked")
	// ErrInvalidPasscode is returned when a share passcode is missing or wrong.
	ErrInvalidPasscode = errors.New("invalid passcode")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Store failures fall
// through to a generic 500 so the underlying cause never reaches the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTripNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TRIP_NOT_FOUND")
	case errors.Is(err, ErrAttendeeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ATTENDEE_NOT_FOUND")
	case errors.Is(err, ErrExpenseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EXPENSE_NOT_FOUND")
	case errors.Is(err, ErrScheduleItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SCHEDULE_ITEM_NOT_FOUND")
	case errors.Is(err, ErrShareNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SHARE_NOT_FOUND")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrEmptySplit):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_SPLIT")
	case errors.Is(err, ErrSplitMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SPLIT_MISMATCH")
	case errors.Is(err, ErrInvalidDate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE")
	case errors.Is(err, ErrInvalidShareToken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SHARE_TOKEN")
	case errors.Is(err, ErrShareExpiredOrRevoked):
		return NewHTTPError(http.StatusForbidden, err.Error(), "SHARE_EXPIRED_OR_REVOKED")
	case errors.Is(err, ErrInvalidPasscode):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_PASSCODE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
