package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeParse            = "PARSE_ERROR"
	CodeInvalidSlot      = "INVALID_SLOT"
	CodeClosed           = "CLOSED"
	CodePartySize        = "PARTY_SIZE"
	CodeValidation       = "VALIDATION_ERROR"
	CodeNoAvailability   = "NO_AVAILABILITY"
	CodeConflict         = "CONFLICT"
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyCancelled = "ALREADY_CANCELLED"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError is the typed failure value every operation returns. Message is
// user-facing and always names the offending value and, where applicable,
// the valid range or format; adapters surface it verbatim.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	response := ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
	data, _ := json.Marshal(response)
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// Parse reports a date or time string that matched no recognized format.
func Parse(field, input, hint string) *AppError {
	return &AppError{
		Code:       CodeParse,
		Message:    fmt.Sprintf("could not parse %s %q; %s", field, input, hint),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"field": field,
			"input": input,
		},
	}
}

// InvalidSlot reports a time that is not on the slot grid.
func InvalidSlot(at string, slotMinutes int) *AppError {
	return &AppError{
		Code:       CodeInvalidSlot,
		Message:    fmt.Sprintf("%s is not a valid time slot; bookings start every %d minutes", at, slotMinutes),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"time":          at,
			"slot_duration": slotMinutes,
		},
	}
}

// Closed reports a time outside operating hours.
func Closed(at, opening, closing string) *AppError {
	return &AppError{
		Code:       CodeClosed,
		Message:    fmt.Sprintf("we're closed at %s; operating hours are %s - %s", at, opening, closing),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"time":    at,
			"opening": opening,
			"closing": closing,
		},
	}
}

// PartySize reports a party size outside the [1, max] range.
func PartySize(size, max int) *AppError {
	return &AppError{
		Code:       CodePartySize,
		Message:    fmt.Sprintf("party size must be between 1 and %d, got %d", max, size),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"party_size": size,
			"max":        max,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

// NoAvailability reports that no table satisfies the capacity and conflict
// constraints for the requested slot.
func NoAvailability(partySize int, date, at string) *AppError {
	return &AppError{
		Code:       CodeNoAvailability,
		Message:    fmt.Sprintf("no tables available for %d people on %s at %s", partySize, date, at),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"party_size": partySize,
			"date":       date,
			"time":       at,
		},
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s %s not found", resource, id),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func AlreadyCancelled(id string) *AppError {
	return &AppError{
		Code:       CodeAlreadyCancelled,
		Message:    fmt.Sprintf("reservation %s is already cancelled", id),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"id": id,
		},
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
