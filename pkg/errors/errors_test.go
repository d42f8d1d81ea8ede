package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("snapshot store unreachable")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if !errors.Is(wrapped, originalErr) {
		t.Errorf("expected errors.Is to see through the wrapper")
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "reservation RES0042 not found",
			},
			expected: "NOT_FOUND: reservation RES0042 not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("snapshot store unreachable"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: snapshot store unreachable)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDomainConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"parse", Parse("date", "next tuesday", "use format YYYY-MM-DD"), CodeParse, http.StatusBadRequest},
		{"invalid slot", InvalidSlot("19:15", 30), CodeInvalidSlot, http.StatusBadRequest},
		{"closed", Closed("09:30 PM", "11:00 AM", "09:00 PM"), CodeClosed, http.StatusBadRequest},
		{"party size", PartySize(9, 8), CodePartySize, http.StatusBadRequest},
		{"no availability", NoAvailability(4, "2025-12-15", "19:00"), CodeNoAvailability, http.StatusConflict},
		{"not found", NotFoundWithID("Reservation", "RES0042"), CodeNotFound, http.StatusNotFound},
		{"already cancelled", AlreadyCancelled("RES0042"), CodeAlreadyCancelled, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.StatusCode())
			}
			if tt.err.Message == "" {
				t.Error("expected a descriptive message")
			}
		})
	}
}

func TestPartySize_MessageNamesOffendingValue(t *testing.T) {
	err := PartySize(9, 8)

	if want := "party size must be between 1 and 8, got 9"; err.Message != want {
		t.Errorf("expected %q, got %q", want, err.Message)
	}
}

func TestHasCode(t *testing.T) {
	err := NoAvailability(2, "2025-12-15", "19:00")

	if !HasCode(err, CodeNoAvailability) {
		t.Error("expected HasCode to match NO_AVAILABILITY")
	}
	if HasCode(err, CodeConflict) {
		t.Error("did not expect HasCode to match CONFLICT")
	}
	if HasCode(errors.New("plain"), CodeConflict) {
		t.Error("plain errors carry no code")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := InvalidInput("reservation ID cannot be empty")
	if got := AsAppError(appErr); got != appErr {
		t.Error("expected AsAppError to return the same AppError")
	}

	plain := errors.New("boom")
	converted := AsAppError(plain)
	if converted.Code != CodeInternal {
		t.Errorf("expected plain errors to convert to %s, got %s", CodeInternal, converted.Code)
	}
	if converted.Err != plain {
		t.Error("expected converted error to wrap the original")
	}
}
