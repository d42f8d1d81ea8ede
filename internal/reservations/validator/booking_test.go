package validator

import (
	"errors"
	"strings"
	"testing"

	"tably/pkg/logger"
	"tably/pkg/model"
)

func newValidator() *BookingValidator {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	return NewBookingValidator(log)
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		CustomerName: "Alice Smith",
		PartySize:    2,
		Date:         "2025-12-15",
		Time:         "19:00",
	}
}

func TestValidate_OK(t *testing.T) {
	v := newValidator()

	if err := v.Validate(validRequest()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	withContact := validRequest()
	withContact.Phone = "+12125550187"
	withContact.Email = "alice@example.com"
	withContact.Notes = "window seat please"
	if err := v.Validate(withContact); err != nil {
		t.Errorf("unexpected error with contact fields: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name   string
		mutate func(*model.BookingRequest)
		field  string
	}{
		{"empty name", func(r *model.BookingRequest) { r.CustomerName = "" }, "CustomerName"},
		{"empty date", func(r *model.BookingRequest) { r.Date = "" }, "Date"},
		{"empty time", func(r *model.BookingRequest) { r.Time = "" }, "Time"},
		{"bad email", func(r *model.BookingRequest) { r.Email = "not-an-email" }, "Email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if err == nil {
				t.Fatal("expected a validation error")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if !strings.Contains(verrs.Error(), tt.field) {
				t.Errorf("expected error to name field %s, got %q", tt.field, verrs.Error())
			}
		})
	}
}

func TestValidate_PartySizeOutOfScope(t *testing.T) {
	v := newValidator()

	// The validator must not range-check party size; that belongs to the
	// engine so it surfaces with its own error kind.
	req := validRequest()
	req.PartySize = 0
	if err := v.Validate(req); err != nil {
		t.Errorf("validator should ignore party size, got %v", err)
	}
	req.PartySize = 99
	if err := v.Validate(req); err != nil {
		t.Errorf("validator should ignore party size, got %v", err)
	}
}
