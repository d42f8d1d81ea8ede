package model

import (
	"time"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Reservation is a single entry in the ledger. Once created, the only field
// that ever changes is Status (active -> cancelled); records are never
// physically deleted so history stays queryable.
type Reservation struct {
	ID            string    `json:"id" bson:"_id"`
	CustomerName  string    `json:"customer_name" bson:"customer_name"`
	PartySize     int       `json:"party_size" bson:"party_size"`
	Slot          TimeSlot  `json:"slot" bson:"slot"`
	TableID       int       `json:"table_id" bson:"table_id"`
	TableLocation string    `json:"table_location" bson:"table_location"`
	Status        string    `json:"status" bson:"status"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// BookingRequest carries the raw caller input for a booking. Date and Time
// are free-form strings; the engine normalizes them before any decision is
// made. PartySize is range-checked by the engine, not the validator, so an
// out-of-range size surfaces as a party-size error rather than a generic
// validation failure.
type BookingRequest struct {
	CustomerName string `json:"customer_name" validate:"required,min=1,max=100"`
	PartySize    int    `json:"party_size"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Notes        string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Availability is the result of an availability check: the normalized slot,
// the party size the check ran against, and every table that both seats the
// party and has no active reservation for the slot.
type Availability struct {
	Slot      TimeSlot `json:"slot"`
	PartySize int      `json:"party_size"`
	Tables    []Table  `json:"tables"`
}

// Available reports whether at least one table survived the capacity and
// conflict filters.
func (a Availability) Available() bool {
	return len(a.Tables) > 0
}

// ListFilter narrows a reservation listing. Zero-value fields are no-ops;
// provided fields are ANDed together. Date is raw input and goes through the
// normalizer; Name matches case-insensitively on a substring.
type ListFilter struct {
	Date   string
	Name   string
	Status string
}
