package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrAlreadyCancelled = errors.New("reservation already cancelled")

	// ErrSlotTaken is returned by the ledger when an insert loses the race
	// for a (table, slot) pair. The engine retries with the next candidate
	// table, so this normally never reaches a caller.
	ErrSlotTaken = errors.New("table already reserved for this slot")

	ErrDuplicateID = errors.New("duplicate reservation ID")
)
