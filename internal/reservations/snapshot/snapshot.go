// Package snapshot persists point-in-time copies of the reservation
// ledger so a restart can resume with the same bookings and the same id
// sequence. The ledger itself stays the source of truth; snapshots are
// written on shutdown and loaded once at startup.
package snapshot

import (
	"context"

	"tably/pkg/model"
)

type Store interface {
	Save(ctx context.Context, reservations []model.Reservation) error
	Load(ctx context.Context) ([]model.Reservation, error)
}
