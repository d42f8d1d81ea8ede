// Package grid models the bookable time-of-day values of a service day:
// a fixed-duration slot lattice between an opening and a closing bound.
package grid

import (
	"fmt"

	"tably/pkg/model"
)

// Grid is read-only after construction and safe for concurrent use.
type Grid struct {
	opening     model.TimeOfDay
	closing     model.TimeOfDay
	slotMinutes int
}

// New validates the operating-hours configuration. The slot duration must
// divide a whole hour so the grid stays aligned day over day.
func New(opening, closing model.TimeOfDay, slotMinutes int) (*Grid, error) {
	if slotMinutes <= 0 || 60%slotMinutes != 0 {
		return nil, fmt.Errorf("slot duration must be a positive divisor of 60, got %d", slotMinutes)
	}
	if !opening.Before(closing) {
		return nil, fmt.Errorf("opening time %s must be before closing time %s", opening, closing)
	}
	return &Grid{
		opening:     opening,
		closing:     closing,
		slotMinutes: slotMinutes,
	}, nil
}

func (g *Grid) Opening() model.TimeOfDay { return g.opening }
func (g *Grid) Closing() model.TimeOfDay { return g.closing }
func (g *Grid) SlotMinutes() int         { return g.slotMinutes }

// OnGrid reports whether t lands on a slot boundary.
func (g *Grid) OnGrid(t model.TimeOfDay) bool {
	return t.Minute%g.slotMinutes == 0
}

// WithinHours reports whether t falls inside operating hours. The interval
// is half-open: the closing time itself is not bookable.
func (g *Grid) WithinHours(t model.TimeOfDay) bool {
	return !t.Before(g.opening) && t.Before(g.closing)
}

// Slots enumerates every bookable time of day in ascending order. The slice
// is regenerated on each call, so callers may mutate it freely.
func (g *Grid) Slots() []model.TimeOfDay {
	slots := make([]model.TimeOfDay, 0, (g.closing.MinuteOfDay()-g.opening.MinuteOfDay())/g.slotMinutes)
	for m := g.opening.MinuteOfDay(); m < g.closing.MinuteOfDay(); m += g.slotMinutes {
		slots = append(slots, model.TimeOfDayFromMinutes(m))
	}
	return slots
}
