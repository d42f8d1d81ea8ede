package grid

import (
	"testing"

	"tably/pkg/model"
)

func mustGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := New(model.TimeOfDay{Hour: 11}, model.TimeOfDay{Hour: 21}, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		opening     model.TimeOfDay
		closing     model.TimeOfDay
		slotMinutes int
	}{
		{"zero slot duration", model.TimeOfDay{Hour: 11}, model.TimeOfDay{Hour: 21}, 0},
		{"negative slot duration", model.TimeOfDay{Hour: 11}, model.TimeOfDay{Hour: 21}, -30},
		{"slot duration not dividing an hour", model.TimeOfDay{Hour: 11}, model.TimeOfDay{Hour: 21}, 45},
		{"opening equals closing", model.TimeOfDay{Hour: 11}, model.TimeOfDay{Hour: 11}, 30},
		{"opening after closing", model.TimeOfDay{Hour: 22}, model.TimeOfDay{Hour: 11}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opening, tt.closing, tt.slotMinutes); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestOnGrid(t *testing.T) {
	g := mustGrid(t)

	tests := []struct {
		at   model.TimeOfDay
		want bool
	}{
		{model.TimeOfDay{Hour: 19}, true},
		{model.TimeOfDay{Hour: 19, Minute: 30}, true},
		{model.TimeOfDay{Hour: 19, Minute: 15}, false},
		{model.TimeOfDay{Hour: 19, Minute: 1}, false},
	}

	for _, tt := range tests {
		if got := g.OnGrid(tt.at); got != tt.want {
			t.Errorf("OnGrid(%s) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestWithinHours_Boundaries(t *testing.T) {
	g := mustGrid(t)

	if !g.WithinHours(model.TimeOfDay{Hour: 11}) {
		t.Error("opening time must be bookable")
	}
	if g.WithinHours(model.TimeOfDay{Hour: 21}) {
		t.Error("closing time itself must not be bookable")
	}
	if !g.WithinHours(model.TimeOfDay{Hour: 20, Minute: 30}) {
		t.Error("last slot before closing must be bookable")
	}
	if g.WithinHours(model.TimeOfDay{Hour: 10, Minute: 30}) {
		t.Error("time before opening must not be bookable")
	}
	if g.WithinHours(model.TimeOfDay{Hour: 22}) {
		t.Error("time after closing must not be bookable")
	}
}

func TestSlots(t *testing.T) {
	g := mustGrid(t)

	slots := g.Slots()
	if len(slots) != 20 {
		t.Fatalf("expected 20 slots between 11:00 and 21:00, got %d", len(slots))
	}
	if slots[0] != (model.TimeOfDay{Hour: 11}) {
		t.Errorf("first slot = %s, want 11:00", slots[0])
	}
	if last := slots[len(slots)-1]; last != (model.TimeOfDay{Hour: 20, Minute: 30}) {
		t.Errorf("last slot = %s, want 20:30", last)
	}

	for i := 1; i < len(slots); i++ {
		if !slots[i-1].Before(slots[i]) {
			t.Fatalf("slots out of order at index %d: %s >= %s", i, slots[i-1], slots[i])
		}
	}

	// Regenerated per call: mutating one result must not leak into the next.
	slots[0] = model.TimeOfDay{Hour: 3}
	if fresh := g.Slots(); fresh[0] != (model.TimeOfDay{Hour: 11}) {
		t.Error("Slots must regenerate on each call")
	}
}
