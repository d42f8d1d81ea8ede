package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"tably/pkg/model"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		tables []model.Table
	}{
		{"empty", nil},
		{"non-positive id", []model.Table{{ID: 0, Capacity: 2}}},
		{"non-positive capacity", []model.Table{{ID: 1, Capacity: 0}}},
		{"duplicate id", []model.Table{{ID: 1, Capacity: 2}, {ID: 1, Capacity: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.tables); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWithCapacityAtLeast_OrderedByID(t *testing.T) {
	inv, err := New([]model.Table{
		{ID: 6, Capacity: 8, Location: "Main Hall"},
		{ID: 1, Capacity: 2, Location: "Window"},
		{ID: 3, Capacity: 4, Location: "Main Hall"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := inv.WithCapacityAtLeast(3)
	if len(got) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 6 {
		t.Errorf("expected ids [3 6], got [%d %d]", got[0].ID, got[1].ID)
	}
}

func TestWithCapacityAtLeast_Monotonic(t *testing.T) {
	inv := Default()

	// A table qualifying for party size n qualifies for every m <= n.
	for n := inv.MaxCapacity(); n >= 1; n-- {
		qualified := map[int]struct{}{}
		for _, tbl := range inv.WithCapacityAtLeast(n) {
			qualified[tbl.ID] = struct{}{}
		}
		for m := 1; m <= n; m++ {
			wider := inv.WithCapacityAtLeast(m)
			found := map[int]struct{}{}
			for _, tbl := range wider {
				found[tbl.ID] = struct{}{}
			}
			for id := range qualified {
				if _, ok := found[id]; !ok {
					t.Fatalf("table %d qualifies for %d but not for smaller party %d", id, n, m)
				}
			}
		}
	}
}

func TestDefault(t *testing.T) {
	inv := Default()

	if got := len(inv.Tables()); got != 6 {
		t.Fatalf("expected 6 tables, got %d", got)
	}
	if got := inv.MaxCapacity(); got != 8 {
		t.Errorf("expected max capacity 8, got %d", got)
	}
	if got := inv.WithCapacityAtLeast(9); len(got) != 0 {
		t.Errorf("expected no table for party of 9, got %d", len(got))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.json")
	content := `[{"id": 2, "capacity": 4, "location": "Patio"}, {"id": 1, "capacity": 2, "location": "Window"}]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	inv, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tables := inv.Tables()
	if len(tables) != 2 || tables[0].ID != 1 {
		t.Errorf("expected tables sorted by id, got %+v", tables)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
