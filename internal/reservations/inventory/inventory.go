// Package inventory holds the fixed set of seating resources. The inventory
// is read-only after initialization; allocation relies on its stable id
// ordering for deterministic tie-breaks.
package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"tably/pkg/model"
)

type Inventory struct {
	tables []model.Table
}

// New validates and orders the table set. IDs must be positive and unique,
// capacities positive.
func New(tables []model.Table) (*Inventory, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("inventory cannot be empty")
	}

	seen := make(map[int]struct{}, len(tables))
	owned := make([]model.Table, len(tables))
	copy(owned, tables)

	for _, tbl := range owned {
		if tbl.ID <= 0 {
			return nil, fmt.Errorf("table ID must be positive, got %d", tbl.ID)
		}
		if tbl.Capacity <= 0 {
			return nil, fmt.Errorf("table %d capacity must be positive, got %d", tbl.ID, tbl.Capacity)
		}
		if _, dup := seen[tbl.ID]; dup {
			return nil, fmt.Errorf("duplicate table ID %d", tbl.ID)
		}
		seen[tbl.ID] = struct{}{}
	}

	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	return &Inventory{tables: owned}, nil
}

// Default is the built-in floor plan.
func Default() *Inventory {
	inv, err := New([]model.Table{
		{ID: 1, Capacity: 2, Location: "Window"},
		{ID: 2, Capacity: 2, Location: "Window"},
		{ID: 3, Capacity: 4, Location: "Main Hall"},
		{ID: 4, Capacity: 4, Location: "Main Hall"},
		{ID: 5, Capacity: 6, Location: "Private"},
		{ID: 6, Capacity: 8, Location: "Main Hall"},
	})
	if err != nil {
		panic(err)
	}
	return inv
}

// Load reads a JSON array of tables from path.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables file: %w", err)
	}
	var tables []model.Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parsing tables file %s: %w", path, err)
	}
	return New(tables)
}

// Tables returns the full inventory in id order.
func (inv *Inventory) Tables() []model.Table {
	out := make([]model.Table, len(inv.tables))
	copy(out, inv.tables)
	return out
}

// WithCapacityAtLeast returns every table seating at least n, in ascending
// id order.
func (inv *Inventory) WithCapacityAtLeast(n int) []model.Table {
	out := make([]model.Table, 0, len(inv.tables))
	for _, tbl := range inv.tables {
		if tbl.Capacity >= n {
			out = append(out, tbl)
		}
	}
	return out
}

// MaxCapacity is the largest single-table capacity, the hard ceiling on
// party size regardless of configuration.
func (inv *Inventory) MaxCapacity() int {
	max := 0
	for _, tbl := range inv.tables {
		if tbl.Capacity > max {
			max = tbl.Capacity
		}
	}
	return max
}
