package model

// Table is a single seating resource on the floor plan. Inventory is fixed
// at process start; a table has no lifecycle beyond static initialization.
type Table struct {
	ID       int    `json:"id"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
}
