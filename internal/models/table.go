package models

// Cell is a single table value. Valid is false for the absent marker.
type Cell struct {
	Text  string `json:"text"`
	Valid bool   `json:"valid"`
}

// Text builds a present cell
func Text(s string) Cell {
	return Cell{Text: s, Valid: true}
}

// Null is the absent cell
var Null = Cell{}

// Table is a rendered tabular view
type Table struct {
	Caption string   `json:"caption,omitempty"`
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}
