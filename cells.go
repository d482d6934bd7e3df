package smartsheet

import "encoding/json"

// Cell is a cell of a row as returned by the service.
type Cell struct {
	ColumnID     int64      `json:"columnId"`
	Value        any        `json:"value,omitempty"`
	DisplayValue any        `json:"displayValue,omitempty"`
	ColumnType   string     `json:"columnType,omitempty"`
	Formula      string     `json:"formula,omitempty"`
	Format       string     `json:"format,omitempty"`
	Hyperlink    *Hyperlink `json:"hyperlink,omitempty"`
}

// Formula marks a value as a cell formula ("=SUM([Cost]:[Cost])"). Formula
// values are written as-is and are not checked against the column type.
type Formula string

// NewCell is a cell in a row write. It carries either a value or a formula.
type NewCell struct {
	ColumnID int64
	Value    any
	Formula  string
	Format   string // omitted when empty
}

// MarshalJSON writes the value branch ({"columnId", "value"}) or the formula
// branch ({"columnId", "formula"}). A nil value is sent as null, clearing the cell.
func (c NewCell) MarshalJSON() ([]byte, error) {
	if c.Formula != "" {
		return json.Marshal(struct {
			ColumnID int64  `json:"columnId"`
			Formula  string `json:"formula"`
			Format   string `json:"format,omitempty"`
		}{c.ColumnID, c.Formula, c.Format})
	}
	return json.Marshal(struct {
		ColumnID int64  `json:"columnId"`
		Value    any    `json:"value"`
		Format   string `json:"format,omitempty"`
	}{c.ColumnID, c.Value, c.Format})
}
