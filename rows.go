package smartsheet

// Row is a row of a sheet as returned by the service.
type Row struct {
	ID         int64  `json:"id"`
	SheetID    int64  `json:"sheetId,omitempty"`
	RowNumber  int    `json:"rowNumber"`
	Expanded   bool   `json:"expanded"`
	Locked     bool   `json:"locked,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	ModifiedAt string `json:"modifiedAt,omitempty"`
	Cells      []Cell `json:"cells"`
}

// Cell returns the row's cell for a column id.
func (r Row) Cell(columnID int64) (Cell, bool) {
	for _, c := range r.Cells {
		if c.ColumnID == columnID {
			return c, true
		}
	}
	return Cell{}, false
}

// NewRow is the payload of a row insert or update. ID is set for updates only.
type NewRow struct {
	ID       int64     `json:"id,omitempty"`
	ToTop    bool      `json:"toTop,omitempty"`
	ToBottom bool      `json:"toBottom,omitempty"`
	Expanded *bool     `json:"expanded,omitempty"`
	Locked   *bool     `json:"locked,omitempty"`
	Cells    []NewCell `json:"cells,omitempty"`
}
