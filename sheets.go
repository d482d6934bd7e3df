package smartsheet

// SheetSummary is a sheet as listed by GET /sheets.
type SheetSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	AccessLevel string `json:"accessLevel,omitempty"`
	Permalink   string `json:"permalink,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	ModifiedAt  string `json:"modifiedAt,omitempty"`
	Version     int    `json:"version,omitempty"`
}

// Sheet is a full sheet including its columns and rows.
type Sheet struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	AccessLevel   string   `json:"accessLevel,omitempty"`
	Permalink     string   `json:"permalink,omitempty"`
	Version       int      `json:"version,omitempty"`
	TotalRowCount int      `json:"totalRowCount,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	ModifiedAt    string   `json:"modifiedAt,omitempty"`
	Columns       []Column `json:"columns"`
	Rows          []Row    `json:"rows"`
}

// Column returns the sheet's column with the given id.
func (s *Sheet) Column(id int64) (Column, bool) {
	for _, c := range s.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// NewSheet is the payload for creating a sheet.
type NewSheet struct {
	Name    string      `json:"name"`
	Columns []NewColumn `json:"columns"`
}

// ListOptions pages GET /sheets. IncludeAll returns every sheet in one page.
type ListOptions struct {
	Page       int
	PageSize   int
	IncludeAll bool
}
