package smartsheet

import "strconv"

// Hyperlink is a cell link. It targets a URL or another sheet or report.
type Hyperlink struct {
	URL      string `json:"url,omitempty"`
	SheetID  int64  `json:"sheetId,omitempty"`
	ReportID int64  `json:"reportId,omitempty"`
}

// String returns the link target for display.
func (h Hyperlink) String() string {
	switch {
	case h.URL != "":
		return h.URL
	case h.SheetID != 0:
		return "sheet:" + strconv.FormatInt(h.SheetID, 10)
	case h.ReportID != 0:
		return "report:" + strconv.FormatInt(h.ReportID, 10)
	}
	return ""
}
