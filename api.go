package smartsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// listResponse is the envelope of paged list endpoints.
type listResponse[T any] struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
	Data       []T `json:"data"`
}

// resultResponse is the envelope of create and update endpoints.
type resultResponse[T any] struct {
	Message    string       `json:"message"`
	ResultCode int          `json:"resultCode"`
	Result     oneOrMany[T] `json:"result"`
}

// oneOrMany decodes a JSON value that is either a single object or an array
// of objects.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = nil
		return nil
	}
	if b[0] == '[' {
		var many []T
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}
	var one T
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*o = oneOrMany[T]{one}
	return nil
}

// API is a thin wrapper over the Smartsheet endpoints the session uses.
type API struct {
	fetcher Fetcher
}

// NewAPI wraps a transport.
func NewAPI(f Fetcher) *API {
	return &API{fetcher: f}
}

func sheetPath(id int64) string {
	return "sheets/" + strconv.FormatInt(id, 10)
}

var includeFormat = url.Values{"include": {"format"}}

// ListSheets lists the sheets visible to the token (GET /sheets).
func (a *API) ListSheets(ctx context.Context, opts ListOptions) ([]SheetSummary, error) {
	q := url.Values{}
	if opts.IncludeAll {
		q.Set("includeAll", "true")
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	var resp listResponse[SheetSummary]
	if err := a.fetcher.Get(ctx, "sheets", q, &resp); err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	return resp.Data, nil
}

// GetSheet fetches a sheet with its columns, rows and cell formats
// (GET /sheets/{id}?include=format).
func (a *API) GetSheet(ctx context.Context, id int64) (*Sheet, error) {
	var sheet Sheet
	if err := a.fetcher.Get(ctx, sheetPath(id), includeFormat, &sheet); err != nil {
		return nil, fmt.Errorf("get sheet %d: %w", id, err)
	}
	return &sheet, nil
}

// CreateSheet creates a sheet in the user's Sheets folder (POST /sheets).
func (a *API) CreateSheet(ctx context.Context, sheet NewSheet) (*SheetSummary, error) {
	var resp resultResponse[SheetSummary]
	if err := a.fetcher.Post(ctx, "sheets", sheet, &resp); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", sheet.Name, err)
	}
	if len(resp.Result) == 0 {
		return nil, fmt.Errorf("create sheet %q: empty result", sheet.Name)
	}
	return &resp.Result[0], nil
}

// InsertRows adds rows to a sheet (POST /sheets/{id}/rows).
func (a *API) InsertRows(ctx context.Context, sheetID int64, rows []NewRow) ([]Row, error) {
	var resp resultResponse[Row]
	if err := a.fetcher.Post(ctx, sheetPath(sheetID)+"/rows", rows, &resp); err != nil {
		return nil, fmt.Errorf("insert rows into sheet %d: %w", sheetID, err)
	}
	return resp.Result, nil
}

// InsertRow adds one row to a sheet.
func (a *API) InsertRow(ctx context.Context, sheetID int64, row NewRow) (*Row, error) {
	var resp resultResponse[Row]
	if err := a.fetcher.Post(ctx, sheetPath(sheetID)+"/rows", row, &resp); err != nil {
		return nil, fmt.Errorf("insert row into sheet %d: %w", sheetID, err)
	}
	if len(resp.Result) == 0 {
		return nil, fmt.Errorf("insert row into sheet %d: empty result", sheetID)
	}
	return &resp.Result[0], nil
}

// GetRow fetches one row with its cell formats
// (GET /sheets/{id}/rows/{rowId}?include=format).
func (a *API) GetRow(ctx context.Context, sheetID, rowID int64) (*Row, error) {
	var row Row
	path := sheetPath(sheetID) + "/rows/" + strconv.FormatInt(rowID, 10)
	if err := a.fetcher.Get(ctx, path, includeFormat, &row); err != nil {
		return nil, fmt.Errorf("get row %d of sheet %d: %w", rowID, sheetID, err)
	}
	return &row, nil
}

// UpdateRows updates existing rows, each identified by NewRow.ID
// (PUT /sheets/{id}/rows).
func (a *API) UpdateRows(ctx context.Context, sheetID int64, rows []NewRow) ([]Row, error) {
	var resp resultResponse[Row]
	if err := a.fetcher.Put(ctx, sheetPath(sheetID)+"/rows", rows, includeFormat, &resp); err != nil {
		return nil, fmt.Errorf("update rows of sheet %d: %w", sheetID, err)
	}
	return resp.Result, nil
}

// UpdateRow updates one existing row.
func (a *API) UpdateRow(ctx context.Context, sheetID int64, row NewRow) (*Row, error) {
	var resp resultResponse[Row]
	if err := a.fetcher.Put(ctx, sheetPath(sheetID)+"/rows", row, includeFormat, &resp); err != nil {
		return nil, fmt.Errorf("update row %d of sheet %d: %w", row.ID, sheetID, err)
	}
	if len(resp.Result) == 0 {
		return nil, fmt.Errorf("update row %d of sheet %d: empty result", row.ID, sheetID)
	}
	return &resp.Result[0], nil
}
