package smartsheet

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func projectSchema() *Schema {
	return NewSchema(
		DefineColumn("id_field", "Project ID #", TextNumber, Primary()),
		DefineColumn("status", "Status", Picklist, WithOptions("Active", "Inactive")),
	)
}

func projectColumns() []Column {
	return []Column{
		{ID: 10, Index: 0, Title: "Project ID #", Type: TextNumber, Primary: true},
		{ID: 11, Index: 1, Title: "Status", Type: Picklist, Options: []string{"Active", "Inactive"}},
	}
}

func projectSheet() *Sheet {
	return &Sheet{
		ID:        100,
		Name:      "Projects",
		Permalink: "https://app.smartsheet.com/sheets/abc",
		Columns:   projectColumns(),
		Rows: []Row{
			{ID: 1, RowNumber: 1, Cells: []Cell{{ColumnID: 10, Value: "P1"}, {ColumnID: 11, Value: "Active"}}},
		},
	}
}

func taskSchema() *Schema {
	return NewSchema(
		DefineColumn("name", "Name", TextNumber, Primary()),
		DefineColumn("done", "Done", Checkbox),
		DefineColumn("owner", "Owner", ContactList),
		DefineColumn("due", "Due", Date),
		DefineColumn("effort", "Effort", Duration),
		DefineColumn("tags", "Tags", MultiPicklist, WithOptions("a", "b", "c")),
		DefineColumn("cost", "Cost", TextNumber, WithDefaultFormat(Format{Currency: CurrencyUSD, DecimalCount: 2})),
		DefineColumn("seq", "Seq", TextNumber, WithSystemColumnType(AutoNumber)),
	)
}

func taskColumns() []Column {
	return []Column{
		{ID: 1, Title: "Name", Type: TextNumber, Primary: true},
		{ID: 2, Title: "Done", Type: Checkbox},
		{ID: 3, Title: "Owner", Type: ContactList},
		{ID: 4, Title: "Due", Type: Date},
		{ID: 5, Title: "Effort", Type: Duration},
		{ID: 6, Title: "Tags", Type: MultiPicklist, Options: []string{"c", "b", "a"}},
		{ID: 7, Title: "Cost", Type: TextNumber},
		{ID: 8, Title: "Seq", Type: TextNumber, SystemColumnType: AutoNumber},
	}
}

func mustReconcile(t *testing.T, columns []Column, schema *Schema) *ColumnMapping {
	t.Helper()
	m, err := Reconcile(columns, schema, false)
	require.NoError(t, err)
	return m
}

// call is a request seen by fakeFetcher.
type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   json.RawMessage
}

// fakeFetcher is an in-memory Smartsheet. Responses go through JSON so the
// client decodes them exactly as it would real ones.
type fakeFetcher struct {
	mu     sync.Mutex
	sheets []*Sheet
	nextID int64
	calls  []call
	err    error // returned by every call when set
}

func newFakeFetcher(sheets ...*Sheet) *fakeFetcher {
	return &fakeFetcher{sheets: sheets, nextID: 1000}
}

func (f *fakeFetcher) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeFetcher) sheet(id int64) *Sheet {
	for _, s := range f.sheets {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (f *fakeFetcher) callsTo(method string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeFetcher) record(method, path string, query url.Values, body any) (json.RawMessage, error) {
	var raw json.RawMessage
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	f.calls = append(f.calls, call{Method: method, Path: path, Query: query, Body: raw})
	return raw, f.err
}

func respond(v any, out any) error {
	if out == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func pathIDs(path string) []int64 {
	var ids []int64
	for _, part := range strings.Split(path, "/") {
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func notFound() error {
	return &APIError{StatusCode: 404, ErrorCode: 1006, Message: "Not Found"}
}

func (f *fakeFetcher) Get(ctx context.Context, path string, query url.Values, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.record("GET", path, query, nil); err != nil {
		return err
	}

	ids := pathIDs(path)
	switch {
	case path == "sheets":
		data := make([]SheetSummary, 0, len(f.sheets))
		for _, s := range f.sheets {
			data = append(data, SheetSummary{ID: s.ID, Name: s.Name, Permalink: s.Permalink})
		}
		return respond(map[string]any{"pageNumber": 1, "totalCount": len(data), "data": data}, out)
	case len(ids) == 1:
		s := f.sheet(ids[0])
		if s == nil {
			return notFound()
		}
		return respond(s, out)
	case len(ids) == 2:
		s := f.sheet(ids[0])
		if s == nil {
			return notFound()
		}
		for _, r := range s.Rows {
			if r.ID == ids[1] {
				return respond(r, out)
			}
		}
		return notFound()
	}
	return notFound()
}

func (f *fakeFetcher) Post(ctx context.Context, path string, body, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := f.record("POST", path, nil, body)
	if err != nil {
		return err
	}

	if path == "sheets" {
		var ns NewSheet
		if err := json.Unmarshal(raw, &ns); err != nil {
			return err
		}
		s := &Sheet{ID: f.id(), Name: ns.Name, Permalink: "https://app.smartsheet.com/sheets/" + ns.Name}
		for i, c := range ns.Columns {
			s.Columns = append(s.Columns, Column{
				ID: f.id(), Index: i, Title: c.Title, Type: c.Type, Primary: c.Primary,
				Options: c.Options, SystemColumnType: c.SystemColumnType, Format: c.Format,
			})
		}
		f.sheets = append(f.sheets, s)
		return respond(map[string]any{"message": "SUCCESS", "resultCode": 0,
			"result": SheetSummary{ID: s.ID, Name: s.Name, Permalink: s.Permalink}}, out)
	}

	s := f.sheet(pathIDs(path)[0])
	if s == nil {
		return notFound()
	}
	var rows oneOrMany[NewRow]
	if err := json.Unmarshal(raw, &rows); err != nil {
		return err
	}
	var created []Row
	for _, nr := range rows {
		row := Row{ID: f.id(), SheetID: s.ID, RowNumber: len(s.Rows) + 1}
		for _, c := range nr.Cells {
			row.Cells = append(row.Cells, Cell{ColumnID: c.ColumnID, Value: c.Value, Formula: c.Formula, Format: c.Format})
		}
		s.Rows = append(s.Rows, row)
		created = append(created, row)
	}
	return respond(resultOf(raw, created), out)
}

func (f *fakeFetcher) Put(ctx context.Context, path string, body any, query url.Values, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := f.record("PUT", path, query, body)
	if err != nil {
		return err
	}

	s := f.sheet(pathIDs(path)[0])
	if s == nil {
		return notFound()
	}
	var rows oneOrMany[NewRow]
	if err := json.Unmarshal(raw, &rows); err != nil {
		return err
	}
	var updated []Row
	for _, nr := range rows {
		i := -1
		for j := range s.Rows {
			if s.Rows[j].ID == nr.ID {
				i = j
			}
		}
		if i < 0 {
			return notFound()
		}
		row := &s.Rows[i]
		for _, c := range nr.Cells {
			cell := Cell{ColumnID: c.ColumnID, Value: c.Value, Formula: c.Formula, Format: c.Format}
			replaced := false
			for k := range row.Cells {
				if row.Cells[k].ColumnID == c.ColumnID {
					if cell.Formula != "" {
						cell.Value = row.Cells[k].Value
					}
					row.Cells[k] = cell
					replaced = true
				}
			}
			if !replaced {
				row.Cells = append(row.Cells, cell)
			}
		}
		updated = append(updated, *row)
	}
	return respond(resultOf(raw, updated), out)
}

// resultOf wraps rows the way the service does: a single object for a
// single-object request, an array otherwise.
func resultOf(request json.RawMessage, rows []Row) map[string]any {
	resp := map[string]any{"message": "SUCCESS", "resultCode": 0}
	if len(request) > 0 && request[0] == '[' {
		resp["result"] = rows
	} else if len(rows) > 0 {
		resp["result"] = rows[0]
	}
	return resp
}

func newTestClient(t *testing.T, f Fetcher) *Client {
	t.Helper()
	c, err := New("test-token", WithFetcher(f))
	require.NoError(t, err)
	return c
}
