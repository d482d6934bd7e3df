package smartsheet

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadProjects(t *testing.T, f *fakeFetcher, opts ...LoadOption) *PreparedSheet {
	t.Helper()
	ps, err := newTestClient(t, f).LoadSheet(context.Background(), "Projects", projectSchema(), opts...)
	require.NoError(t, err)
	return ps
}

func TestNew_MissingToken(t *testing.T) {
	f := newFakeFetcher()
	_, err := New("", WithFetcher(f))
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Empty(t, f.calls)
}

func TestLoadSheet_InvalidSchemaFailsBeforeNetwork(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	schema := NewSchema(DefineColumn("a", "A", TextNumber))
	_, err := newTestClient(t, f).LoadSheet(context.Background(), "Projects", schema)
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.Empty(t, f.calls)
}

func TestLoadSheet_Rows(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	ps := loadProjects(t, f)

	assert.Equal(t, "Projects", ps.Sheet().Name)
	assert.Len(t, ps.Columns(), 2)
	assert.Equal(t, 2, ps.Mapping().Len())

	rows, err := ps.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, Values{"id_field": "P1", "status": "Active"}, rows[0].Values)
	assert.True(t, rows[0].Format("status").IsDefault())

	gets := f.callsTo("GET")
	require.Len(t, gets, 2)
	assert.Equal(t, "true", gets[0].Query.Get("includeAll"))
	assert.Equal(t, "sheets/100", gets[1].Path)
	assert.Equal(t, "format", gets[1].Query.Get("include"))
}

func TestLoadSheet_NotFound(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	_, err := newTestClient(t, f).LoadSheet(context.Background(), "Budget", projectSchema())
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.Empty(t, f.callsTo("POST"))
}

func TestLoadSheet_CreateIfNotExist(t *testing.T) {
	f := newFakeFetcher()
	ps, err := newTestClient(t, f).LoadSheet(context.Background(), "Tasks", taskSchema(), CreateIfNotExist(), Strict())
	require.NoError(t, err)

	posts := f.callsTo("POST")
	require.Len(t, posts, 1)
	assert.Equal(t, "sheets", posts[0].Path)

	var created NewSheet
	require.NoError(t, json.Unmarshal(posts[0].Body, &created))
	assert.Equal(t, "Tasks", created.Name)
	require.Len(t, created.Columns, 8)
	assert.Equal(t, "Name", created.Columns[0].Title)
	assert.True(t, created.Columns[0].Primary)

	assert.Equal(t, taskSchema().Len(), ps.Mapping().Len())
	rows, err := ps.Rows()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadSheet_OptionsMismatch(t *testing.T) {
	sheet := projectSheet()
	sheet.Columns[1].Options = []string{"Active", "Inactive", "Archived"}
	f := newFakeFetcher(sheet)

	_, err := newTestClient(t, f).LoadSheet(context.Background(), "Projects", projectSchema())
	assert.ErrorIs(t, err, ErrOptionsMismatch)
}

func TestLoadSheet_Strict(t *testing.T) {
	sheet := projectSheet()
	sheet.Columns = append(sheet.Columns, Column{ID: 12, Title: "Notes", Type: TextNumber})
	f := newFakeFetcher(sheet)
	c := newTestClient(t, f)

	_, err := c.LoadSheet(context.Background(), "Projects", projectSchema())
	require.NoError(t, err)

	_, err = c.LoadSheet(context.Background(), "Projects", projectSchema(), Strict())
	assert.ErrorIs(t, err, ErrMissingSchemaEntry)
}

func TestLoadSheetByPermalink(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	c := newTestClient(t, f)

	ps, err := c.LoadSheetByPermalink(context.Background(), "https://app.smartsheet.com/sheets/abc", projectSchema())
	require.NoError(t, err)
	assert.Equal(t, int64(100), ps.Sheet().ID)

	_, err = c.LoadSheetByPermalink(context.Background(), "https://app.smartsheet.com/sheets/zzz", projectSchema(), CreateIfNotExist())
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.Empty(t, f.callsTo("POST"))
}

func TestLoadSheetByID(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	c := newTestClient(t, f)

	ps, err := c.LoadSheetByID(context.Background(), 100, projectSchema())
	require.NoError(t, err)
	assert.Equal(t, "Projects", ps.Sheet().Name)

	_, err = c.LoadSheetByID(context.Background(), 404, projectSchema())
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestLoadSheet_TransportErrorPassesThrough(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	f.err = &APIError{StatusCode: 401, ErrorCode: 1002, Message: "Your Access Token is invalid."}

	_, err := newTestClient(t, f).LoadSheet(context.Background(), "Projects", projectSchema())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestPreparedSheet_InsertRow(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	ps := loadProjects(t, f)

	row, err := ps.InsertRow(context.Background(), Values{"id_field": "P2", "status": "Inactive", "unknown": 1})
	require.NoError(t, err)
	assert.Equal(t, "P2", row.Get("id_field"))
	assert.Equal(t, "Inactive", row.Get("status"))
	assert.NotZero(t, row.ID)

	posts := f.callsTo("POST")
	require.Len(t, posts, 1)
	assert.Equal(t, "sheets/100/rows", posts[0].Path)
	assert.JSONEq(t,
		`{"toBottom":true,"cells":[{"columnId":10,"value":"P2"},{"columnId":11,"value":"Inactive"}]}`,
		string(posts[0].Body))
}

func TestPreparedSheet_InsertRowInvalidValueSendsNothing(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	ps := loadProjects(t, f)

	_, err := ps.InsertRow(context.Background(), Values{"id_field": "P2", "status": "Archived"})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Empty(t, f.callsTo("POST"))
}

func TestPreparedSheet_InsertFormattedRow(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	ps := loadProjects(t, f)

	row, err := ps.InsertFormattedRow(context.Background(),
		Values{"id_field": "P3"},
		map[string]Format{"id_field": {Bold: true, TextColor: ColorRedDark}})
	require.NoError(t, err)
	assert.True(t, row.Format("id_field").Bold)
	assert.Equal(t, ColorRedDark, row.Format("id_field").TextColor)
	assert.True(t, row.Format("status").IsDefault())
}

func TestPreparedSheet_InsertRowsIsAllOrNothing(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	ps := loadProjects(t, f)

	_, err := ps.InsertRows(context.Background(), []Values{
		{"id_field": "P4", "status": "Active"},
		{"id_field": "P5", "status": "Nope"},
	})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Empty(t, f.callsTo("POST"))

	rows, err := ps.InsertRows(context.Background(), []Values{
		{"id_field": "P4", "status": "Active"},
		{"id_field": "P5"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "P5", rows[1].Get("id_field"))
	assert.Nil(t, rows[1].Get("status"))

	posts := f.callsTo("POST")
	require.Len(t, posts, 1)
	assert.Equal(t, byte('['), posts[0].Body[0])
}

func TestPreparedSheet_Row(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	ps := loadProjects(t, f)

	row, err := ps.Row(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "P1", row.Get("id_field"))

	_, err = ps.Row(context.Background(), 77)
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestPreparedRow_UpdateSendsFullRow(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	ps := loadProjects(t, f)

	rows, err := ps.Rows()
	require.NoError(t, err)
	row := rows[0]

	row.Set("status", "Inactive")
	row.Format("status").Italic = true
	require.NoError(t, row.Update(context.Background()))

	puts := f.callsTo("PUT")
	require.Len(t, puts, 1)
	assert.Equal(t, "sheets/100/rows", puts[0].Path)

	var sent NewRow
	require.NoError(t, json.Unmarshal(puts[0].Body, &sent))
	assert.Equal(t, int64(1), sent.ID)
	require.Len(t, sent.Cells, 2)
	assert.Equal(t, int64(10), sent.Cells[0].ColumnID)
	assert.Equal(t, "P1", sent.Cells[0].Value)
	assert.Equal(t, ",,,,,,,,,,,,,,,,", sent.Cells[0].Format)
	assert.Equal(t, "Inactive", sent.Cells[1].Value)
	assert.Equal(t, Format{Italic: true}.String(), sent.Cells[1].Format)

	assert.Equal(t, "Inactive", row.Get("status"))
	assert.True(t, row.Format("status").Italic)
}

func TestPreparedRow_UpdateResetsFormatToColumnDefault(t *testing.T) {
	sheet := projectSheet()
	sheet.Rows[0].Cells[1].Format = ",,1,,,,,,,,,,,,,,"
	f := newFakeFetcher(sheet)
	ps := loadProjects(t, f)

	rows, err := ps.Rows()
	require.NoError(t, err)
	row := rows[0]
	require.True(t, row.Format("status").Bold)

	row.Format("status").ApplyDefaultFormat()
	require.NoError(t, row.Update(context.Background()))
	assert.False(t, row.Format("status").Bold)
}

func TestPreparedRow_UpdateInvalidValue(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	ps := loadProjects(t, f)

	rows, err := ps.Rows()
	require.NoError(t, err)
	rows[0].Set("status", 3)
	assert.ErrorIs(t, rows[0].Update(context.Background()), ErrInvalidValue)
	assert.Empty(t, f.callsTo("PUT"))
}

func TestPreparedRow_UpdateDetached(t *testing.T) {
	schema := projectSchema()
	pr, err := DecodeRow(Row{ID: 1}, schema, mustReconcile(t, projectColumns(), schema))
	require.NoError(t, err)
	assert.ErrorIs(t, pr.Update(context.Background()), ErrForeignRow)
}

func formulaSheet() *Sheet {
	sheet := projectSheet()
	sheet.Rows[0].Cells[1].Formula = `=IF([Project ID #]1 = "P1", "Active", "Inactive")`
	return sheet
}

func TestPreparedRow_UpdateKeepsFormula(t *testing.T) {
	f := newFakeFetcher(formulaSheet())
	ps := loadProjects(t, f)

	rows, err := ps.Rows()
	require.NoError(t, err)
	row := rows[0]
	assert.Equal(t, "Active", row.Get("status"))
	assert.Equal(t, Formula(`=IF([Project ID #]1 = "P1", "Active", "Inactive")`), row.Formulas["status"])

	row.Set("id_field", "P1")
	require.NoError(t, row.Update(context.Background()))

	puts := f.callsTo("PUT")
	require.Len(t, puts, 1)
	assert.JSONEq(t, `{"id":1,"cells":[
		{"columnId":10,"value":"P1","format":",,,,,,,,,,,,,,,,"},
		{"columnId":11,"formula":"=IF([Project ID #]1 = \"P1\", \"Active\", \"Inactive\")","format":",,,,,,,,,,,,,,,,"}
	]}`, string(puts[0].Body))

	assert.Equal(t, "Active", row.Get("status"))
	assert.Contains(t, row.Formulas, "status")
}

func TestPreparedRow_UpdateOverwritesChangedFormulaCell(t *testing.T) {
	f := newFakeFetcher(formulaSheet())
	ps := loadProjects(t, f)

	rows, err := ps.Rows()
	require.NoError(t, err)
	rows[0].Set("status", "Inactive")
	require.NoError(t, rows[0].Update(context.Background()))

	puts := f.callsTo("PUT")
	require.Len(t, puts, 1)
	var sent NewRow
	require.NoError(t, json.Unmarshal(puts[0].Body, &sent))
	require.Len(t, sent.Cells, 2)
	assert.Equal(t, "Inactive", sent.Cells[1].Value)
	assert.Empty(t, sent.Cells[1].Formula)
	assert.Empty(t, rows[0].Formulas)
}

func TestPreparedSheet_UpdateRowsRejectsForeignRows(t *testing.T) {
	f := newFakeFetcher(projectSheet())
	ps := loadProjects(t, f)
	other := loadProjects(t, f)

	rows, err := other.Rows()
	require.NoError(t, err)
	err = ps.UpdateRows(context.Background(), rows...)
	assert.ErrorIs(t, err, ErrForeignRow)
	assert.Empty(t, f.callsTo("PUT"))
}

func TestPreparedSheet_UpdateRows(t *testing.T) {
	sheet := projectSheet()
	sheet.Rows = append(sheet.Rows, Row{ID: 2, RowNumber: 2, Cells: []Cell{{ColumnID: 10, Value: "P2"}}})
	f := newFakeFetcher(sheet)
	ps := loadProjects(t, f)

	rows, err := ps.Rows()
	require.NoError(t, err)
	for _, r := range rows {
		r.Set("status", "Inactive")
	}
	require.NoError(t, ps.UpdateRows(context.Background(), rows...))

	puts := f.callsTo("PUT")
	require.Len(t, puts, 1)
	var sent []NewRow
	require.NoError(t, json.Unmarshal(puts[0].Body, &sent))
	require.Len(t, sent, 2)
	assert.Len(t, sent[1].Cells, 2)

	again, err := ps.Row(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Inactive", again.Get("status"))
}

func TestPreparedSheet_RowsDataIntegrity(t *testing.T) {
	sheet := projectSheet()
	sheet.Rows[0].Cells[1].Value = "Deleted"
	f := newFakeFetcher(sheet)
	ps := loadProjects(t, f)

	_, err := ps.Rows()
	assert.True(t, errors.Is(err, ErrDataIntegrity))
}
