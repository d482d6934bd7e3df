package smartsheet

import (
	"context"
	"fmt"
	"sync"
)

// PreparedSheet is a sheet whose columns have been reconciled with a schema.
// It holds the sheet snapshot taken when it was loaded; reload to pick up
// remote column changes. Reads are safe for concurrent use.
type PreparedSheet struct {
	api     *API
	sheet   *Sheet
	schema  *Schema
	mapping *ColumnMapping
	tc      *transcoder

	filters sync.Map // expression → compiled *vm.Program
}

// Sheet returns the snapshot taken when the sheet was loaded.
func (s *PreparedSheet) Sheet() *Sheet {
	return s.sheet
}

// Schema returns the schema the sheet was reconciled with.
func (s *PreparedSheet) Schema() *Schema {
	return s.schema
}

// Columns returns the live columns of the snapshot.
func (s *PreparedSheet) Columns() []Column {
	return s.sheet.Columns
}

// Mapping returns the column id ↔ schema key mapping.
func (s *PreparedSheet) Mapping() *ColumnMapping {
	return s.mapping
}

// Rows decodes every row of the snapshot.
func (s *PreparedSheet) Rows() ([]*PreparedRow, error) {
	rows := make([]*PreparedRow, 0, len(s.sheet.Rows))
	for _, row := range s.sheet.Rows {
		pr, err := s.decode(row)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.sheet.Name, err)
		}
		rows = append(rows, pr)
	}
	return rows, nil
}

// Row fetches one row from the service.
func (s *PreparedSheet) Row(ctx context.Context, id int64) (*PreparedRow, error) {
	row, err := s.api.GetRow(ctx, s.sheet.ID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("row %d of sheet %q: %w", id, s.sheet.Name, ErrRowNotFound)
		}
		return nil, err
	}
	if row.ID == 0 {
		return nil, fmt.Errorf("row %d of sheet %q: %w", id, s.sheet.Name, ErrRowNotFound)
	}
	return s.decode(*row)
}

// InsertRow adds a row at the bottom of the sheet. Keys missing from values
// leave their cells empty; keys not in the schema are ignored.
func (s *PreparedSheet) InsertRow(ctx context.Context, values Values) (*PreparedRow, error) {
	return s.InsertFormattedRow(ctx, values, nil)
}

// InsertFormattedRow is InsertRow with explicit per-key cell formats.
func (s *PreparedSheet) InsertFormattedRow(ctx context.Context, values Values, formats map[string]Format) (*PreparedRow, error) {
	cells, err := s.tc.encode(values, formats, EncodeOptions{})
	if err != nil {
		return nil, err
	}
	row, err := s.api.InsertRow(ctx, s.sheet.ID, NewRow{ToBottom: true, Cells: cells})
	if err != nil {
		return nil, err
	}
	return s.decode(*row)
}

// InsertRows adds several rows in one call. Every row is encoded before the
// call; one invalid row fails the whole batch and nothing is written.
func (s *PreparedSheet) InsertRows(ctx context.Context, values []Values) ([]*PreparedRow, error) {
	payload := make([]NewRow, 0, len(values))
	for i, v := range values {
		cells, err := s.tc.encode(v, nil, EncodeOptions{})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		payload = append(payload, NewRow{ToBottom: true, Cells: cells})
	}
	rows, err := s.api.InsertRows(ctx, s.sheet.ID, payload)
	if err != nil {
		return nil, err
	}
	return s.decodeAll(rows)
}

// UpdateRows writes back several rows in one call, each with its full mapped
// field and format set. The rows are refreshed from the response.
func (s *PreparedSheet) UpdateRows(ctx context.Context, rows ...*PreparedRow) error {
	if len(rows) == 0 {
		return nil
	}
	payload := make([]NewRow, 0, len(rows))
	for _, r := range rows {
		if r.sheet != s {
			return fmt.Errorf("update row %d: %w", r.ID, ErrForeignRow)
		}
		nr, err := s.updatePayload(r)
		if err != nil {
			return err
		}
		payload = append(payload, nr)
	}
	updated, err := s.api.UpdateRows(ctx, s.sheet.ID, payload)
	if err != nil {
		return err
	}

	byID := make(map[int64]Row, len(updated))
	for _, row := range updated {
		byID[row.ID] = row
	}
	for _, r := range rows {
		row, ok := byID[r.ID]
		if !ok {
			continue
		}
		if err := s.refresh(r, row); err != nil {
			return err
		}
	}
	return nil
}

// Update writes every mapped field and its current format back to the
// service, overwriting remote changes made since the row was read. The row
// is refreshed from the response.
func (r *PreparedRow) Update(ctx context.Context) error {
	if r.sheet == nil {
		return fmt.Errorf("update row %d: %w", r.ID, ErrForeignRow)
	}
	s := r.sheet
	nr, err := s.updatePayload(r)
	if err != nil {
		return err
	}
	row, err := s.api.UpdateRow(ctx, s.sheet.ID, nr)
	if err != nil {
		return err
	}
	return s.refresh(r, *row)
}

func (s *PreparedSheet) updatePayload(r *PreparedRow) (NewRow, error) {
	cells, err := s.tc.encode(r.writeValues(s.tc), r.formatRecords(), EncodeOptions{ExplicitDefaultFormat: true})
	if err != nil {
		return NewRow{}, fmt.Errorf("update row %d: %w", r.ID, err)
	}
	return NewRow{ID: r.ID, Cells: cells}, nil
}

func (s *PreparedSheet) refresh(r *PreparedRow, row Row) error {
	fresh, err := s.decode(row)
	if err != nil {
		return err
	}
	r.RowNumber = fresh.RowNumber
	r.Values = fresh.Values
	r.Formats = fresh.Formats
	r.Links = fresh.Links
	r.Formulas = fresh.Formulas
	r.computed = fresh.computed
	return nil
}

func (s *PreparedSheet) decode(row Row) (*PreparedRow, error) {
	pr, err := s.tc.decode(row)
	if err != nil {
		return nil, err
	}
	pr.sheet = s
	return pr, nil
}

func (s *PreparedSheet) decodeAll(rows []Row) ([]*PreparedRow, error) {
	out := make([]*PreparedRow, 0, len(rows))
	for _, row := range rows {
		pr, err := s.decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, nil
}
