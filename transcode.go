package smartsheet

import (
	"fmt"
	"reflect"
)

// Values is a schema-keyed row object: schema key → cell value.
type Values map[string]any

// PreparedRow is a decoded, schema-keyed row. Changes to Values and Formats
// stay local until Update is called.
type PreparedRow struct {
	ID        int64
	RowNumber int
	Values    Values
	Formats   map[string]*CellFormat
	Links     map[string]Hyperlink // cells that carry a hyperlink, read-only

	// Formulas holds the formula of each formula cell as read. Update keeps
	// the formula while the key's value is unchanged; delete the entry or
	// change the value to overwrite it.
	Formulas map[string]Formula

	sheet    *PreparedSheet
	computed Values // values of formula cells as read
}

// Get returns the value stored for a schema key.
func (r *PreparedRow) Get(key string) any {
	return r.Values[key]
}

// Set stores a value for a schema key. The value is checked on Update.
func (r *PreparedRow) Set(key string, v any) {
	if r.Values == nil {
		r.Values = make(Values)
	}
	r.Values[key] = v
}

// Format returns the cell format for a schema key.
func (r *PreparedRow) Format(key string) *CellFormat {
	return r.Formats[key]
}

// formatRecords returns a copy of the row's formats as plain records.
func (r *PreparedRow) formatRecords() map[string]Format {
	out := make(map[string]Format, len(r.Formats))
	for k, f := range r.Formats {
		if f != nil {
			out[k] = f.Format
		}
	}
	return out
}

// writeValues returns the values an update sends: every mapped key, with
// formula cells whose value is unchanged written back as their formula.
func (r *PreparedRow) writeValues(t *transcoder) Values {
	values := t.fullValues(r.Values)
	for key, f := range r.Formulas {
		v, ok := values[key]
		if !ok {
			continue
		}
		if _, isFormula := v.(Formula); isFormula {
			continue
		}
		if reflect.DeepEqual(v, r.computed[key]) {
			values[key] = f
		}
	}
	return values
}

// transcoder converts between wire rows and schema-keyed values for one
// schema and column mapping.
type transcoder struct {
	schema     *Schema
	mapping    *ColumnMapping
	validators map[string]ValueValidator
}

func newTranscoder(schema *Schema, mapping *ColumnMapping) (*transcoder, error) {
	validators, err := schema.validators()
	if err != nil {
		return nil, err
	}
	return &transcoder{schema: schema, mapping: mapping, validators: validators}, nil
}

// DecodeRow converts a wire row into a prepared row. Cells of unmapped
// columns are dropped. A value that no longer satisfies its column type
// fails with ErrDataIntegrity.
func DecodeRow(row Row, schema *Schema, mapping *ColumnMapping) (*PreparedRow, error) {
	t, err := newTranscoder(schema, mapping)
	if err != nil {
		return nil, err
	}
	return t.decode(row)
}

func (t *transcoder) decode(row Row) (*PreparedRow, error) {
	pr := &PreparedRow{
		ID:        row.ID,
		RowNumber: row.RowNumber,
		Values:    make(Values, t.mapping.Len()),
		Formats:   make(map[string]*CellFormat, t.schema.Len()),
	}
	for _, key := range t.mapping.Keys() {
		pr.Values[key] = nil
	}

	for _, cell := range row.Cells {
		key, ok := t.mapping.Key(cell.ColumnID)
		if !ok {
			continue
		}
		def, _ := t.schema.Column(key)
		v, err := t.validators[key].Parse(cell.Value)
		if err != nil {
			return nil, &ValueError{
				Key:   key,
				Title: def.Title,
				Value: cell.Value,
				Err:   fmt.Errorf("row %d: %w: %v", row.ID, ErrDataIntegrity, err),
			}
		}
		pr.Values[key] = v
		pr.Formats[key] = &CellFormat{Format: ParseFormat(cell.Format), columnDefault: def.defaultFormat()}
		if cell.Formula != "" {
			if pr.Formulas == nil {
				pr.Formulas = make(map[string]Formula)
				pr.computed = make(Values)
			}
			pr.Formulas[key] = Formula(cell.Formula)
			pr.computed[key] = v
		}
		if cell.Hyperlink != nil {
			if pr.Links == nil {
				pr.Links = make(map[string]Hyperlink)
			}
			pr.Links[key] = *cell.Hyperlink
		}
	}

	for _, def := range t.schema.defs {
		if _, ok := pr.Formats[def.Key]; !ok {
			pr.Formats[def.Key] = &CellFormat{columnDefault: def.defaultFormat()}
		}
	}
	return pr, nil
}

// EncodeOptions controls how EncodeCells writes formats.
type EncodeOptions struct {
	// ExplicitDefaultFormat writes the full descriptor even when the resolved
	// format is the all-defaults record. Updates need it so that resetting a
	// cell to the default format reaches the service; inserts leave it off.
	ExplicitDefaultFormat bool
}

// EncodeCells converts schema-keyed values into a wire cell list, in schema
// order. Keys that are not declared, not mapped to a live column, or belong
// to read-only system columns are skipped. The first invalid value aborts the
// whole encode with ErrInvalidValue and no cells.
//
// A cell's format is the explicit entry in formats, else the column's
// declared default format, else the global default.
func EncodeCells(values Values, formats map[string]Format, schema *Schema, mapping *ColumnMapping, opts EncodeOptions) ([]NewCell, error) {
	t, err := newTranscoder(schema, mapping)
	if err != nil {
		return nil, err
	}
	return t.encode(values, formats, opts)
}

func (t *transcoder) encode(values Values, formats map[string]Format, opts EncodeOptions) ([]NewCell, error) {
	cells := make([]NewCell, 0, len(values))
	for _, def := range t.schema.defs {
		v, present := values[def.Key]
		if !present {
			continue
		}

		var cell NewCell
		if f, ok := v.(Formula); ok {
			cell.Formula = string(f)
		} else {
			parsed, err := t.validators[def.Key].Parse(v)
			if err != nil {
				return nil, &ValueError{
					Key:   def.Key,
					Title: def.Title,
					Value: v,
					Err:   fmt.Errorf("%w: %v", ErrInvalidValue, err),
				}
			}
			cell.Value = wireValue(def.Type, parsed)
		}

		id, mapped := t.mapping.ColumnID(def.Key)
		if !mapped || def.ReadOnly() {
			continue
		}
		cell.ColumnID = id

		format, ok := formats[def.Key]
		if !ok {
			format = def.defaultFormat()
		}
		if opts.ExplicitDefaultFormat || !format.IsDefault() {
			cell.Format = format.String()
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

// fullValues returns the row's values for every mapped key, with nil for keys
// the row does not hold. Updates always send this full set.
func (t *transcoder) fullValues(values Values) Values {
	full := make(Values, t.mapping.Len())
	for _, key := range t.mapping.Keys() {
		full[key] = values[key]
	}
	return full
}
