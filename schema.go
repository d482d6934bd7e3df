package smartsheet

import "fmt"

// ColumnDefinition is the local declaration of one field of a schema.
type ColumnDefinition struct {
	Key              string // local key used in Values and Formats
	Title            string // remote column title, matched exactly
	Type             ColumnType
	SystemType       SystemColumnType
	Primary          bool
	Options          []string // required for (and only for) choice list types
	DefaultFormat    *Format
	AutoNumberFormat *AutoNumberFormat
	Symbol           Symbol
	Validation       bool
}

// ColumnOption configures a ColumnDefinition.
type ColumnOption func(*ColumnDefinition)

// DefineColumn declares a schema column.
func DefineColumn(key, title string, t ColumnType, opts ...ColumnOption) ColumnDefinition {
	def := ColumnDefinition{Key: key, Title: title, Type: t}
	for _, opt := range opts {
		opt(&def)
	}
	return def
}

// Primary marks the column as the sheet's primary column.
func Primary() ColumnOption {
	return func(d *ColumnDefinition) { d.Primary = true }
}

// WithOptions sets the ordered option set of a PICKLIST or MULTI_PICKLIST column.
func WithOptions(options ...string) ColumnOption {
	return func(d *ColumnDefinition) { d.Options = append([]string{}, options...) }
}

// WithDefaultFormat sets the format applied to the column's cells when no
// explicit format is given.
func WithDefaultFormat(f Format) ColumnOption {
	return func(d *ColumnDefinition) { d.DefaultFormat = &f }
}

// WithSystemColumnType makes the column a read-only system column.
func WithSystemColumnType(t SystemColumnType) ColumnOption {
	return func(d *ColumnDefinition) { d.SystemType = t }
}

// WithAutoNumberFormat configures an AUTO_NUMBER column.
func WithAutoNumberFormat(f AutoNumberFormat) ColumnOption {
	return func(d *ColumnDefinition) { d.AutoNumberFormat = &f }
}

// WithSymbol sets the display symbol of a picklist column.
func WithSymbol(s Symbol) ColumnOption {
	return func(d *ColumnDefinition) { d.Symbol = s }
}

// WithValidation restricts the remote column to its declared options.
func WithValidation() ColumnOption {
	return func(d *ColumnDefinition) { d.Validation = true }
}

// defaultFormat returns the declared default format, or the global default.
func (d ColumnDefinition) defaultFormat() Format {
	if d.DefaultFormat != nil {
		return *d.DefaultFormat
	}
	return DefaultFormat()
}

// ReadOnly reports whether the service maintains the column's values.
func (d ColumnDefinition) ReadOnly() bool {
	return d.SystemType != ""
}

// Schema is an ordered set of column definitions keyed by local key.
// Definition order drives column creation order.
type Schema struct {
	defs  []ColumnDefinition
	index map[string]int
}

// NewSchema builds a schema from column definitions. Problems such as
// duplicate keys are reported by Validate.
func NewSchema(defs ...ColumnDefinition) *Schema {
	s := &Schema{
		defs:  make([]ColumnDefinition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if _, dup := s.index[d.Key]; !dup {
			s.index[d.Key] = len(s.defs)
		}
		s.defs = append(s.defs, d)
	}
	return s
}

// Columns returns the definitions in declaration order.
func (s *Schema) Columns() []ColumnDefinition {
	return append([]ColumnDefinition(nil), s.defs...)
}

// Keys returns the schema keys in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.defs))
	for i, d := range s.defs {
		keys[i] = d.Key
	}
	return keys
}

// Column returns the definition for a key.
func (s *Schema) Column(key string) (ColumnDefinition, bool) {
	i, ok := s.index[key]
	if !ok {
		return ColumnDefinition{}, false
	}
	return s.defs[i], true
}

// ColumnByTitle returns the definition whose title equals title.
func (s *Schema) ColumnByTitle(title string) (ColumnDefinition, bool) {
	for _, d := range s.defs {
		if d.Title == title {
			return d, true
		}
	}
	return ColumnDefinition{}, false
}

// Len returns the number of definitions.
func (s *Schema) Len() int {
	return len(s.defs)
}

// Validate checks the schema before any remote interaction: exactly one
// primary column, unique non-empty keys and titles, and options declared on
// (and only on) choice list types.
func (s *Schema) Validate() error {
	primaries := 0
	for _, d := range s.defs {
		if d.Primary {
			primaries++
		}
	}
	if primaries != 1 {
		return &SchemaError{Message: fmt.Sprintf("schema must have exactly one primary column, but got %d", primaries)}
	}

	keys := make(map[string]bool, len(s.defs))
	titles := make(map[string]bool, len(s.defs))
	for _, d := range s.defs {
		if d.Key == "" {
			return &SchemaError{Message: fmt.Sprintf("column %q has an empty key", d.Title)}
		}
		if keys[d.Key] {
			return &SchemaError{Key: d.Key, Message: "duplicate key"}
		}
		keys[d.Key] = true
		if d.Title == "" {
			return &SchemaError{Key: d.Key, Message: "empty title"}
		}
		if titles[d.Title] {
			return &SchemaError{Key: d.Key, Message: fmt.Sprintf("duplicate title %q", d.Title)}
		}
		titles[d.Title] = true
		if _, err := ValidatorFor(d); err != nil {
			return err
		}
	}
	return nil
}

// validators builds the per-key value validators. The schema must be valid.
func (s *Schema) validators() (map[string]ValueValidator, error) {
	out := make(map[string]ValueValidator, len(s.defs))
	for _, d := range s.defs {
		v, err := ValidatorFor(d)
		if err != nil {
			return nil, err
		}
		out[d.Key] = v
	}
	return out, nil
}

// NewColumnsFromSchema builds the creation payload for a sheet whose columns
// match the schema exactly, in schema order.
func NewColumnsFromSchema(s *Schema) []NewColumn {
	cols := make([]NewColumn, 0, len(s.defs))
	for _, d := range s.defs {
		c := NewColumn{
			Title:            d.Title,
			Type:             d.Type,
			SystemColumnType: d.SystemType,
			Primary:          d.Primary,
			Options:          d.Options,
			Symbol:           d.Symbol,
			Validation:       d.Validation,
			AutoNumberFormat: d.AutoNumberFormat,
		}
		if d.DefaultFormat != nil && !d.DefaultFormat.IsDefault() {
			c.Format = d.DefaultFormat.String()
		}
		cols = append(cols, c)
	}
	return cols
}
