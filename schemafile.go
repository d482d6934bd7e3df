package smartsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// schemaFile is the YAML layout of a schema definition:
//
//	columns:
//	  - key: id
//	    title: "Project ID #"
//	    type: TEXT_NUMBER
//	    primary: true
//	  - key: status
//	    title: Status
//	    type: PICKLIST
//	    options: [Active, Inactive]
//	    defaultFormat: {bold: true, backgroundColor: YELLOW_LIGHT}
type schemaFile struct {
	Columns []columnFile `yaml:"columns"`
}

type columnFile struct {
	Key              string            `yaml:"key"`
	Title            string            `yaml:"title"`
	Type             string            `yaml:"type"`
	Primary          bool              `yaml:"primary"`
	Options          []string          `yaml:"options"`
	SystemColumnType string            `yaml:"systemColumnType"`
	Symbol           string            `yaml:"symbol"`
	Validation       bool              `yaml:"validation"`
	AutoNumberFormat *AutoNumberFormat `yaml:"autoNumberFormat"`
	// DefaultFormat is either a mapping of Format fields or a raw
	// 17-field format string.
	DefaultFormat yaml.Node `yaml:"defaultFormat"`
}

// LoadSchemaFile reads and validates a YAML schema definition.
func LoadSchemaFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return s, nil
}

// ParseSchema decodes and validates a YAML schema definition. Unknown fields
// are rejected.
func ParseSchema(data []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file schemaFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	defs := make([]ColumnDefinition, 0, len(file.Columns))
	for i, c := range file.Columns {
		def, err := c.definition()
		if err != nil {
			return nil, fmt.Errorf("column %d (%s): %w", i, c.Key, err)
		}
		defs = append(defs, def)
	}

	s := NewSchema(defs...)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (c columnFile) definition() (ColumnDefinition, error) {
	def := ColumnDefinition{
		Key:              c.Key,
		Title:            c.Title,
		Type:             ColumnType(strings.ToUpper(c.Type)),
		SystemType:       SystemColumnType(strings.ToUpper(c.SystemColumnType)),
		Primary:          c.Primary,
		Options:          c.Options,
		Symbol:           Symbol(strings.ToUpper(c.Symbol)),
		Validation:       c.Validation,
		AutoNumberFormat: c.AutoNumberFormat,
	}
	if !def.Type.Valid() {
		return def, &SchemaError{Key: c.Key, Message: fmt.Sprintf("unknown column type %q", c.Type)}
	}

	switch c.DefaultFormat.Kind {
	case 0:
	case yaml.ScalarNode:
		f := ParseFormat(c.DefaultFormat.Value)
		def.DefaultFormat = &f
	case yaml.MappingNode:
		var f Format
		if err := c.DefaultFormat.Decode(&f); err != nil {
			return def, fmt.Errorf("defaultFormat: %w", err)
		}
		def.DefaultFormat = &f
	default:
		return def, fmt.Errorf("defaultFormat: expected a mapping or a format string at line %d", c.DefaultFormat.Line)
	}
	return def, nil
}
