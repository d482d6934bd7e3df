package smartsheet

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ValueValidator checks a cell value against a declared value shape.
//
// Parse returns the value normalized to its canonical Go type (float64 for
// numbers, []string for lists, time.Time for dates) or a descriptive error.
// Every validator accepts nil: cells are optional.
type ValueValidator interface {
	Parse(v any) (any, error)
	String() string
}

type valueValidator struct {
	desc  string
	parse func(v any) (any, error)
}

func (v valueValidator) Parse(x any) (any, error) {
	if x == nil {
		return nil, nil
	}
	return v.parse(x)
}

func (v valueValidator) String() string { return v.desc }

var textValue = valueValidator{desc: "string", parse: func(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}}

var numberValue = valueValidator{desc: "number", parse: func(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32:
		return rv.Float(), nil
	}
	return nil, fmt.Errorf("expected number, got %T", v)
}}

var boolValue = valueValidator{desc: "boolean", parse: func(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("expected boolean, got %T", v)
	}
	return b, nil
}}

// dateLayouts are the layouts the service uses for DATE and DATETIME values.
var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"}

var dateValue = valueValidator{desc: "date", parse: func(v any) (any, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("expected date, got unparsable string %q", d)
	}
	return nil, fmt.Errorf("expected date, got %T", v)
}}

// anyOf accepts a value matching any of the given validators, trying them in order.
func anyOf(vs ...ValueValidator) ValueValidator {
	descs := make([]string, len(vs))
	for i, v := range vs {
		descs[i] = v.String()
	}
	return valueValidator{desc: strings.Join(descs, " or "), parse: func(x any) (any, error) {
		for _, v := range vs {
			if out, err := v.Parse(x); err == nil {
				return out, nil
			}
		}
		return nil, fmt.Errorf("expected %s, got %T", strings.Join(descs, " or "), x)
	}}
}

// oneOf accepts exactly one of the given literal strings.
func oneOf(options []string) ValueValidator {
	set := make(map[string]struct{}, len(options))
	for _, o := range options {
		set[o] = struct{}{}
	}
	desc := "one of " + quoteList(options)
	return valueValidator{desc: desc, parse: func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected %s, got %T", desc, v)
		}
		if _, ok := set[s]; !ok {
			return nil, fmt.Errorf("expected %s, got %q", desc, s)
		}
		return s, nil
	}}
}

// stringList accepts a list whose elements all satisfy elem. A lone string
// is read as a one-element list.
func stringList(elem ValueValidator) ValueValidator {
	desc := "list of " + elem.String()
	return valueValidator{desc: desc, parse: func(v any) (any, error) {
		if s, ok := v.(string); ok {
			v = []string{s}
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return nil, fmt.Errorf("expected %s, got %T", desc, v)
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i).Interface()
			if item == nil {
				return nil, fmt.Errorf("element %d: expected %s, got nil", i, elem)
			}
			parsed, err := elem.Parse(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			s, ok := parsed.(string)
			if !ok {
				return nil, fmt.Errorf("element %d: expected string, got %T", i, parsed)
			}
			out = append(out, s)
		}
		return out, nil
	}}
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// ValidatorFor returns the value validator for a column definition. Choice
// list types thread the declared options into the validator. Declaring
// options on any other type, or omitting them on a choice type, is a schema
// error.
func ValidatorFor(def ColumnDefinition) (ValueValidator, error) {
	if def.Type.RequiresOptions() {
		if len(def.Options) == 0 {
			return nil, &SchemaError{Key: def.Key, Message: fmt.Sprintf("column type %s requires a non-empty options list", def.Type)}
		}
	} else if def.Options != nil {
		return nil, &SchemaError{Key: def.Key, Message: fmt.Sprintf("column type %s does not take options", def.Type)}
	}

	switch def.Type {
	case AbstractDateTime, Predecessor:
		return textValue, nil
	case Checkbox:
		return boolValue, nil
	case ContactList, MultiContactList:
		return stringList(textValue), nil
	case Date, DateTime:
		return dateValue, nil
	case Duration:
		return numberValue, nil
	case Picklist:
		return oneOf(def.Options), nil
	case MultiPicklist:
		return stringList(oneOf(def.Options)), nil
	case TextNumber:
		return anyOf(textValue, numberValue), nil
	}
	return nil, &SchemaError{Key: def.Key, Message: fmt.Sprintf("unknown column type %q", def.Type)}
}

// wireValue converts a validated value to its JSON wire form.
func wireValue(t ColumnType, v any) any {
	d, ok := v.(time.Time)
	if !ok {
		return v
	}
	if t == Date {
		return d.Format("2006-01-02")
	}
	return d.Format(time.RFC3339)
}
