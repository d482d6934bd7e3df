package smartsheet

import (
	"fmt"
	"strconv"
	"strings"
)

// formatFieldCount is the number of positional fields in a cell format string.
const formatFieldCount = 17

// defaultFormatString is the format descriptor the service implies when a cell
// carries no format. Position 1 (font size) defaults to index 2 (10pt).
const defaultFormatString = ",2,,,,,,,,,,,,,,,"

// defaultFormatFields holds the per-position fallback used when decoding an
// empty field.
var defaultFormatFields = func() []string {
	fields := strings.Split(defaultFormatString, ",")
	if len(fields) != formatFieldCount {
		panic(fmt.Sprintf("smartsheet: default format string has %d fields, want %d", len(fields), formatFieldCount))
	}
	for i, f := range fields {
		if f == "" {
			fields[i] = "0"
		}
	}
	return fields
}()

// Format is the decoded form of a cell format descriptor.
//
// The zero value is the all-defaults record, so a Format literal naming only
// the fields of interest (Format{Bold: true}) is a complete record.
type Format struct {
	FontFamily         FontFamily      `json:"fontFamily" yaml:"fontFamily"`
	FontSize           FontSize        `json:"fontSize" yaml:"fontSize"`
	Bold               bool            `json:"bold" yaml:"bold"`
	Italic             bool            `json:"italic" yaml:"italic"`
	Underline          bool            `json:"underline" yaml:"underline"`
	Strikethrough      bool            `json:"strikethrough" yaml:"strikethrough"`
	HorizontalAlign    HorizontalAlign `json:"horizontalAlign" yaml:"horizontalAlign"`
	VerticalAlign      VerticalAlign   `json:"verticalAlign" yaml:"verticalAlign"`
	TextColor          Color           `json:"textColor" yaml:"textColor"`
	BackgroundColor    Color           `json:"backgroundColor" yaml:"backgroundColor"`
	TaskbarColor       Color           `json:"taskbarColor" yaml:"taskbarColor"`
	Currency           Currency        `json:"currency" yaml:"currency"`
	DecimalCount       int             `json:"decimalCount" yaml:"decimalCount"`
	ThousandsSeparator bool            `json:"thousandsSeparator" yaml:"thousandsSeparator"`
	NumberFormat       NumberFormat    `json:"numberFormat" yaml:"numberFormat"`
	TextWrap           bool            `json:"textWrap" yaml:"textWrap"`
	DateFormat         DateFormat      `json:"dateFormat" yaml:"dateFormat"`
}

// DefaultFormat returns the all-defaults format record.
func DefaultFormat() Format {
	return Format{}
}

// ParseFormat decodes a cell format descriptor. A descriptor that does not
// have exactly 17 fields decodes to the default record. Empty fields and
// values outside a field's enumeration take that field's default.
func ParseFormat(s string) Format {
	fields := strings.Split(s, ",")
	if len(fields) != formatFieldCount {
		fields = defaultFormatFields
	}
	v := make([]string, formatFieldCount)
	for i, f := range fields {
		if f == "" {
			f = defaultFormatFields[i]
		}
		v[i] = f
	}

	var f Format
	f.FontFamily = FontFamily(enumIndex(v[0], len(fontFamilyNames), 0))
	f.FontSize = FontSize(enumIndex(v[1], len(fontSizeNames), int(FontSize10)+fontSizeOffset) - fontSizeOffset)
	f.Bold = v[2] == "1"
	f.Italic = v[3] == "1"
	f.Underline = v[4] == "1"
	f.Strikethrough = v[5] == "1"
	f.HorizontalAlign = HorizontalAlign(enumIndex(v[6], len(horizontalAlignNames), 0))
	f.VerticalAlign = VerticalAlign(enumIndex(v[7], len(verticalAlignNames), 0))
	f.TextColor = Color(enumIndex(v[8], len(colorTable), 0))
	f.BackgroundColor = Color(enumIndex(v[9], len(colorTable), 0))
	f.TaskbarColor = Color(enumIndex(v[10], len(colorTable), 0))
	f.Currency = Currency(enumIndex(v[11], len(currencyCodes), 0))
	if n, err := strconv.Atoi(v[12]); err == nil {
		f.DecimalCount = n
	}
	f.ThousandsSeparator = v[13] == "1"
	f.NumberFormat = NumberFormat(enumIndex(v[14], len(numberFormatNames), 0))
	f.TextWrap = v[15] == "1"
	f.DateFormat = DateFormat(enumIndex(v[16], len(dateFormatNames), 0))
	return f
}

// enumIndex parses a wire index, returning def when it is not a valid
// position in an enumeration of size n.
func enumIndex(s string, n, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 || i >= n {
		return def
	}
	return i
}

// String encodes the record as a 17-field descriptor. Fields equal to their
// default encode as the empty string.
func (f Format) String() string {
	fields := [formatFieldCount]string{
		encodeIndex(int(f.FontFamily), 0),
		encodeIndex(int(f.FontSize)+fontSizeOffset, int(FontSize10)+fontSizeOffset),
		encodeBool(f.Bold),
		encodeBool(f.Italic),
		encodeBool(f.Underline),
		encodeBool(f.Strikethrough),
		encodeIndex(int(f.HorizontalAlign), 0),
		encodeIndex(int(f.VerticalAlign), 0),
		encodeIndex(int(f.TextColor), 0),
		encodeIndex(int(f.BackgroundColor), 0),
		encodeIndex(int(f.TaskbarColor), 0),
		encodeIndex(int(f.Currency), 0),
		encodeIndex(f.DecimalCount, 0),
		encodeBool(f.ThousandsSeparator),
		encodeIndex(int(f.NumberFormat), 0),
		encodeBool(f.TextWrap),
		encodeIndex(int(f.DateFormat), 0),
	}
	return strings.Join(fields[:], ",")
}

func encodeIndex(v, def int) string {
	if v == def {
		return ""
	}
	return strconv.Itoa(v)
}

func encodeBool(b bool) string {
	if !b {
		return ""
	}
	return "1"
}

// IsDefault reports whether every field holds its default.
func (f Format) IsDefault() bool {
	return f == Format{}
}

// Normalize round-trips the record through the wire encoding, replacing any
// out-of-range enumeration value with its default.
func (f Format) Normalize() Format {
	return ParseFormat(f.String())
}

// CellFormat is a row cell's format together with the default format its
// column declares in the schema.
type CellFormat struct {
	Format
	columnDefault Format
}

// ApplyDefaultFormat resets the cell to the default format declared for its
// column (or the global default when the column declares none).
func (c *CellFormat) ApplyDefaultFormat() {
	c.Format = c.columnDefault
}

// ColumnDefault returns the default format declared for the cell's column.
func (c *CellFormat) ColumnDefault() Format {
	return c.columnDefault
}
