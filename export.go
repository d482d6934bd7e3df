package smartsheet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the snapshot's rows as an XLSX workbook: one header row of
// column titles in schema order, then one row per sheet row with each cell's
// format translated into a spreadsheet style.
func (s *PreparedSheet) ExportXLSX(w io.Writer) error {
	rows, err := s.Rows()
	if err != nil {
		return err
	}
	return WriteXLSX(w, s.sheet.Name, s.schema, rows)
}

// WriteXLSX writes decoded rows as an XLSX workbook with a single worksheet.
func WriteXLSX(w io.Writer, sheetName string, schema *Schema, rows []*PreparedRow) error {
	f := excelize.NewFile()
	defer f.Close()

	name := xlsxSheetName(sheetName)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("rename worksheet: %w", err)
	}

	ex := &xlsxExporter{f: f, sheet: name, styles: make(map[xlsxStyleKey]int)}
	if err := ex.writeHeader(schema); err != nil {
		return err
	}
	for i, r := range rows {
		if err := ex.writeRow(i+2, schema, r); err != nil {
			return fmt.Errorf("export row %d: %w", r.ID, err)
		}
	}
	if err := ex.fitColumns(schema); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type xlsxStyleKey struct {
	format Format
	date   bool
}

type xlsxExporter struct {
	f      *excelize.File
	sheet  string
	styles map[xlsxStyleKey]int
	widths []int
}

func (ex *xlsxExporter) writeHeader(schema *Schema) error {
	style, err := ex.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	ex.widths = make([]int, schema.Len())
	for i, def := range schema.Columns() {
		ref, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := ex.f.SetCellStr(ex.sheet, ref, def.Title); err != nil {
			return err
		}
		if err := ex.f.SetCellStyle(ex.sheet, ref, ref, style); err != nil {
			return err
		}
		ex.widths[i] = len(def.Title)
	}
	return nil
}

func (ex *xlsxExporter) writeRow(rowNum int, schema *Schema, r *PreparedRow) error {
	for i, def := range schema.Columns() {
		ref, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}

		v := xlsxValue(r.Values[def.Key])
		if v != nil {
			if err := ex.f.SetCellValue(ex.sheet, ref, v); err != nil {
				return fmt.Errorf("set %s: %w", ref, err)
			}
			if n := len(fmt.Sprint(v)); n > ex.widths[i] {
				ex.widths[i] = n
			}
		}
		if link, ok := r.Links[def.Key]; ok && link.URL != "" {
			if err := ex.f.SetCellHyperLink(ex.sheet, ref, link.URL, "External"); err != nil {
				return fmt.Errorf("set hyperlink %s: %w", ref, err)
			}
		}

		// Unformatted cells render with their column's declared default.
		format := def.defaultFormat()
		if cf := r.Formats[def.Key]; cf != nil && !cf.IsDefault() {
			format = cf.Format
		}
		_, isDate := v.(time.Time)
		if format.IsDefault() && !isDate {
			continue
		}
		style, err := ex.style(xlsxStyleKey{format: format, date: isDate})
		if err != nil {
			return err
		}
		if err := ex.f.SetCellStyle(ex.sheet, ref, ref, style); err != nil {
			return err
		}
	}
	return nil
}

func (ex *xlsxExporter) style(key xlsxStyleKey) (int, error) {
	if id, ok := ex.styles[key]; ok {
		return id, nil
	}
	id, err := ex.f.NewStyle(xlsxStyle(key.format, key.date))
	if err != nil {
		return 0, fmt.Errorf("create style for format %q: %w", key.format.String(), err)
	}
	ex.styles[key] = id
	return id, nil
}

func (ex *xlsxExporter) fitColumns(schema *Schema) error {
	for i := range schema.Columns() {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(min(max(ex.widths[i], 8), 60)) + 2
		if err := ex.f.SetColWidth(ex.sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// xlsxStyle translates a cell format into a spreadsheet style.
func xlsxStyle(f Format, date bool) *excelize.Style {
	st := &excelize.Style{
		Font: &excelize.Font{
			Family: f.FontFamily.String(),
			Size:   float64(f.FontSize.Points()),
			Bold:   f.Bold,
			Italic: f.Italic,
			Strike: f.Strikethrough,
			Color:  f.TextColor.Hex(),
		},
	}
	if f.Underline {
		st.Font.Underline = "single"
	}
	if hex := f.BackgroundColor.Hex(); hex != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}}
	}

	align := &excelize.Alignment{WrapText: f.TextWrap}
	switch f.HorizontalAlign {
	case HorizontalAlignLeft:
		align.Horizontal = "left"
	case HorizontalAlignCenter:
		align.Horizontal = "center"
	case HorizontalAlignRight:
		align.Horizontal = "right"
	}
	switch f.VerticalAlign {
	case VerticalAlignTop:
		align.Vertical = "top"
	case VerticalAlignMiddle:
		align.Vertical = "center"
	case VerticalAlignBottom:
		align.Vertical = "bottom"
	}
	if *align != (excelize.Alignment{}) {
		st.Alignment = align
	}

	if date {
		nf := xlsxDateFormats[0]
		if int(f.DateFormat) >= 0 && int(f.DateFormat) < len(xlsxDateFormats) {
			nf = xlsxDateFormats[f.DateFormat]
		}
		st.CustomNumFmt = &nf
	} else if nf := xlsxNumberFormat(f); nf != "" {
		st.CustomNumFmt = &nf
	}
	return st
}

// xlsxNumberFormat builds a number format code from the numeric fields of a
// cell format, or "" when they are all at their defaults.
func xlsxNumberFormat(f Format) string {
	if f.NumberFormat == NumberFormatNone && f.DecimalCount == 0 && !f.ThousandsSeparator && f.Currency == CurrencyNone {
		return ""
	}
	code := "0"
	if f.ThousandsSeparator {
		code = "#,##0"
	}
	if f.DecimalCount > 0 {
		code += "." + strings.Repeat("0", f.DecimalCount)
	}
	switch {
	case f.NumberFormat == NumberFormatPercent:
		code += "%"
	case f.NumberFormat == NumberFormatCurrency || f.Currency != CurrencyNone:
		if sym := f.Currency.Symbol(); sym != "" {
			code = `"` + sym + `"` + code
		}
	}
	return code
}

// xlsxValue converts a decoded value to something excelize can write.
func xlsxValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return strings.Join(t, ", ")
	}
	return v
}

// xlsxSheetName makes a service sheet name acceptable as a worksheet name.
func xlsxSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}
