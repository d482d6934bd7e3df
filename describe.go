package smartsheet

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable tree of how a sheet's columns line up
// with a schema: the mapped key of each remote column, the schema entries
// left unmatched, and every issue Check reports.
func Describe(sheet *Sheet, schema *Schema, strict bool) (string, error) {
	issues, err := Check(sheet.Columns, schema, strict)
	if err != nil {
		return "", err
	}
	mapping, _ := reconcile(sheet.Columns, schema, strict)

	var b strings.Builder
	fmt.Fprintf(&b, "Sheet: %s (id %d, %d rows)\n", sheet.Name, sheet.ID, len(sheet.Rows))

	b.WriteString("  Columns:\n")
	for _, col := range sheet.Columns {
		fmt.Fprintf(&b, "    %-24q %-18s", col.Title, col.Type)
		if key, ok := mapping.Key(col.ID); ok {
			fmt.Fprintf(&b, " -> %s", key)
		} else {
			b.WriteString(" (unmapped)")
		}
		if col.Primary {
			b.WriteString(" primary")
		}
		if len(col.Options) > 0 {
			fmt.Fprintf(&b, " options=%s", quoteList(col.Options))
		}
		b.WriteByte('\n')
	}

	var missing []string
	for _, def := range schema.defs {
		if _, ok := mapping.ColumnID(def.Key); !ok {
			missing = append(missing, fmt.Sprintf("    %s: %q %s", def.Key, def.Title, def.Type))
		}
	}
	if len(missing) > 0 {
		b.WriteString("  Unmatched schema columns:\n")
		for _, m := range missing {
			b.WriteString(m)
			b.WriteByte('\n')
		}
	}

	if len(issues) > 0 {
		b.WriteString("  Issues:\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "    %s\n", issue)
		}
	}
	return b.String(), nil
}
