package smartsheet

import "fmt"

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Loading the sheet will fail
	SeverityWarning                 // Loading succeeds but some data is not mapped
)

// ValidationIssue is a single finding from checking a schema against live columns.
type ValidationIssue struct {
	Severity Severity
	Title    string // column title
	Key      string // schema key, empty for unmatched remote columns
	Message  string
	Err      error // set for error-severity issues
}

// String formats the issue as `[ERROR] "Status": message` or `[WARN] ...`.
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %q: %s", sev, v.Title, v.Message)
}

// Check reports every difference between the schema and the live columns
// instead of stopping at the first one. A non-nil error means the schema
// itself is invalid and nothing was compared.
//
// Issues with SeverityError are exactly the ones that make Reconcile (and so
// loading the sheet) fail under the same strict setting.
func Check(columns []Column, schema *Schema, strict bool) ([]ValidationIssue, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	_, issues := reconcile(columns, schema, strict)
	return issues, nil
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []ValidationIssue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
