package smartsheet

import (
	"fmt"
	"sort"

	"go.alis.build/utils/sets"
)

// ColumnMapping is the resolved correspondence between remote column ids and
// schema keys for one prepared sheet. It is immutable once built.
type ColumnMapping struct {
	keyByID map[int64]string
	idByKey map[string]int64
}

func newColumnMapping() *ColumnMapping {
	return &ColumnMapping{
		keyByID: make(map[int64]string),
		idByKey: make(map[string]int64),
	}
}

func (m *ColumnMapping) add(id int64, key string) {
	m.keyByID[id] = key
	m.idByKey[key] = id
}

// Key returns the schema key mapped to a remote column id.
func (m *ColumnMapping) Key(columnID int64) (string, bool) {
	k, ok := m.keyByID[columnID]
	return k, ok
}

// ColumnID returns the remote column id mapped to a schema key.
func (m *ColumnMapping) ColumnID(key string) (int64, bool) {
	id, ok := m.idByKey[key]
	return id, ok
}

// Len returns the number of mapped columns.
func (m *ColumnMapping) Len() int {
	return len(m.keyByID)
}

// Keys returns the mapped schema keys, sorted.
func (m *ColumnMapping) Keys() []string {
	keys := make([]string, 0, len(m.idByKey))
	for k := range m.idByKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reconcile matches live columns to schema entries by title and verifies type
// and option-set compatibility.
//
// A live column with no schema entry is skipped unless strict is set, in
// which case it fails with ErrMissingSchemaEntry. Strict mode also fails
// when a schema entry matches no live column.
func Reconcile(columns []Column, schema *Schema, strict bool) (*ColumnMapping, error) {
	mapping, issues := reconcile(columns, schema, strict)
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return nil, issue.Err
		}
	}
	return mapping, nil
}

// reconcile walks live columns in order and records every finding. Errors are
// returned in the order a fail-fast reconciliation would hit them.
func reconcile(columns []Column, schema *Schema, strict bool) (*ColumnMapping, []ValidationIssue) {
	mapping := newColumnMapping()
	var issues []ValidationIssue

	for _, col := range columns {
		def, ok := schema.ColumnByTitle(col.Title)
		if !ok {
			if strict {
				issues = append(issues, errorIssue(col.Title, "", &ReconcileError{Title: col.Title, Err: ErrMissingSchemaEntry}))
			} else {
				issues = append(issues, ValidationIssue{
					Severity: SeverityWarning,
					Title:    col.Title,
					Message:  "remote column has no schema entry and is ignored",
				})
			}
			continue
		}

		if col.Type != def.Type {
			issues = append(issues, errorIssue(col.Title, def.Key, &ReconcileError{
				Title:    col.Title,
				Expected: fmt.Sprintf("%q", def.Type),
				Actual:   fmt.Sprintf("%q", col.Type),
				Err:      ErrTypeMismatch,
			}))
			continue
		}

		if def.Type.RequiresOptions() && !sameOptions(def.Options, col.Options) {
			issues = append(issues, errorIssue(col.Title, def.Key, &ReconcileError{
				Title:    col.Title,
				Expected: quoteList(def.Options),
				Actual:   quoteList(col.Options),
				Err:      ErrOptionsMismatch,
			}))
			continue
		}

		mapping.add(col.ID, def.Key)
	}

	for _, def := range schema.defs {
		if _, ok := mapping.ColumnID(def.Key); ok {
			continue
		}
		if hasIssueFor(issues, def.Title) {
			continue
		}
		if strict {
			issues = append(issues, errorIssue(def.Title, def.Key, &ReconcileError{Title: def.Title, Err: ErrMissingRemoteColumn}))
		} else {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Title:    def.Title,
				Key:      def.Key,
				Message:  "schema column has no remote column; its values are never read or written",
			})
		}
	}
	return mapping, issues
}

func errorIssue(title, key string, err error) ValidationIssue {
	return ValidationIssue{Severity: SeverityError, Title: title, Key: key, Message: err.Error(), Err: err}
}

func hasIssueFor(issues []ValidationIssue, title string) bool {
	for _, i := range issues {
		if i.Title == title {
			return true
		}
	}
	return false
}

// sameOptions reports set equality, ignoring order. A missing remote option
// list never matches.
func sameOptions(declared, remote []string) bool {
	if remote == nil {
		return false
	}
	a := sets.NewSet(declared...)
	b := sets.NewSet(remote...)
	if a.Len() != b.Len() {
		return false
	}
	for _, v := range a.Values() {
		if !b.Contains(v) {
			return false
		}
	}
	return true
}
