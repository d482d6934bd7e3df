package smartsheet

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
	"go.alis.build/alog"
)

// Row metadata names available to Where expressions next to the schema keys.
const (
	filterRowID     = "_id"
	filterRowNumber = "_rowNumber"
)

// Where decodes the snapshot and returns the rows for which the expression
// evaluates to true, e.g. `status == "Active" && cost > 100`. The expression
// sees each schema key as a variable plus _id and _rowNumber. A nil result
// counts as false, and so does a row on which the expression fails while one
// of the variables it reads is an empty cell (`cost > 100` with no cost).
func (s *PreparedSheet) Where(expression string) ([]*PreparedRow, error) {
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	if expression == "" {
		return rows, nil
	}
	filter, err := s.compileFilter(expression)
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}

	var out []*PreparedRow
	for _, r := range rows {
		env := filterEnv(r)
		result, err := expr.Run(filter.program, env)
		if err != nil {
			if key, ok := filter.emptyVariable(env); ok {
				alog.Debugf(context.Background(), "smartsheet: filter %q skips row %d: %s is empty: %v", expression, r.ID, key, err)
				continue
			}
			return nil, fmt.Errorf("evaluate filter %q on row %d: %w", expression, r.ID, err)
		}
		if result == nil {
			continue
		}
		keep, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("filter %q evaluated to %T, expected bool", expression, result)
		}
		if keep {
			out = append(out, r)
		}
	}
	return out, nil
}

// compiledFilter is a compiled Where expression and the variables it reads.
type compiledFilter struct {
	program   *vm.Program
	variables []string
}

// emptyVariable returns a variable the expression reads that is nil in env.
func (c *compiledFilter) emptyVariable(env map[string]any) (string, bool) {
	for _, name := range c.variables {
		if v, ok := env[name]; !ok || v == nil {
			return name, true
		}
	}
	return "", false
}

// variableCollector records identifiers while an expression compiles.
type variableCollector struct {
	seen  map[string]bool
	names []string
}

func (c *variableCollector) Visit(node *ast.Node) {
	id, ok := (*node).(*ast.IdentifierNode)
	if !ok || c.seen[id.Value] {
		return
	}
	c.seen[id.Value] = true
	c.names = append(c.names, id.Value)
}

func (s *PreparedSheet) compileFilter(expression string) (*compiledFilter, error) {
	if cached, ok := s.filters.Load(expression); ok {
		return cached.(*compiledFilter), nil
	}
	vars := &variableCollector{seen: make(map[string]bool)}
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables(), expr.Patch(vars))
	if err != nil {
		return nil, err
	}
	filter := &compiledFilter{program: program, variables: vars.names}
	s.filters.Store(expression, filter)
	return filter, nil
}

func filterEnv(r *PreparedRow) map[string]any {
	env := make(map[string]any, len(r.sheet.schema.defs)+2)
	for _, key := range r.sheet.schema.Keys() {
		env[key] = nil
	}
	for k, v := range r.Values {
		env[k] = v
	}
	env[filterRowID] = r.ID
	env[filterRowNumber] = r.RowNumber
	return env
}
