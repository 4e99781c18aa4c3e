package catalog

import (
	"fmt"
	"strings"
)

// ValidationError represents a single schema consistency problem.
type ValidationError struct {
	Relation string
	Column   string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Relation, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Relation, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	if !r.HasErrors() {
		return "No issues found"
	}
	var sb strings.Builder
	sb.WriteString("Errors:\n")
	for _, e := range r.Errors {
		sb.WriteString("  - ")
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Validate checks the snapshot for internal consistency: duplicate column
// names, name collisions between tables and views, views over missing
// relations, view column mappings onto missing columns, and view definition
// cycles. A schema that fails validation can still be bound, but resolution
// against the broken parts will fail.
func (s *Schema) Validate() *ValidationResult {
	result := &ValidationResult{}

	for name, t := range s.tables {
		colNames := make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			if colNames[c.Name] {
				result.Errors = append(result.Errors, &ValidationError{
					Relation: name,
					Column:   c.Name,
					Message:  "duplicate column name",
				})
			}
			colNames[c.Name] = true
		}
	}

	for name, v := range s.views {
		if _, ok := s.tables[name]; ok {
			result.Errors = append(result.Errors, &ValidationError{
				Relation: name,
				Message:  "view name collides with a table",
			})
		}
		_, isTable := s.tables[v.Of]
		_, isView := s.views[v.Of]
		if !isTable && !isView {
			result.Errors = append(result.Errors, &ValidationError{
				Relation: name,
				Message:  fmt.Sprintf("view is defined over non-existent relation %q", v.Of),
			})
			continue
		}
		if cycleFrom(s, name) {
			result.Errors = append(result.Errors, &ValidationError{
				Relation: name,
				Message:  "view definition cycle",
			})
			continue
		}
		// Mapped columns must exist on the base table the chain lands on.
		if base := baseOf(s, v.Of); base != nil {
			for viewCol, underCol := range v.Columns {
				if resolvedColumn(s, v.Of, underCol) == nil {
					result.Errors = append(result.Errors, &ValidationError{
						Relation: name,
						Column:   viewCol,
						Message:  fmt.Sprintf("view maps onto non-existent column %q of %q", underCol, base.Name),
					})
				}
			}
		}
	}

	return result
}

// cycleFrom reports whether the view chain starting at name revisits a view.
func cycleFrom(s *Schema, name string) bool {
	seen := make(map[string]bool)
	for {
		v, ok := s.views[name]
		if !ok {
			return false
		}
		if seen[name] {
			return true
		}
		seen[name] = true
		name = v.Of
	}
}

// baseOf follows the view chain from name to its base table. It returns nil
// if the chain is broken or cyclic.
func baseOf(s *Schema, name string) *Table {
	for depth := 0; depth <= maxViewDepth; depth++ {
		if t, ok := s.tables[name]; ok {
			return t
		}
		v, ok := s.views[name]
		if !ok {
			return nil
		}
		name = v.Of
	}
	return nil
}

// resolvedColumn resolves col through the view chain starting at relation
// name and returns the base column, or nil if any hop fails.
func resolvedColumn(s *Schema, name, col string) *Column {
	for depth := 0; depth <= maxViewDepth; depth++ {
		if v, ok := s.views[name]; ok {
			if v.Columns != nil {
				mapped, ok := v.Columns[col]
				if !ok {
					return nil
				}
				col = mapped
			}
			name = v.Of
			continue
		}
		t, ok := s.tables[name]
		if !ok {
			return nil
		}
		return t.column(col)
	}
	return nil
}
