// Package catalog provides schema metadata implementations for the
// foreign-key join verifier.
//
// A Schema holds tables, their columns' nullability, and views that rename
// columns of an underlying relation. A Resolver binds a query's relation
// references to schema objects and implements fkjoin.Catalog, resolving
// columns through any number of stacked views down to the base table.
//
// Schemas can be defined directly, loaded from YAML fixtures (ParseYAML,
// LoadYAML), kept fresh from a file on disk (Watch), or introspected from a
// live database (the sqlcatalog subpackage).
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/syssam/fkjoin"
	"github.com/syssam/fkjoin/jointree"
)

// Sentinel errors for catalog lookups. Lookup failures are fatal to the
// verification consulting them.
var (
	// ErrUnknownRelation is returned when a relation reference or name has
	// no schema object.
	ErrUnknownRelation = errors.New("catalog: unknown relation")

	// ErrUnknownColumn is returned when a relation has no such column.
	ErrUnknownColumn = errors.New("catalog: unknown column")

	// ErrViewDepth is returned when column resolution walks through more
	// stacked views than maxViewDepth allows. A chain that deep is only
	// reachable through a view definition cycle.
	ErrViewDepth = errors.New("catalog: view resolution too deep")
)

// maxViewDepth bounds column resolution through stacked views.
const maxViewDepth = 64

// Column describes a single table column.
type Column struct {
	Name     string
	Nullable bool
}

// Table describes a base table. Column order is preserved for diagnostics
// and round-tripping; lookups go through the Schema.
type Table struct {
	Name    string
	Columns []Column
}

// column returns the named column, or nil.
func (t *Table) column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// View presents the columns of an underlying relation, optionally renamed.
// Of may name a table or another view; views stack. A nil Columns map passes
// column names through unchanged.
type View struct {
	Name string
	// Of is the underlying relation.
	Of string
	// Columns maps view column name to underlying column name.
	Columns map[string]string
}

// Schema is an immutable snapshot of the relations the verifier may consult.
// Each snapshot carries a unique identity so reloads can be told apart in
// logs.
type Schema struct {
	id     string
	tables map[string]*Table
	views  map[string]*View
}

// New returns an empty schema snapshot.
func New() *Schema {
	return &Schema{
		id:     uuid.NewString(),
		tables: make(map[string]*Table),
		views:  make(map[string]*View),
	}
}

// ID returns the snapshot identity assigned at construction.
func (s *Schema) ID() string {
	return s.id
}

// AddTable registers a table, replacing any previous definition of the same
// name.
func (s *Schema) AddTable(t Table) {
	s.tables[t.Name] = &t
}

// AddView registers a view, replacing any previous definition of the same
// name.
func (s *Schema) AddView(v View) {
	s.views[v.Name] = &v
}

// Table returns the named table.
func (s *Schema) Table(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// View returns the named view.
func (s *Schema) View(name string) (*View, bool) {
	v, ok := s.views[name]
	return v, ok
}

// Tables returns the number of tables in the snapshot.
func (s *Schema) Tables() int {
	return len(s.tables)
}

// Bind associates a query's relation references with schema relation names
// and returns a Resolver for them. Bindings are per query: the same table
// may be referenced several times under distinct RelIDs.
func (s *Schema) Bind(rels map[jointree.RelID]string) *Resolver {
	bound := make(map[jointree.RelID]string, len(rels))
	for id, name := range rels {
		bound[id] = name
	}
	return &Resolver{schema: s, rels: bound}
}

// Resolver implements fkjoin.Catalog over a Schema snapshot and a per-query
// relation binding.
type Resolver struct {
	schema *Schema
	rels   map[jointree.RelID]string
}

// ResolveColumn implements fkjoin.Catalog. It follows view indirection down
// to the base table, applying each view's column renaming along the way.
func (r *Resolver) ResolveColumn(rel jointree.RelID, column string) (fkjoin.BaseColumn, error) {
	name, ok := r.rels[rel]
	if !ok {
		return fkjoin.BaseColumn{}, fmt.Errorf("%w: relation reference %d is not bound", ErrUnknownRelation, rel)
	}
	col := column
	for depth := 0; ; depth++ {
		if depth > maxViewDepth {
			return fkjoin.BaseColumn{}, fmt.Errorf("%w: resolving %s.%s", ErrViewDepth, name, column)
		}
		if v, ok := r.schema.views[name]; ok {
			if v.Columns != nil {
				mapped, ok := v.Columns[col]
				if !ok {
					return fkjoin.BaseColumn{}, fmt.Errorf("%w: view %q has no column %q", ErrUnknownColumn, name, col)
				}
				col = mapped
			}
			name = v.Of
			continue
		}
		t, ok := r.schema.tables[name]
		if !ok {
			return fkjoin.BaseColumn{}, fmt.Errorf("%w: %q", ErrUnknownRelation, name)
		}
		if t.column(col) == nil {
			return fkjoin.BaseColumn{}, fmt.Errorf("%w: table %q has no column %q", ErrUnknownColumn, t.Name, col)
		}
		return fkjoin.BaseColumn{Table: name, Column: col}, nil
	}
}

// NotNull implements fkjoin.Catalog.
func (r *Resolver) NotNull(col fkjoin.BaseColumn) (bool, error) {
	t, ok := r.schema.tables[col.Table]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRelation, col.Table)
	}
	c := t.column(col.Column)
	if c == nil {
		return false, fmt.Errorf("%w: table %q has no column %q", ErrUnknownColumn, col.Table, col.Column)
	}
	return !c.Nullable, nil
}

var _ fkjoin.Catalog = (*Resolver)(nil)
