package fkjoin

import "github.com/syssam/fkjoin/jointree"

// BaseColumn identifies a column of a base table, after any view or alias
// indirection has been resolved away.
type BaseColumn struct {
	Table  string
	Column string
}

// String returns the column in "table.column" form.
func (c BaseColumn) String() string {
	return c.Table + "." + c.Column
}

// Catalog supplies the schema metadata verification depends on. Lookups are
// synchronous local reads; a lookup failure is treated as fatal by the
// verifier and is never retried.
//
// The catalog package provides implementations backed by in-memory schema
// definitions, YAML fixtures, and database introspection.
type Catalog interface {
	// ResolveColumn resolves a column of the given relation reference,
	// through any number of stacked view or alias indirections, to the
	// underlying base-table column.
	ResolveColumn(rel jointree.RelID, column string) (BaseColumn, error)

	// NotNull reports whether the base column carries a NOT NULL
	// constraint at the base-table level.
	NotNull(col BaseColumn) (bool, error)
}
