// Package jointree defines the join-tree representation consumed by the
// foreign-key join verifier.
//
// A join tree is produced by the surrounding analyzer after parsing: a Rel
// leaf for every relation reference and a Join node for every binary join.
// Joins that were written with foreign-key join syntax carry a KeySpec
// describing the declared relationship. The verifier supports exactly these
// two node shapes; anything else is rejected as unsupported.
package jointree

import "fmt"

// RelID identifies a relation reference by its position within the query.
// Two references to the same table get distinct RelIDs; the identity is the
// reference, not the table.
type RelID int

// Pos is a location in the original query text, used to attribute
// verification failures to the offending join clause.
type Pos struct {
	Line   int
	Column int
}

// IsValid reports whether p carries a real location.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// String returns the position in "line:column" form.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Kind is the join operator of a binary join node.
type Kind uint8

// Supported join kinds.
const (
	Inner Kind = iota
	Left
	Right
	Full
)

// String returns the SQL name of the join kind.
func (k Kind) String() string {
	switch k {
	case Inner:
		return "INNER"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case Full:
		return "FULL"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Node is a join-tree node. The verifier understands *Rel and *Join;
// any other implementation fails verification with an unsupported-construct
// error.
type Node interface {
	// Pos returns the node's location in the query text.
	Pos() Pos
}

// Rel is a leaf: a single relation reference.
type Rel struct {
	// ID is the reference's position within the query.
	ID RelID
	// Name is the relation name as written, kept for diagnostics.
	Name string
	// At is the reference's location in the query text.
	At Pos
}

// Pos implements Node.
func (r *Rel) Pos() Pos { return r.At }

// KeySpec is the declared foreign-key relationship carried by a join written
// with foreign-key join syntax. The referencing relation holds the key
// columns; the referenced relation is the key's target.
type KeySpec struct {
	// Referencing is the relation whose columns make up the foreign key.
	Referencing RelID
	// Referenced is the relation the key points at.
	Referenced RelID
	// Columns are the referencing-side key columns, in declaration order.
	Columns []string
	// At is the location of the key clause in the query text.
	At Pos
}

// Join is a binary join over two subtrees. Key is nil for joins written
// without foreign-key join syntax; such joins contribute no graph edge but
// their subtrees still participate.
type Join struct {
	Kind  Kind
	Left  Node
	Right Node
	Key   *KeySpec
	At    Pos
}

// Pos implements Node.
func (j *Join) Pos() Pos { return j.At }

var (
	_ Node = (*Rel)(nil)
	_ Node = (*Join)(nil)
)
