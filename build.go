package fkjoin

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/syssam/fkjoin/jointree"
)

// builder walks a join tree and populates the foreign-key join graph.
type builder struct {
	g        *graph
	cat      Catalog
	maxDepth int
	log      *zap.Logger
}

// walk processes the subtree rooted at n and returns the set of relation
// identities it contains. Children are processed before their parent join so
// that both endpoints of a key edge exist when the edge is added.
func (b *builder) walk(n jointree.Node, depth int) (map[jointree.RelID]struct{}, error) {
	if depth > b.maxDepth {
		return nil, &UnsupportedError{
			Message: fmt.Sprintf("join tree exceeds maximum nesting depth %d", b.maxDepth),
			At:      nodePos(n),
		}
	}
	switch n := n.(type) {
	case *jointree.Rel:
		b.g.getOrAddNode(n.ID)
		return map[jointree.RelID]struct{}{n.ID: {}}, nil
	case *jointree.Join:
		left, err := b.walk(n.Left, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := b.walk(n.Right, depth+1)
		if err != nil {
			return nil, err
		}
		if n.Key != nil {
			if err := b.addKeyEdge(n, left); err != nil {
				return nil, err
			}
		}
		for rel := range right {
			left[rel] = struct{}{}
		}
		return left, nil
	default:
		return nil, &UnsupportedError{
			Message: "unsupported join tree node in foreign key join",
			At:      nodePos(n),
		}
	}
}

// addKeyEdge adds the edge declared by j.Key and annotates it with the
// nullability of the referencing columns and the outer-join safety of the
// join operator. leftRels is the set of relation identities in j's left
// subtree.
func (b *builder) addKeyEdge(j *jointree.Join, leftRels map[jointree.RelID]struct{}) error {
	key := j.Key
	from := b.g.getOrAddNode(key.Referencing)
	to := b.g.getOrAddNode(key.Referenced)
	ei := b.g.addEdge(from, to)

	nonNull := true
	for _, col := range key.Columns {
		base, err := b.cat.ResolveColumn(key.Referencing, col)
		if err != nil {
			return &SchemaError{
				Rel:     key.Referencing,
				Column:  col,
				Message: "cannot resolve referencing column to a base column",
				At:      key.At,
				Cause:   err,
			}
		}
		notNull, err := b.cat.NotNull(base)
		if err != nil {
			return &SchemaError{
				Rel:     key.Referencing,
				Column:  col,
				Message: fmt.Sprintf("cannot determine nullability of %s", base),
				At:      key.At,
				Cause:   err,
			}
		}
		nonNull = nonNull && notNull
	}

	// Only a LEFT join with the referencing relation on the left, or a
	// RIGHT join with it on the right, retains every referencing-side row
	// when no referenced-side match exists.
	_, referencingIsLeft := leftRels[key.Referencing]
	safe := (j.Kind == jointree.Left && referencingIsLeft) ||
		(j.Kind == jointree.Right && !referencingIsLeft)

	e := &b.g.edges[ei]
	e.nonNullReferencing = nonNull
	e.outerJoinSafe = safe
	e.at = key.At

	b.log.Debug("added foreign key join edge",
		zap.Int("referencing", int(key.Referencing)),
		zap.Int("referenced", int(key.Referenced)),
		zap.Stringer("join", j.Kind),
		zap.Bool("non_null_referencing", nonNull),
		zap.Bool("outer_join_safe", safe),
	)
	return nil
}

// nodePos returns n's position, tolerating nil nodes from malformed trees.
func nodePos(n jointree.Node) jointree.Pos {
	if n == nil {
		return jointree.Pos{}
	}
	return n.Pos()
}
