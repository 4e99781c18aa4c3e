package fkjoin

// verifySafety walks the tree from the root and rejects any edge that could
// silently filter rows. It carries a single flag per node: whether the node's
// row might be absent from the output under correct join semantics. The root
// anchors the query and is always present.
//
// Precondition: findRoot succeeded. The walk visits each edge exactly once
// with no visited-marking; that is only sound because tree-ness is already
// proven.
func (g *graph) verifySafety(root int) error {
	return g.checkSubtree(root, false)
}

func (g *graph) checkSubtree(n int, mightBeMissing bool) error {
	for _, ei := range g.nodes[n].out {
		e := &g.edges[ei]
		// The child's row can be absent if an ancestor match already
		// failed, or if any referencing key column is nullable.
		childMissing := mightBeMissing || !e.nonNullReferencing
		if childMissing && !e.outerJoinSafe {
			return &UnsupportedError{
				Message: "foreign key join would filter rows",
				At:      e.at,
			}
		}
		if err := g.checkSubtree(e.to, childMissing); err != nil {
			return err
		}
	}
	return nil
}
