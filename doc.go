// Package fkjoin verifies foreign-key join constructs at analysis time.
//
// A foreign-key join is a join shorthand whose condition and cardinality are
// implied by a declared foreign-key relationship instead of being spelled out
// by the query author. The shorthand is only sound if it can never silently
// change results compared to the equivalent explicit join — in particular, it
// must never drop rows the explicit join would have kept.
//
// Verify is the single entry point. It builds a directed graph with one node
// per participating relation reference and one edge per foreign-key join
// operator, proves the graph is an arborescence rooted at the designated
// trunk relation, and then walks the tree propagating a "might be absent"
// flag: every edge whose referenced row can be absent must be backed by a
// join operator that structurally preserves the referencing-side row.
//
//	err := fkjoin.Verify(tree, trunk, cat)
//	switch {
//	case fkjoin.IsIntegrity(err):
//	    // relations do not form a tree rooted at the trunk
//	case fkjoin.IsUnsupported(err):
//	    // the construct would filter rows, or the tree shape is unsupported
//	case fkjoin.IsSchema(err):
//	    // catalog metadata is missing or inconsistent
//	}
//
// Column nullability is read through the Catalog interface; the catalog
// package provides implementations backed by in-memory definitions, YAML
// fixtures, and live databases.
//
// Verification is synchronous and self-contained: each call builds its own
// graph, runs to completion, and shares nothing across calls.
package fkjoin
