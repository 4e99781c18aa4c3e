package fkjoin

import "github.com/syssam/fkjoin/jointree"

// graph is the foreign-key join graph for a single verification call: one
// node per distinct relation reference, one edge per foreign-key join
// operator. Nodes live in a dense slice addressed by index; adjacency is
// stored as edge-index lists. The graph is built in one pass over the join
// tree and never mutated afterwards.
type graph struct {
	nodes []graphNode
	edges []graphEdge
	// index maps a relation identity to its slot in nodes.
	index map[jointree.RelID]int
}

// graphNode is one relation reference. out and in hold indexes into
// graph.edges.
type graphNode struct {
	rel jointree.RelID
	out []int
	in  []int
}

// graphEdge is a directed edge from a referencing node to a referenced node.
// Both flags are fixed during construction.
type graphEdge struct {
	from int
	to   int
	// nonNullReferencing is true iff every referencing-side key column is
	// NOT NULL at the base-table level.
	nonNullReferencing bool
	// outerJoinSafe is true iff the join operator structurally preserves
	// the referencing-side row when no referenced-side match exists.
	outerJoinSafe bool
	at            jointree.Pos
}

func newGraph() *graph {
	return &graph{index: make(map[jointree.RelID]int)}
}

// getOrAddNode returns the node index for rel, creating the node on first
// reference.
func (g *graph) getOrAddNode(rel jointree.RelID) int {
	if i, ok := g.index[rel]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, graphNode{rel: rel})
	g.index[rel] = i
	return i
}

// addEdge creates an edge from node index from to node index to and registers
// it on both endpoints. It returns the edge index; the caller fills in the
// edge's flags.
func (g *graph) addEdge(from, to int) int {
	i := len(g.edges)
	g.edges = append(g.edges, graphEdge{from: from, to: to})
	g.nodes[from].out = append(g.nodes[from].out, i)
	g.nodes[to].in = append(g.nodes[to].in, i)
	return i
}
