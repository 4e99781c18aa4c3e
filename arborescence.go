package fkjoin

// findRoot checks that g is an arborescence — a directed tree with a single
// root and every edge pointing away from it — and returns the root's node
// index. The checks run in order: exactly one node without incoming edges,
// the tree edge-count relation, then acyclicity via Kahn's algorithm. The
// first two are cheap rejections; the third catches shapes they miss, such
// as a cycle alongside a disjoint tree.
func findRoot(g *graph) (int, bool) {
	root, roots := -1, 0
	for i := range g.nodes {
		if len(g.nodes[i].in) == 0 {
			root = i
			roots++
		}
	}
	if roots != 1 {
		return 0, false
	}
	if len(g.edges) != len(g.nodes)-1 {
		return 0, false
	}

	indeg := make([]int, len(g.nodes))
	queue := make([]int, 0, len(g.nodes))
	for i := range g.nodes {
		indeg[i] = len(g.nodes[i].in)
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}
	visited := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		visited++
		for _, ei := range g.nodes[n].out {
			t := g.edges[ei].to
			if indeg[t]--; indeg[t] == 0 {
				queue = append(queue, t)
			}
		}
	}
	if visited != len(g.nodes) {
		return 0, false
	}
	return root, true
}
