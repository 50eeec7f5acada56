package graph

// finish runs the pruning pass and returns the completed graph. Edges with a
// non-positive value were already filtered at emission time (render-only
// edges excepted), so only orphaned nodes remain to be dropped: a node with
// no incident edge would float unconnected in the rendering.
func (b *builder) finish() *Graph {
	connected := make(map[string]bool, len(b.nodes))
	for _, e := range b.edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}

	nodes := b.nodes[:0]
	for _, n := range b.nodes {
		if !connected[n.ID] {
			continue
		}
		nodes = append(nodes, n)
	}

	if nodes == nil {
		nodes = []Node{}
	}
	if b.edges == nil {
		b.edges = []Edge{}
	}
	return &Graph{Nodes: nodes, Links: b.edges}
}
