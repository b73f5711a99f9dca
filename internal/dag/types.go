package dag

// Graph is a set of nodes and the dependencies between them. Nodes keep the
// order they were added in, so every traversal is deterministic.
type Graph struct {
	// order lists node IDs in insertion order.
	order []string
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
}

// node is a single vertex of the graph. Edges are stored by ID and kept in
// the order they were added.
type node struct {
	id string
	// deps are the nodes this node depends on (predecessors).
	deps []string
	// dependents are the nodes that depend on this node (successors).
	dependents []string
}
