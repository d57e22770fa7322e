package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with
	// the same ID already exists. Node IDs are unique per graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownEndpoint is returned by [Graph.AddEdge] when either
	// endpoint does not name an existing node.
	ErrUnknownEndpoint = errors.New("unknown edge endpoint")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges, or the
// graph itself.
type Metadata map[string]any

// Position is the grid cell a node was drawn at: X is the column, Y the row,
// both zero-based with Y growing downward.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Node is a named vertex with the position of its first character in the
// source diagram.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID   string   // literal node name from the diagram
	Pos  Position // root position (top-left character)
	Meta Metadata // arbitrary metadata (never nil after AddNode)
}

// Edge is an undirected connection between two named nodes. After AddEdge
// the pair is canonical: A is the lexicographically smaller name.
type Edge struct {
	A      string   // first endpoint (A <= B)
	B      string   // second endpoint
	Length int      // count of drawn line cells between the endpoints
	Label  string   // label content, empty if the line carried none
	Meta   Metadata // arbitrary metadata (never nil after AddEdge)
}

// Graph is an undirected graph keyed by node name. Self-loops and parallel
// edges are permitted (a diagram can draw two separate lines between the
// same pair). The zero value is not usable - use New.
//
// Graph is not safe for concurrent mutation without external
// synchronization; concurrent reads are fine.
type Graph struct {
	nodes map[string]*Node
	order []string // node insertion order, for deterministic iteration
	edges []Edge
	adj   map[string][]string
	meta  Metadata
}

// New creates an empty graph with optional graph-level metadata.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes: make(map[string]*Node),
		adj:   make(map[string][]string),
		meta:  meta,
	}
}

// Meta returns the graph-level metadata map. Never nil.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node to the graph. Returns ErrInvalidNodeID for an empty
// ID, or ErrDuplicateNodeID if the name is already present. The node's Meta
// field is initialized to an empty map if nil.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds an undirected edge between two existing nodes, canonicalizing
// the endpoint order so that A <= B. Returns ErrUnknownEndpoint if either
// node is missing. The edge's Meta field is initialized to an empty map if
// nil. Parallel edges between the same pair are allowed.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.A]; !ok {
		return ErrUnknownEndpoint
	}
	if _, ok := g.nodes[e.B]; !ok {
		return ErrUnknownEndpoint
	}
	if e.B < e.A {
		e.A, e.B = e.B, e.A
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	g.edges = append(g.edges, e)
	g.adj[e.A] = append(g.adj[e.A], e.B)
	if e.A != e.B {
		g.adj[e.B] = append(g.adj[e.B], e.A)
	}
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The pointer refers to the stored node, so modifications affect the
// graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the first edge between a and b and true, or a zero Edge and
// false if none exists. The lookup is symmetric in a and b.
func (g *Graph) Edge(a, b string) (Edge, bool) {
	if b < a {
		a, b = b, a
	}
	for _, e := range g.edges {
		if e.A == a && e.B == b {
			return e, true
		}
	}
	return Edge{}, false
}

// Nodes returns all nodes in insertion order. The slice contains pointers to
// the stored nodes.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Neighbors returns the IDs adjacent to the node, in edge insertion order.
// The returned slice should be treated as a read-only view.
func (g *Graph) Neighbors(id string) []string { return g.adj[id] }

// Degree returns the number of edges incident to the node, or 0 if the node
// doesn't exist. A self-loop counts once.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }
