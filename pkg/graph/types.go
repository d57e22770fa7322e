package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// =============================================================================
// Doc - Graph Wire Format
// =============================================================================

// Doc is the canonical serialization format for graphs. It is used for file
// output, API responses, caching, and MongoDB storage (hence the bson tags).
//
// The format is human-readable and round-trip safe: parse → export →
// re-import produces an identical graph. Nodes are sorted by ID and edges by
// endpoint pair, so output is deterministic regardless of build order.
type Doc struct {
	Nodes []NodeDoc `json:"nodes" bson:"nodes"`
	Edges []EdgeDoc `json:"edges" bson:"edges"`
}

// NodeDoc is the wire form of a node.
type NodeDoc struct {
	ID   string         `json:"id" bson:"id"`
	Pos  Position       `json:"pos" bson:"pos"`
	Meta map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// EdgeDoc is the wire form of an edge.
type EdgeDoc struct {
	A      string         `json:"a" bson:"a"`
	B      string         `json:"b" bson:"b"`
	Length int            `json:"length" bson:"length"`
	Label  string         `json:"label,omitempty" bson:"label,omitempty"`
	Meta   map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// =============================================================================
// Graph ↔ Doc Conversion
// =============================================================================

// FromGraph converts a graph to its wire format with deterministic ordering:
// nodes sorted by ID, edges by (A, B, Label).
func FromGraph(g *Graph) Doc {
	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b *Node) int { return strings.Compare(a.ID, b.ID) })

	out := Doc{
		Nodes: make([]NodeDoc, len(nodes)),
		Edges: make([]EdgeDoc, len(g.edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = NodeDoc{ID: n.ID, Pos: n.Pos, Meta: emptyToNil(n.Meta)}
	}
	for i, e := range g.Edges() {
		out.Edges[i] = EdgeDoc{A: e.A, B: e.B, Length: e.Length, Label: e.Label, Meta: emptyToNil(e.Meta)}
	}
	slices.SortFunc(out.Edges, func(x, y EdgeDoc) int {
		if c := strings.Compare(x.A, y.A); c != 0 {
			return c
		}
		if c := strings.Compare(x.B, y.B); c != 0 {
			return c
		}
		return strings.Compare(x.Label, y.Label)
	})
	return out
}

// ToGraph converts a wire document back into a graph. Returns an error if
// the document violates container constraints (duplicate or empty node IDs,
// edges naming unknown nodes).
func ToGraph(doc Doc) (*Graph, error) {
	g := New(nil)
	for _, n := range doc.Nodes {
		err := g.AddNode(Node{ID: n.ID, Pos: n.Pos, Meta: copyMeta(n.Meta)})
		if err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		err := g.AddEdge(Edge{A: e.A, B: e.B, Length: e.Length, Label: e.Label, Meta: copyMeta(e.Meta)})
		if err != nil {
			return nil, fmt.Errorf("add edge %s--%s: %w", e.A, e.B, err)
		}
	}
	return g, nil
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes with deterministic
// ordering.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes JSON bytes into a graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// WriteGraph writes a graph as indented JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph from r.
func ReadGraph(r io.Reader) (*Graph, error) {
	var doc Doc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(doc)
}

// WriteGraphFile writes a graph to a JSON file created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// =============================================================================
// Internal Helpers
// =============================================================================

// emptyToNil drops empty metadata maps from wire output.
func emptyToNil(m Metadata) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}

// copyMeta creates a shallow copy of metadata to avoid shared mutation.
func copyMeta(m map[string]any) Metadata {
	if m == nil {
		return nil
	}
	result := make(Metadata, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
