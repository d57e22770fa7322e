package ascii

import (
	"bytes"
	"errors"
	"testing"

	"github.com/matzehuels/netsketch/pkg/graph"
)

// wantEdge is the shape checks compare traced edges against.
type wantEdge struct {
	a, b   string
	length int
	label  string
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantNodes map[string]graph.Position
		wantEdges []wantEdge
	}{
		{
			name:      "empty diagram",
			text:      "",
			wantNodes: map[string]graph.Position{},
		},
		{
			name: "nodes without edges",
			text: "n1   n2",
			wantNodes: map[string]graph.Position{
				"n1": {X: 0, Y: 0},
				"n2": {X: 5, Y: 0},
			},
		},
		{
			name: "single dash",
			text: "n1-n2",
			wantNodes: map[string]graph.Position{
				"n1": {X: 0, Y: 0},
				"n2": {X: 3, Y: 0},
			},
			wantEdges: []wantEdge{{"n1", "n2", 1, ""}},
		},
		{
			name:      "longer horizontal line",
			text:      "n1-----n2",
			wantNodes: map[string]graph.Position{"n1": {X: 0, Y: 0}, "n2": {X: 7, Y: 0}},
			wantEdges: []wantEdge{{"n1", "n2", 5, ""}},
		},
		{
			name:      "vertical line",
			text:      "n1\n |\n |\n n2",
			wantNodes: map[string]graph.Position{"n1": {X: 0, Y: 0}, "n2": {X: 1, Y: 3}},
			wantEdges: []wantEdge{{"n1", "n2", 2, ""}},
		},
		{
			name:      "forward diagonal",
			text:      "  n1\n /\nn2",
			wantNodes: map[string]graph.Position{"n1": {X: 2, Y: 0}, "n2": {X: 0, Y: 2}},
			wantEdges: []wantEdge{{"n1", "n2", 1, ""}},
		},
		{
			name:      "backward diagonal",
			text:      "n1\n  \\\n   n2",
			wantNodes: map[string]graph.Position{"n1": {X: 0, Y: 0}, "n2": {X: 3, Y: 2}},
			wantEdges: []wantEdge{{"n1", "n2", 1, ""}},
		},
		{
			name:      "bend through a corner",
			text:      "n1---\\\n     |\n     n2",
			wantNodes: map[string]graph.Position{"n1": {X: 0, Y: 0}, "n2": {X: 5, Y: 2}},
			wantEdges: []wantEdge{{"n1", "n2", 5, ""}},
		},
		{
			name:      "labeled horizontal line",
			text:      "n1--(cost)--n2",
			wantNodes: map[string]graph.Position{"n1": {X: 0, Y: 0}, "n2": {X: 12, Y: 0}},
			wantEdges: []wantEdge{{"n1", "n2", 10, "cost"}},
		},
		{
			name:      "labeled vertical line",
			text:      "n1\n |\n(x)\n |\n n2",
			wantNodes: map[string]graph.Position{"n1": {X: 0, Y: 0}, "n2": {X: 1, Y: 4}},
			wantEdges: []wantEdge{{"n1", "n2", 3, "x"}},
		},
		{
			name: "shared node fans out",
			text: "n1---n2\n     |\n     n3",
			wantNodes: map[string]graph.Position{
				"n1": {X: 0, Y: 0},
				"n2": {X: 5, Y: 0},
				"n3": {X: 5, Y: 2},
			},
			wantEdges: []wantEdge{
				{"n1", "n2", 3, ""},
				{"n2", "n3", 1, ""},
			},
		},
		{
			name:      "endpoints are canonicalized",
			text:      "b--a",
			wantNodes: map[string]graph.Position{"a": {X: 3, Y: 0}, "b": {X: 0, Y: 0}},
			wantEdges: []wantEdge{{"a", "b", 2, ""}},
		},
		{
			name: "repeated name is one node at its last position",
			text: "n1-n2\nn1-n3",
			wantNodes: map[string]graph.Position{
				"n1": {X: 0, Y: 1},
				"n2": {X: 3, Y: 0},
				"n3": {X: 3, Y: 1},
			},
			wantEdges: []wantEdge{
				{"n1", "n2", 1, ""},
				{"n1", "n3", 1, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			if g.NodeCount() != len(tt.wantNodes) {
				t.Fatalf("NodeCount = %d, want %d", g.NodeCount(), len(tt.wantNodes))
			}
			for id, pos := range tt.wantNodes {
				n, ok := g.Node(id)
				if !ok {
					t.Errorf("node %q missing", id)
					continue
				}
				if n.Pos != pos {
					t.Errorf("node %q position = %+v, want %+v", id, n.Pos, pos)
				}
			}

			edges := g.Edges()
			if len(edges) != len(tt.wantEdges) {
				t.Fatalf("EdgeCount = %d, want %d: %+v", len(edges), len(tt.wantEdges), edges)
			}
			for i, want := range tt.wantEdges {
				got := edges[i]
				if got.A != want.a || got.B != want.b {
					t.Errorf("edge %d = %s--%s, want %s--%s", i, got.A, got.B, want.a, want.b)
				}
				if got.Length != want.length {
					t.Errorf("edge %d length = %d, want %d", i, got.Length, want.length)
				}
				if got.Label != want.label {
					t.Errorf("edge %d label = %q, want %q", i, got.Label, want.label)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sentinel error
		pos      Point
	}{
		{
			name:     "dangling line",
			text:     "n1--",
			sentinel: ErrTooFewNodes,
			pos:      Point{3, 0},
		},
		{
			name:     "lonely glyph",
			text:     "|",
			sentinel: ErrTooFewNodes,
			pos:      Point{0, 0},
		},
		{
			name:     "junction",
			text:     "n1--n2\n  |\n  n3",
			sentinel: ErrTooManyNodes,
			pos:      Point{2, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Parse error = %v, want %v", err, tt.sentinel)
			}
			var edgeErr *EdgeError
			if !errors.As(err, &edgeErr) {
				t.Fatalf("error is %T, want *EdgeError", err)
			}
			if edgeErr.Pos != tt.pos {
				t.Errorf("Pos = %v, want %v", edgeErr.Pos, tt.pos)
			}
			if edgeErr.Snippet == "" {
				t.Error("Snippet is empty")
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	text := "a---b\n    |\nd---c"
	first, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fb, err := graph.MarshalGraph(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	sb, err := graph.MarshalGraph(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(fb, sb) {
		t.Errorf("two parses of the same text differ:\n%s\n%s", fb, sb)
	}
}

func TestParseSelfContainedGraph(t *testing.T) {
	// The parse result must stand on its own: edges reference nodes that
	// exist and lengths are positive.
	g, err := Parse("n1--n2\n\nn3---n4")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, e := range g.Edges() {
		if _, ok := g.Node(e.A); !ok {
			t.Errorf("edge endpoint %q is not a node", e.A)
		}
		if _, ok := g.Node(e.B); !ok {
			t.Errorf("edge endpoint %q is not a node", e.B)
		}
		if e.Length < 1 {
			t.Errorf("edge %s--%s has length %d", e.A, e.B, e.Length)
		}
	}
}
