package ascii

import (
	"github.com/matzehuels/netsketch/pkg/graph"
)

// Parse converts an ASCII line drawing into a graph. Nodes carry their grid
// position; edges carry their drawn length and, when a parenthesized label
// sits on the line, that label's content.
//
// Parse is a pure function of text: identical input yields an identical
// graph on every call, and no state survives between calls. A structurally
// invalid drawing aborts the whole parse with an [*EdgeError]; there is no
// partial result.
func Parse(text string) (*graph.Graph, error) {
	tokens := scanTokens(text)
	nodeChars, labelChars := charMaps(tokens)

	edgeChars := buildEdgeMap(text)
	patchLabels(labelTokens(tokens), edgeChars)

	traced, err := newTracer(edgeChars, nodeChars).trace()
	if err != nil {
		return nil, err
	}
	return assemble(tokens, traced, labelChars)
}

// assemble emits the scanned nodes and traced edges into a fresh graph.
// Node identity is the literal token text: repeated occurrences of a name
// refer to one node, with the last occurrence supplying its position. An
// edge's label is the content of the label map entry its path runs through.
func assemble(tokens []Token, traced []tracedEdge, labelChars map[Point]string) (*graph.Graph, error) {
	g := graph.New(nil)

	positions := make(map[string]Point)
	var order []string
	for _, tok := range tokens {
		if tok.Kind() != TokenNode {
			continue
		}
		if _, seen := positions[tok.Text]; !seen {
			order = append(order, tok.Text)
		}
		positions[tok.Text] = tok.Pos
	}
	for _, name := range order {
		pos := positions[name]
		err := g.AddNode(graph.Node{ID: name, Pos: graph.Position{X: pos.X, Y: pos.Y}})
		if err != nil {
			return nil, err
		}
	}

	for _, e := range traced {
		edge := graph.Edge{A: e.nodes[0], B: e.nodes[1], Length: len(e.path)}
		for _, p := range e.path {
			if content, ok := labelChars[p]; ok {
				edge.Label = content
				break
			}
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Redraw re-renders the diagram's recorded geometry - its line-drawing
// glyphs (label cells patched) and node names - as text. It is a diagnostic
// helper, not a general graph-to-ASCII renderer: only geometry present in
// the input can be drawn.
func Redraw(text string) string {
	tokens := scanTokens(text)
	nodeChars, _ := charMaps(tokens)
	edgeChars := buildEdgeMap(text)
	patchLabels(labelTokens(tokens), edgeChars)
	return Draw(edgeChars, nodeChars)
}
