package ascii

import (
	"maps"
	"slices"
	"strings"
)

// edgeGlyphs are the four characters recognized as line segments. Any other
// character is inert unless it is part of a token.
const edgeGlyphs = `-|/\`

func isEdgeGlyph(ch rune) bool { return strings.ContainsRune(edgeGlyphs, ch) }

// buildEdgeMap records the grid position of every line-drawing glyph in the
// diagram.
func buildEdgeMap(text string) map[Point]rune {
	chars := make(map[Point]rune)
	for row, line := range strings.Split(text, "\n") {
		for col, ch := range line {
			if isEdgeGlyph(ch) {
				chars[Point{X: col, Y: row}] = ch
			}
		}
	}
	return chars
}

// charMaps expands each token across its text span, producing the occupancy
// maps the tracer consumes: node cells map to the node's name, label cells
// (parentheses included) map to the label's content.
func charMaps(tokens []Token) (nodeChars, labelChars map[Point]string) {
	nodeChars = make(map[Point]string)
	labelChars = make(map[Point]string)
	for _, tok := range tokens {
		for i := range len(tok.Text) {
			pos := tok.Pos.Add(Point{X: i})
			if tok.Kind() == TokenLabel {
				labelChars[pos] = tok.Content()
			} else {
				nodeChars[pos] = tok.Text
			}
		}
	}
	return nodeChars, labelChars
}

// patchLabels makes labels transparent to the tracer. A label drawn directly
// on a line (n1--(cost)--n2) would otherwise split the line in two, so a
// synthetic glyph is injected under each label cell that crosses a line.
// Cells of a label sitting beside a line, rather than on it, stay non-edge.
func patchLabels(labels []Token, edgeChars map[Point]rune) {
	for _, lbl := range labels {
		for i := range len(lbl.Text) {
			pos := lbl.Pos.Add(Point{X: i})
			switch {
			case lbl.Text[i] == '(' && edgeChars[pos.Add(left)] == '-':
				edgeChars[pos] = '-'
			case lbl.Text[i] == ')' && edgeChars[pos.Add(right)] == '-':
				edgeChars[pos] = '-'
			case edgeChars[pos.Add(above)] == '|' && edgeChars[pos.Add(below)] == '|':
				edgeChars[pos] = '|'
			case edgeChars[pos.Add(left)] == '-':
				edgeChars[pos] = '-'
			}
		}
	}
}

// sortedPoints returns the edge-character positions in row-major order.
// This ordering is load-bearing: it decides which cell of a chain the tracer
// visits first and therefore which copy of an edge gets recorded. Patching
// inserts cells out of order, so the sort must run after patchLabels.
func sortedPoints(chars map[Point]rune) []Point {
	pts := slices.Collect(maps.Keys(chars))
	slices.SortFunc(pts, Point.Compare)
	return pts
}
