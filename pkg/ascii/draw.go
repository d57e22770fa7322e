package ascii

import (
	"slices"
	"strings"
)

// Draw renders a character map back into text. Only the supplied cells are
// drawn, on a grid of newlines and spaces sized to their bounding box. Each
// node name in nodeChars is drawn once, at the smallest position its cells
// occupy. The output is a pure function of the input maps.
//
// Draw exists for diagnostics: parse errors use it to show the minimal
// geometry around a defective cell.
func Draw(charMap map[Point]rune, nodeChars map[Point]string) string {
	// Collapse node occupancy cells back to one (position, name) pair.
	starts := make(map[string]Point)
	for pos, name := range nodeChars {
		if cur, ok := starts[name]; !ok || pos.Less(cur) {
			starts[name] = pos
		}
	}

	type cell struct {
		pos  Point
		text string
	}
	cells := make([]cell, 0, len(charMap)+len(starts))
	for pos, glyph := range charMap {
		cells = append(cells, cell{pos, string(glyph)})
	}
	for name, pos := range starts {
		cells = append(cells, cell{pos, name})
	}
	slices.SortFunc(cells, func(a, b cell) int { return a.pos.Compare(b.pos) })

	var b strings.Builder
	cursor := Point{}
	for _, c := range cells {
		if cursor.Y < c.pos.Y {
			b.WriteString(strings.Repeat("\n", c.pos.Y-cursor.Y))
			cursor = Point{Y: c.pos.Y}
		}
		if cursor.X < c.pos.X {
			b.WriteString(strings.Repeat(" ", c.pos.X-cursor.X))
			cursor.X = c.pos.X
		}
		b.WriteString(c.text)
		cursor.X += len(c.text)
	}
	return b.String()
}
