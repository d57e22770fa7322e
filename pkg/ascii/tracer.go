package ascii

import "slices"

// glyphOffsets gives the two directions each glyph connects along.
// The first offset is the trailing side (the cell scanned earlier in
// row-major order), the second the leading side.
var glyphOffsets = map[rune][2]Point{
	'-':  {left, right},
	'|':  {above, below},
	'/':  {bottomLeft, topRight},
	'\\': {topLeft, bottomRight},
}

// abutting maps a surrounding offset to the glyph that, drawn in that cell,
// reaches back to the current one. This reverse relation resolves corners
// where two different glyphs meet (e.g. a - running into a /) and the
// directional rule alone would miss the connection from the other side.
var abutting = map[Point]rune{
	topLeft: '\\', above: '|', topRight: '/',
	left: '-', right: '-',
	bottomLeft: '/', below: '|', bottomRight: '\\',
}

// tracedEdge is one discovered line: the canonical node pair bounding it and
// the ordered cells of the drawn path between them (endpoints excluded).
type tracedEdge struct {
	nodes [2]string
	path  []Point
}

// tracer walks chains of edge characters to discover which two nodes each
// drawn line connects. It owns the frozen, row-major-sorted edge map and the
// node occupancy map for one parse.
type tracer struct {
	edgeChars map[Point]rune
	nodeChars map[Point]string
	order     []Point
}

func newTracer(edgeChars map[Point]rune, nodeChars map[Point]string) *tracer {
	return &tracer{
		edgeChars: edgeChars,
		nodeChars: nodeChars,
		order:     sortedPoints(edgeChars),
	}
}

// neighbors resolves the cells abutting pos. Directional neighbors follow
// the glyph's own two offsets and may be edge or node cells; the reverse
// pass adds edge cells whose glyph points back at pos. A simple line segment
// exposes exactly two; anything else is a structural defect.
func (t *tracer) neighbors(pos Point) ([]Point, error) {
	glyph := t.edgeChars[pos]

	var found []Point
	for _, off := range glyphOffsets[glyph] {
		q := pos.Add(off)
		if _, ok := t.edgeChars[q]; ok {
			found = append(found, q)
		} else if _, ok := t.nodeChars[q]; ok {
			found = append(found, q)
		}
	}
	for off, g := range abutting {
		q := pos.Add(off)
		if t.edgeChars[q] == g && !slices.Contains(found, q) {
			found = append(found, q)
		}
	}
	slices.SortFunc(found, Point.Compare)

	switch {
	case len(found) < 2:
		return nil, t.edgeErr(ErrTooFewNodes, pos, found)
	case len(found) > 2:
		return nil, t.edgeErr(ErrTooManyNodes, pos, found)
	}
	return found, nil
}

// walk follows the chain from start (a neighbor of from) until it reaches a
// node cell, collecting the edge cells along the way. The walk is iterative,
// so line length costs loop iterations rather than stack depth.
func (t *tracer) walk(from, start Point) ([]Point, string, error) {
	var path []Point
	seen := map[Point]bool{from: true}
	prev, cur := from, start
	for {
		if name, ok := t.nodeChars[cur]; ok {
			return path, name, nil
		}
		if seen[cur] {
			// A chain that loops back on itself has no node endpoint.
			return nil, "", t.edgeErr(ErrTooFewNodes, cur, nil)
		}
		seen[cur] = true
		path = append(path, cur)

		ns, err := t.neighbors(cur)
		if err != nil {
			return nil, "", err
		}
		next := ns[0]
		if next == prev {
			next = ns[1]
		}
		prev, cur = cur, next
	}
}

// trace discovers every edge exactly once. Cells are processed in row-major
// order; cells claimed by an earlier trace are skipped, so no cell ever
// belongs to two edges. For each unclaimed cell the chain is walked out both
// neighbor directions and stitched into one path running node to node.
func (t *tracer) trace() ([]tracedEdge, error) {
	claimed := make(map[Point]bool, len(t.order))
	var edges []tracedEdge

	for _, pos := range t.order {
		if claimed[pos] {
			continue
		}
		ns, err := t.neighbors(pos)
		if err != nil {
			return nil, err
		}
		back, first, err := t.walk(pos, ns[0])
		if err != nil {
			return nil, err
		}
		fwd, second, err := t.walk(pos, ns[1])
		if err != nil {
			return nil, err
		}

		slices.Reverse(back)
		path := append(back, pos)
		path = append(path, fwd...)

		// Canonical endpoint order: lexicographically smaller name first,
		// path running from the first node to the second. This keeps the
		// recorded pair independent of scan order.
		if first > second {
			first, second = second, first
			slices.Reverse(path)
		}

		for _, p := range path {
			claimed[p] = true
		}
		edges = append(edges, tracedEdge{nodes: [2]string{first, second}, path: path})
	}
	return edges, nil
}

// edgeErr builds an EdgeError for pos, rendering only pos and its discovered
// neighbors so the snippet shows the minimal defective geometry.
func (t *tracer) edgeErr(reason error, pos Point, neighbors []Point) error {
	scene := map[Point]rune{pos: t.edgeChars[pos]}
	nodes := make(map[Point]string)
	for _, q := range neighbors {
		if g, ok := t.edgeChars[q]; ok {
			scene[q] = g
		} else if name, ok := t.nodeChars[q]; ok {
			nodes[q] = name
		}
	}
	return &EdgeError{
		Pos:       pos,
		Glyph:     t.edgeChars[pos],
		Neighbors: neighbors,
		Snippet:   Draw(scene, nodes),
		reason:    reason,
	}
}
