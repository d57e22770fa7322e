package ascii

import (
	"cmp"
	"fmt"
)

// Point is a cell position on the diagram grid. X is the column (growing
// rightward), Y is the row (growing downward). Points are totally ordered
// row-major: by Y first, then X.
type Point struct {
	X int
	Y int
}

// Direction offsets used throughout the parser. Names describe where the
// neighboring cell sits relative to the current one.
var (
	left  = Point{-1, 0}
	right = Point{1, 0}
	above = Point{0, -1}
	below = Point{0, 1}

	topLeft     = Point{-1, -1}
	topRight    = Point{1, -1}
	bottomLeft  = Point{-1, 1}
	bottomRight = Point{1, 1}
)

// Add returns the vector sum p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector difference p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Less reports whether p sorts before q in row-major order.
func (p Point) Less(q Point) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

// Compare orders points row-major and is suitable for [slices.SortFunc].
func (p Point) Compare(q Point) int {
	if c := cmp.Compare(p.Y, q.Y); c != 0 {
		return c
	}
	return cmp.Compare(p.X, q.X)
}

// String formats the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }
