package ascii

import (
	"slices"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p := Point{3, 5}
	if got := p.Add(Point{1, -2}); got != (Point{4, 3}) {
		t.Errorf("Add = %v, want (4,3)", got)
	}
	if got := p.Sub(Point{1, -2}); got != (Point{2, 7}) {
		t.Errorf("Sub = %v, want (2,7)", got)
	}
}

func TestPointOrdering(t *testing.T) {
	// Row-major: the row decides first, the column breaks ties.
	tests := []struct {
		p, q Point
		less bool
	}{
		{Point{0, 0}, Point{1, 0}, true},
		{Point{5, 0}, Point{0, 1}, true},
		{Point{0, 1}, Point{5, 0}, false},
		{Point{2, 2}, Point{2, 2}, false},
	}
	for _, tt := range tests {
		if got := tt.p.Less(tt.q); got != tt.less {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.p, tt.q, got, tt.less)
		}
	}

	pts := []Point{{1, 2}, {0, 0}, {3, 0}, {0, 2}}
	slices.SortFunc(pts, Point.Compare)
	want := []Point{{0, 0}, {3, 0}, {0, 2}, {1, 2}}
	if !slices.Equal(pts, want) {
		t.Errorf("sorted = %v, want %v", pts, want)
	}
}

func TestPointString(t *testing.T) {
	if got := (Point{7, -1}).String(); got != "(7,-1)" {
		t.Errorf("String() = %q, want (7,-1)", got)
	}
}
