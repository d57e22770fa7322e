package ascii

import "testing"

func TestDraw(t *testing.T) {
	tests := []struct {
		name      string
		charMap   map[Point]rune
		nodeChars map[Point]string
		want      string
	}{
		{
			name: "empty",
			want: "",
		},
		{
			name:    "glyphs only",
			charMap: map[Point]rune{{2, 0}: '-', {3, 0}: '-'},
			want:    "  --",
		},
		{
			name:    "rows padded with newlines and spaces",
			charMap: map[Point]rune{{1, 1}: '|'},
			nodeChars: map[Point]string{
				{0, 0}: "a",
				{0, 2}: "b",
			},
			want: "a\n |\nb",
		},
		{
			name:    "node spans collapse to one name",
			charMap: map[Point]rune{{3, 0}: '-'},
			nodeChars: map[Point]string{
				{0, 0}: "ab", {1, 0}: "ab",
				{4, 0}: "cd", {5, 0}: "cd",
			},
			want: "ab -cd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Draw(tt.charMap, tt.nodeChars); got != tt.want {
				t.Errorf("Draw = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRedraw(t *testing.T) {
	// Labels disappear from the redraw because their cells become plain line
	// glyphs; node names and geometry survive.
	got := Redraw("n1--(ab)--n2")
	want := "n1--------n2"
	if got != want {
		t.Errorf("Redraw = %q, want %q", got, want)
	}
}

func TestRedrawStable(t *testing.T) {
	// Redrawing a redraw changes nothing: the geometry is already normalized.
	text := "n1---\\\n     |\n     n2"
	once := Redraw(text)
	twice := Redraw(once)
	if once != twice {
		t.Errorf("Redraw not stable:\nonce:  %q\ntwice: %q", once, twice)
	}
}
