package ascii

import (
	"slices"
	"testing"
)

func TestBuildEdgeMap(t *testing.T) {
	chars := buildEdgeMap("a-b\n | \n \\/")
	want := map[Point]rune{
		{1, 0}: '-',
		{1, 1}: '|',
		{1, 2}: '\\',
		{2, 2}: '/',
	}
	if len(chars) != len(want) {
		t.Fatalf("got %d edge chars, want %d: %v", len(chars), len(want), chars)
	}
	for pos, glyph := range want {
		if chars[pos] != glyph {
			t.Errorf("chars[%v] = %q, want %q", pos, chars[pos], glyph)
		}
	}
}

func TestCharMaps(t *testing.T) {
	nodeChars, labelChars := charMaps(scanTokens("ab--(xy)"))

	for _, pos := range []Point{{0, 0}, {1, 0}} {
		if nodeChars[pos] != "ab" {
			t.Errorf("nodeChars[%v] = %q, want ab", pos, nodeChars[pos])
		}
	}
	// Label cells cover the parentheses too, all mapping to the content.
	for _, pos := range []Point{{4, 0}, {5, 0}, {6, 0}, {7, 0}} {
		if labelChars[pos] != "xy" {
			t.Errorf("labelChars[%v] = %q, want xy", pos, labelChars[pos])
		}
	}
	if len(nodeChars) != 2 || len(labelChars) != 4 {
		t.Errorf("map sizes = %d, %d, want 2, 4", len(nodeChars), len(labelChars))
	}
}

func TestPatchLabels(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[Point]rune // cells that must be present after patching
		skip []Point        // cells that must stay absent
	}{
		{
			name: "label on horizontal line",
			text: "n1--(ab)--n2",
			want: map[Point]rune{
				{4, 0}: '-', // opening parenthesis next to a dash
				{5, 0}: '-', // inner cells follow the dash to their left
				{6, 0}: '-',
				{7, 0}: '-', // closing parenthesis next to a dash
			},
		},
		{
			name: "label on vertical line",
			text: "n1\n |\n(x)\n |\n n2",
			want: map[Point]rune{
				{1, 2}: '|', // the one cell between the two pipes
			},
			skip: []Point{{0, 2}, {2, 2}},
		},
		{
			name: "label beside a line stays inert",
			text: "n1---n2\n(note)",
			skip: []Point{{0, 1}, {1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := scanTokens(tt.text)
			edgeChars := buildEdgeMap(tt.text)
			patchLabels(labelTokens(tokens), edgeChars)

			for pos, glyph := range tt.want {
				if edgeChars[pos] != glyph {
					t.Errorf("edgeChars[%v] = %q, want %q", pos, edgeChars[pos], glyph)
				}
			}
			for _, pos := range tt.skip {
				if _, ok := edgeChars[pos]; ok {
					t.Errorf("edgeChars[%v] = %q, want absent", pos, edgeChars[pos])
				}
			}
		})
	}
}

func TestSortedPoints(t *testing.T) {
	chars := map[Point]rune{
		{3, 1}: '-',
		{0, 2}: '|',
		{5, 0}: '-',
		{1, 1}: '/',
	}
	got := sortedPoints(chars)
	want := []Point{{5, 0}, {1, 1}, {3, 1}, {0, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("sortedPoints = %v, want %v", got, want)
	}
}
