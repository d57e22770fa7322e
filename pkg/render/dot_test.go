package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/netsketch/pkg/ascii"
	"github.com/matzehuels/netsketch/pkg/graph"
)

func parseFixture(t *testing.T, text string) *graph.Graph {
	t.Helper()
	g, err := ascii.Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := parseFixture(t, "a--(up)--b")
	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"graph G {",
		"layout=neato",
		`"a" [label="a"];`,
		`"b" [label="b"];`,
		`"a" -- "b" [len=8, label="up"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := parseFixture(t, "a-b")
	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, `label="a\n(0,0)"`) {
		t.Errorf("detailed DOT missing position label:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	text := "c--a\nc--b"
	first := ToDOT(parseFixture(t, text), Options{})
	second := ToDOT(parseFixture(t, text), Options{})
	if first != second {
		t.Error("two DOT renderings of the same diagram differ")
	}
	// Sorted by node ID regardless of diagram order.
	if strings.Index(first, `"a" [`) > strings.Index(first, `"c" [`) {
		t.Errorf("nodes not sorted by ID:\n%s", first)
	}
}

func TestToDOTMinimumLength(t *testing.T) {
	g := graph.New(nil)
	_ = g.AddNode(graph.Node{ID: "a"})
	_ = g.AddNode(graph.Node{ID: "b"})
	_ = g.AddEdge(graph.Edge{A: "a", B: "b", Length: 0})

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, "len=1") {
		t.Errorf("zero-length edge should clamp to len=1:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 100.40 60.25" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 100.40 60.25"`) {
		t.Errorf("viewBox not normalized: %s", got)
	}
	if !strings.Contains(got, `width="100" height="60"`) {
		t.Errorf("pixel dimensions missing: %s", got)
	}
	if !strings.Contains(got, "<g/></svg>") {
		t.Errorf("document body lost: %s", got)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	svg := []byte("<svg><g/></svg>")
	if got := string(normalizeViewBox(svg)); got != string(svg) {
		t.Errorf("SVG without viewBox rewritten: %s", got)
	}
}
