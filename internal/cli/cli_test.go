package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	nserrors "github.com/matzehuels/netsketch/pkg/errors"
	"github.com/matzehuels/netsketch/pkg/graph"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("-"); got != "stdin" {
		t.Errorf("displayName(-) = %q, want stdin", got)
	}
	if got := displayName("net.txt"); got != "net.txt" {
		t.Errorf("displayName(net.txt) = %q", got)
	}
}

func TestReadDiagramFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.txt")
	if err := os.WriteFile(path, []byte("a-b"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	text, err := readDiagram(path)
	if err != nil {
		t.Fatalf("readDiagram: %v", err)
	}
	if text != "a-b" {
		t.Errorf("text = %q, want a-b", text)
	}
	_, err = readDiagram(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("reading a missing file did not fail")
	}
	if got := nserrors.GetCode(err); got != nserrors.ErrCodeFileNotFound {
		t.Errorf("code = %q, want FILE_NOT_FOUND", got)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"svg", "png", "dot"} {
		if err := validateFormat(format); err != nil {
			t.Errorf("validateFormat(%s) = %v", format, err)
		}
	}
	err := validateFormat("gif")
	if err == nil {
		t.Fatal("validateFormat(gif) did not fail")
	}
	if got := nserrors.GetCode(err); got != nserrors.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want INVALID_FORMAT", got)
	}
}

func TestEdgeSummary(t *testing.T) {
	g := graph.New(nil)
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(graph.Node{ID: id})
	}
	_ = g.AddEdge(graph.Edge{A: "a", B: "b", Length: 2, Label: "up"})
	_ = g.AddEdge(graph.Edge{A: "a", B: "c", Length: 1})

	got := edgeSummary(g, "a")
	if !strings.Contains(got, "b (length 2) [up]") {
		t.Errorf("summary missing labeled edge: %q", got)
	}
	if !strings.Contains(got, "c (length 1)") {
		t.Errorf("summary missing unlabeled edge: %q", got)
	}
	if got := edgeSummary(g, "b"); !strings.Contains(got, "a (length 2)") {
		t.Errorf("summary from the other endpoint: %q", got)
	}
	if got := edgeSummary(g, "lonely"); got != "no edges" {
		t.Errorf("summary for edgeless node = %q", got)
	}
}
