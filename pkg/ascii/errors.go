package ascii

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying structural defects found while tracing.
// Match them with [errors.Is]; the concrete [*EdgeError] in the chain
// carries the position and a rendered snippet of the bad geometry.
var (
	// ErrTooFewNodes marks a dangling line end: an edge character with
	// fewer than two abutting cells.
	ErrTooFewNodes = errors.New("too few nodes on edge")

	// ErrTooManyNodes marks an ambiguous branch or crossing: an edge
	// character with more than two abutting cells.
	ErrTooManyNodes = errors.New("too many nodes on edge")
)

// EdgeError describes a structural defect at a single grid cell. Any such
// defect aborts the whole parse; there is no partial graph to recover.
type EdgeError struct {
	Pos       Point   // cell where the defect was detected
	Glyph     rune    // line-drawing character at Pos
	Neighbors []Point // abutting cells discovered for Pos
	Snippet   string  // rendered fragment of the offending geometry
	reason    error   // ErrTooFewNodes or ErrTooManyNodes
}

// Error formats the defect with its position, glyph, neighbor count, and
// the rendered snippet so a user can locate the drawing mistake.
func (e *EdgeError) Error() string {
	return fmt.Sprintf("%v at %v (%q): %d neighbor(s) found\n%s",
		e.reason, e.Pos, string(e.Glyph), len(e.Neighbors), e.Snippet)
}

// Unwrap returns the sentinel classifying this defect, so that
// errors.Is(err, ErrTooFewNodes) and friends work through wrapping.
func (e *EdgeError) Unwrap() error { return e.reason }
