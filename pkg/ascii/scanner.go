package ascii

import (
	"regexp"
	"strings"
)

// tokenPattern matches one node or label within a row: an optional leading
// parenthesis, a run of alphanumerics, underscores, or braces, and an
// optional trailing parenthesis. Matches are maximal and non-overlapping.
var tokenPattern = regexp.MustCompile(`\(?[0-9A-Za-z_{}]+\)?`)

// TokenKind classifies a scanned token.
type TokenKind int

const (
	// TokenNode names a graph vertex.
	TokenNode TokenKind = iota
	// TokenLabel supplies descriptive text for the edge it sits on.
	TokenLabel
)

// Token is a scanned run of text together with its root position, the grid
// cell of its first character.
type Token struct {
	Text string
	Pos  Point
}

// Kind reports whether the token is a node name or an edge label.
// Labels are wrapped in parentheses; everything else names a node.
func (t Token) Kind() TokenKind {
	if strings.HasPrefix(t.Text, "(") && strings.HasSuffix(t.Text, ")") {
		return TokenLabel
	}
	return TokenNode
}

// Content returns the label text with its surrounding parentheses stripped.
// For node tokens it is the literal text.
func (t Token) Content() string {
	if t.Kind() == TokenLabel {
		return t.Text[1 : len(t.Text)-1]
	}
	return t.Text
}

// scanTokens extracts every token from the diagram, scanning each row left
// to right, rows top to bottom. Tokens are therefore emitted in row-major
// order of their root positions. Empty and whitespace-only lines yield no
// tokens.
func scanTokens(text string) []Token {
	var tokens []Token
	for row, line := range strings.Split(text, "\n") {
		for _, loc := range tokenPattern.FindAllStringIndex(line, -1) {
			tokens = append(tokens, Token{
				Text: line[loc[0]:loc[1]],
				Pos:  Point{X: loc[0], Y: row},
			})
		}
	}
	return tokens
}

// labelTokens filters a scan down to its label tokens.
func labelTokens(tokens []Token) []Token {
	var labels []Token
	for _, tok := range tokens {
		if tok.Kind() == TokenLabel {
			labels = append(labels, tok)
		}
	}
	return labels
}
