package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/netsketch/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// graphModel - Interactive graph browser
// =============================================================================

// graphModel is the bubbletea model for browsing a parsed graph. The left
// pane lists nodes; the detail pane shows the selected node's position and
// incident edges.
type graphModel struct {
	g      *graph.Graph
	nodes  []*graph.Node
	cursor int
	height int
	offset int
}

// newGraphModel creates a browser over g's nodes in diagram order.
func newGraphModel(g *graph.Graph) graphModel {
	return graphModel{
		g:      g,
		nodes:  g.Nodes(),
		height: 15,
	}
}

func (m graphModel) Init() tea.Cmd {
	return nil
}

func (m graphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "home", "g":
			m.cursor, m.offset = 0, 0
		case "end", "G":
			m.cursor = len(m.nodes) - 1
			if m.cursor >= m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case tea.WindowSizeMsg:
		if msg.Height > 8 {
			m.height = msg.Height - 8
		}
	}
	return m, nil
}

func (m graphModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Graph · %d nodes · %d edges", m.g.NodeCount(), m.g.EdgeCount())))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.nodes))
	for i := m.offset; i < end; i++ {
		n := m.nodes[i]
		line := fmt.Sprintf("%s (%d,%d)", n.ID, n.Pos.X, n.Pos.Y)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(m.nodes) > 0 {
		sel := m.nodes[m.cursor]
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(edgeSummary(m.g, sel.ID)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate · q quit"))
	b.WriteString("\n")
	return b.String()
}

// edgeSummary describes the edges incident to node id, one clause per edge.
func edgeSummary(g *graph.Graph, id string) string {
	var parts []string
	for _, e := range g.Edges() {
		if e.A != id && e.B != id {
			continue
		}
		other := e.B
		if e.B == id {
			other = e.A
		}
		clause := fmt.Sprintf("%s %s (length %d)", iconArrow, other, e.Length)
		if e.Label != "" {
			clause += fmt.Sprintf(" [%s]", e.Label)
		}
		parts = append(parts, clause)
	}
	if len(parts) == 0 {
		return "no edges"
	}
	return strings.Join(parts, "  ")
}

// browseGraph runs the interactive browser until the user quits.
func browseGraph(g *graph.Graph) error {
	_, err := tea.NewProgram(newGraphModel(g)).Run()
	return err
}
