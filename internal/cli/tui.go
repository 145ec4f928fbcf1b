package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sebaraj/mcis-engine/pkg/graph"
)

// ResultListModel is the bubbletea model shown when an engine invocation
// returns more than one result graph of maximum cardinality (spec.md §4.4
// permits ties among equal-weight cliques; KPT always returns exactly
// one, so this model is only ever reached from the Bron-Kerbosch path).
// It lets the user pick which one to export.
type ResultListModel struct {
	Results  []*graph.Graph
	Cursor   int
	Selected *graph.Graph
	Quit     bool
}

// NewResultListModel creates a selection model over results.
func NewResultListModel(results []*graph.Graph) ResultListModel {
	return ResultListModel{Results: results}
}

func (m ResultListModel) Init() tea.Cmd { return nil }

func (m ResultListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		m.Quit = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Results)-1 {
			m.Cursor++
		}
	case "enter":
		m.Selected = m.Results[m.Cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m ResultListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Multiple maximum-cardinality results"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, g := range m.Results {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		names := strings.Join(g.NodeIDs(), ", ")
		line := fmt.Sprintf("%s[%d] %d nodes: %s", cursor, i, g.NumNodes(), names)
		if i == m.Cursor {
			b.WriteString(StyleSuccess.Render(line))
		} else {
			b.WriteString(StyleDim.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
