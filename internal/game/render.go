package game

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RulesTitle heads the rendered rule table
const RulesTitle = "Rules of the game"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	winStyle    = cellStyle.Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	loseStyle   = cellStyle.Foreground(lipgloss.Color("#FF6B6B"))
	drawStyle   = cellStyle.Foreground(lipgloss.Color("#626262"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// Render produces the help-screen grid. Each row is a reference move; each
// column shows that move's outcome against the column move.
func (rt *RuleTable) Render() string {
	moves := rt.moves.Moves()

	headers := make([]string, 0, len(moves)+1)
	headers = append(headers, "Moves")
	for _, m := range moves {
		headers = append(headers, m.Name)
	}

	rows := make([][]string, len(moves))
	outcomes := make([][]Outcome, len(moves))
	for i, m := range moves {
		outcomes[i] = rt.Row(m)
		row := make([]string, 0, len(moves)+1)
		row = append(row, m.Name)
		for _, o := range outcomes[i] {
			row = append(row, o.String())
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return headerStyle
			}
			if row < 0 || row >= len(moves) || col-1 >= len(moves) {
				return cellStyle
			}
			switch outcomes[row][col-1] {
			case Win:
				return winStyle
			case Lose:
				return loseStyle
			default:
				return drawStyle
			}
		})

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(RulesTitle),
		"Outcome for the row move played against the column move",
		t.String(),
	)
}
