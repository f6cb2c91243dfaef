package audit

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// Write prints the per-move frequencies and the verdict
func (r *Report) Write(w io.Writer) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Move", "Picks", "Share", "Deviation")

	total := r.Stats.Rounds
	for i, name := range r.Moves {
		share := 0.0
		if total > 0 {
			share = float64(r.Counts[i]) / float64(total)
		}
		deviation := 0.0
		if r.Expected > 0 {
			deviation = (float64(r.Counts[i]) - r.Expected) / r.Expected
		}
		t.Row(name, strconv.Itoa(r.Counts[i]), fmt.Sprintf("%.2f%%", share*100), fmt.Sprintf("%+.2f%%", deviation*100))
	}

	verdict := passStyle.Render("PASS")
	if !r.Passed() {
		verdict = failStyle.Render("FAIL")
	}

	_, err := fmt.Fprintf(w, "%s\n"+
		"Rounds:     %d (%d workers, %s)\n"+
		"Chi-square: %.4f (df=%d)\n"+
		"p-value:    %.4f (alpha %.4g)\n"+
		"Failures:   %d\n"+
		"Result:     %s\n",
		t.Render(),
		total, r.Workers, r.Duration.Round(time.Millisecond),
		r.ChiSquare, len(r.Moves)-1,
		r.PValue, r.Alpha,
		r.Failures,
		verdict)
	return err
}
