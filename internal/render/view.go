package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DefaultHeight is the bar area height in rows.
const DefaultHeight = 16

const barGlyph = "█"

// Info is the run context shown around the bars.
type Info struct {
	Algorithm string
	Delay     time.Duration
	Elapsed   time.Duration
	Height    int
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101F38")).Background(lipgloss.Color("#8BC34A")).Padding(0, 1)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#2a3850")).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#606060"))

	statusColors = map[Status]lipgloss.Color{
		StatusReady:     lipgloss.Color("#2E7D32"),
		StatusRunning:   lipgloss.Color("#2196F3"),
		StatusPaused:    lipgloss.Color("#FFC107"),
		StatusCompleted: lipgloss.Color("#8BC34A"),
	}
)

// View renders the mirror as vertical bars over a statistics panel.
func View(m *Mirror, info Info) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s | %d elements | delay %s", info.Algorithm, m.Len(), info.Delay)))
	b.WriteString("\n\n")
	b.WriteString(Bars(m, info.Height))
	b.WriteString("\n")
	b.WriteString(stats(m, info.Elapsed))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(m.Last().Description))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space start/pause  n step  +/- speed  g new array  tab algorithm  q quit"))

	return b.String()
}

// Bars renders one column per element, scaled to height rows against the
// largest value. Highlighted columns take the colour of the last effect.
func Bars(m *Mirror, height int) string {
	if height < 1 {
		height = DefaultHeight
	}
	n := m.Len()
	if n == 0 {
		return strings.Repeat("\n", height-1)
	}

	values := m.values
	last := m.Last()
	colors := make([]lipgloss.Color, n)
	for i := range colors {
		colors[i] = ColorNormal
	}
	for _, i := range last.Highlight {
		colors[i] = last.Role.Color()
	}

	levels := make([]int, n)
	for i, v := range values {
		levels[i] = barLevel(v, m.Max(), height)
	}

	rows := make([]string, height)
	for r := 0; r < height; r++ {
		threshold := height - r
		var row strings.Builder
		// Group adjacent cells of the same look into one styled run.
		for i := 0; i < n; {
			filled := levels[i] >= threshold
			j := i + 1
			for j < n && (levels[j] >= threshold) == filled && (!filled || colors[j] == colors[i]) {
				j++
			}
			if filled {
				row.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(strings.Repeat(barGlyph, j-i)))
			} else {
				row.WriteString(strings.Repeat(" ", j-i))
			}
			i = j
		}
		rows[r] = row.String()
	}
	return strings.Join(rows, "\n")
}

// barLevel scales v to 0..height rows, rounding up so any positive value
// shows at least one row.
func barLevel(v, maxValue, height int) int {
	if v <= 0 || maxValue <= 0 {
		return 0
	}
	return min(height, (v*height+maxValue-1)/maxValue)
}

func stats(m *Mirror, elapsed time.Duration) string {
	mt := m.Metrics()
	cell := func(label string, value string) string {
		return labelStyle.Render(label) + "\n" + value
	}
	status := lipgloss.NewStyle().Foreground(statusColors[m.Status()]).Render(m.Status().String())

	cols := []string{
		cell("Comparisons:", fmt.Sprint(mt.Comparisons)),
		cell("Swaps:", fmt.Sprint(mt.Swaps)),
		cell("Writes:", fmt.Sprint(mt.Writes)),
		cell("Total Steps:", fmt.Sprint(m.Steps())),
		cell("Time:", fmt.Sprintf("%.2fs", elapsed.Seconds())),
		cell("Status:", status),
	}
	if m.Skipped() > 0 {
		cols = append(cols, cell("Skipped:", fmt.Sprint(m.Skipped())))
	}
	for i := range cols[:len(cols)-1] {
		cols[i] = lipgloss.NewStyle().PaddingRight(3).Render(cols[i])
	}
	return panelStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}
