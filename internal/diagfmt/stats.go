package diagfmt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skc/internal/arena"
)

var (
	statsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	statsKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statsBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// ArenaPanel renders the arena introspection values as a bordered panel.
func ArenaPanel(title string, s arena.Stats) string {
	mode := "packed"
	if s.Aligned {
		mode = "aligned"
	}
	rows := [][2]string{
		{"mode", mode},
		{"block size", fmt.Sprintf("%d B", s.BlockSize)},
		{"capacity", fmt.Sprintf("%d B", s.Capacity)},
		{"bitmap", fmt.Sprintf("%d B", s.BitmapSize)},
		{"used", fmt.Sprintf("%d B (%.1f%%)", s.Used, usedPercent(s))},
		{"regions", fmt.Sprintf("%d / %d", s.Regions, s.MaxRegions)},
	}

	var b strings.Builder
	b.WriteString(statsTitleStyle.Render(title))
	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(statsKeyStyle.Render(fmt.Sprintf("%-11s", row[0])))
		b.WriteString(row[1])
	}
	return statsBoxStyle.Render(b.String())
}

func usedPercent(s arena.Stats) float64 {
	total := s.Capacity * s.Regions
	if total == 0 {
		return 0
	}
	return float64(s.Used) * 100 / float64(total)
}
