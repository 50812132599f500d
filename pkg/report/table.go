package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TableFormatter renders a Report as bordered terminal tables.
type TableFormatter struct {
	opts options
}

// NewTableFormatter creates a TableFormatter.
func NewTableFormatter(opts ...Option) *TableFormatter {
	return &TableFormatter{opts: newOptions(opts)}
}

func (f *TableFormatter) Format(r *Report) string {
	t := f.opts.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %s (%d %s)\n", t("Video"), r.Video.URLLocal, len(r.Entries), t("annotations"))
	if len(r.Entries) == 0 {
		return sb.String()
	}

	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, []string{e.GameTime, e.Position, e.Label, e.Team})
	}
	sb.WriteString(newTable(t("Time"), t("Frame"), t("Label"), t("Team")).Rows(rows...).Render())
	sb.WriteString("\n")

	teams := make([][]string, 0, len(r.ByTeam))
	for _, c := range r.ByTeam {
		teams = append(teams, []string{c.Name, fmt.Sprint(c.Count)})
	}
	sb.WriteString(newTable(t("Team"), t("Count")).Rows(teams...).Render())
	sb.WriteString("\n")

	return sb.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
