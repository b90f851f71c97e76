package intake

import (
	"fmt"
	"strings"

	"ewintr.nl/learnpath/model"
	"ewintr.nl/learnpath/render"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	summaryDays   = 3
	minTitleWidth = 20
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dayStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle    = lipgloss.NewStyle().PaddingRight(2)
)

// Summary renders a short overview of a finished plan for the terminal.
// Titles are truncated to fit width.
func Summary(plan *model.Plan, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Learning path for %s", plan.Profile.Topic)))
	b.WriteString("\n\n")

	byPhase := plan.CatalogByPhase()
	names := []string{headerStyle.Render("Phase")}
	counts := []string{headerStyle.Render("Videos")}
	for _, p := range model.Phases() {
		names = append(names, p.Name())
		counts = append(counts, fmt.Sprintf("%d", len(byPhase[p])))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		cellStyle.Render(strings.Join(names, "\n")),
		cellStyle.Render(strings.Join(counts, "\n")),
	))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d videos, %s in total, %d days\n\n",
		len(plan.Catalog), render.FormatDuration(plan.TotalDuration()), len(plan.Schedule)))

	titleWidth := width - 12
	if titleWidth < minTitleWidth {
		titleWidth = minTitleWidth
	}
	for i, day := range plan.Schedule {
		if i == summaryDays {
			b.WriteString(fmt.Sprintf("... and %d more days\n", len(plan.Schedule)-summaryDays))
			break
		}
		b.WriteString(dayStyle.Render(fmt.Sprintf("Day %d (%s)", day.DayIndex, render.FormatDuration(day.Total()))))
		b.WriteString("\n")
		for _, v := range day.Videos {
			title := truncate.StringWithTail(v.Title, uint(titleWidth), "...")
			b.WriteString(fmt.Sprintf("  %-6s %s\n", render.FormatDuration(v.Duration), title))
		}
	}

	if len(plan.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range plan.Warnings {
			b.WriteString(warningStyle.Render("! " + w))
			b.WriteString("\n")
		}
	}

	return b.String()
}
