package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/artem13815/cvdesk/pkg/cv"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func renderStats(s cv.Stats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard"))
	b.WriteString("\n")
	for _, row := range []struct {
		label string
		value int
	}{
		{"Total CVs", s.TotalCVs},
		{"Processed CVs", s.ProcessedCVs},
		{"Distinct tags", s.TotalTags},
		{"Remaining uploads", s.RemainingUploads},
	} {
		fmt.Fprintf(&b, "  %s %d\n", labelStyle.Render(row.label+":"), row.value)
	}
	return b.String()
}

func renderFacets(f cv.Facets) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filters"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Tags:"), joinOrDash(f.Tags))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Skills:"), joinOrDash(f.Skills))
	return b.String()
}

func renderQuota(q cv.QuotaInfo) string {
	return fmt.Sprintf("%s %s\n  %s %d\n  %s %d\n  %s %d\n",
		labelStyle.Render("User:"), q.UserID,
		labelStyle.Render("Max:"), q.Max,
		labelStyle.Render("Used:"), q.Count,
		labelStyle.Render("Remaining:"), q.Remaining)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
