package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/ddt/internal/calendar"
)

var reflectionPrompts = []string{
	"What is one decision I can close in 20 minutes?",
	"What is one decision I keep avoiding, and why?",
	"If I reduce my total debt by 25 points this week, what changes?",
}

// WeeklyReport is the rendering target of a weekly Markdown report.
type WeeklyReport struct {
	Week        string
	GeneratedOn time.Time
	Summary     Summary
	TopItems    []ScoredDecision
}

// NewWeekly builds a report for the given week label from ranked decisions.
func NewWeekly(week string, generatedOn time.Time, ranked []ScoredDecision, topN int) WeeklyReport {
	return WeeklyReport{
		Week:        week,
		GeneratedOn: generatedOn,
		Summary:     Summarize(ranked),
		TopItems:    Top(ranked, topN),
	}
}

// RenderMarkdown renders the report without writing it anywhere.
func RenderMarkdown(r WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Decision Debt Report: %s\n\n", r.Week)
	fmt.Fprintf(&b, "Generated on: %s\n\n", calendar.FormatDate(r.GeneratedOn))

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Active decisions: %d\n", r.Summary.Active)
	fmt.Fprintf(&b, "- Total debt: %d\n", r.Summary.TotalDebt)
	fmt.Fprintf(&b, "- Decision health score: %d/100\n\n", r.Summary.Health)

	b.WriteString("## Top debt drivers\n")
	if len(r.TopItems) == 0 {
		b.WriteString("_No active decisions._\n")
	} else {
		b.WriteString("| ID | Title | Category | Debt | Days Open | Overdue Days | Due |\n")
		b.WriteString("|---:|---|---|---:|---:|---:|---|\n")
		for _, item := range r.TopItems {
			d := item.Decision
			fmt.Fprintf(&b, "| %d | %s | %s | %d | %d | %d | %s |\n",
				d.ID, escapeCell(d.Title), escapeCell(d.Category),
				item.Debt, item.DaysOpen, item.OverdueDays, calendar.FormatOptional(d.DueDate),
			)
		}
	}

	b.WriteString("\n## Reflection prompts\n")
	for _, p := range reflectionPrompts {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}

// WriteMarkdown writes <dir>/<week>.md, creating dir if needed.
func WriteMarkdown(r WeeklyReport, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	path := filepath.Join(dir, r.Week+".md")
	if err := os.WriteFile(path, []byte(RenderMarkdown(r)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
