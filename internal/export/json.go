package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/report"
)

type jsonExport struct {
	GeneratedOn string         `json:"generated_on"`
	Count       int            `json:"count"`
	TotalDebt   int            `json:"total_debt"`
	Health      int            `json:"health_score"`
	Decisions   []jsonDecision `json:"decisions"`
}

type jsonDecision struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Impact      int    `json:"impact"`
	Stress      int    `json:"stress"`
	Created     string `json:"created_date"`
	Due         string `json:"due_date,omitempty"`
	Resolved    string `json:"resolved_date,omitempty"`
	Debt        int    `json:"debt"`
	DaysOpen    int    `json:"days_open"`
	OverdueDays int    `json:"overdue_days"`
}

// ToJSON writes the items together with their aggregate summary. Summary
// totals only count active decisions.
func ToJSON(items []report.ScoredDecision, generatedOn time.Time, path string) error {
	var active []report.ScoredDecision
	for _, item := range items {
		if item.Decision.Active() {
			active = append(active, item)
		}
	}
	summary := report.Summarize(active)

	export := jsonExport{
		GeneratedOn: calendar.FormatDate(generatedOn),
		Count:       len(items),
		TotalDebt:   summary.TotalDebt,
		Health:      summary.Health,
		Decisions:   []jsonDecision{},
	}

	for _, item := range items {
		d := item.Decision
		export.Decisions = append(export.Decisions, jsonDecision{
			ID:          d.ID,
			Title:       d.Title,
			Category:    d.Category,
			Impact:      d.Impact,
			Stress:      d.Stress,
			Created:     calendar.FormatDate(d.CreatedDate),
			Due:         calendar.FormatOptional(d.DueDate),
			Resolved:    calendar.FormatOptional(d.ResolvedDate),
			Debt:        item.Debt,
			DaysOpen:    item.DaysOpen,
			OverdueDays: item.OverdueDays,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
