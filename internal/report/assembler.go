// Package report ranks active decisions by debt and renders summaries.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/scoring"
	"github.com/sadopc/ddt/internal/store"
)

// ScoredDecision pairs a decision with its debt as of a given day.
type ScoredDecision struct {
	Decision store.Decision
	scoring.DebtBreakdown
}

// Summary aggregates the ranked active decisions.
type Summary struct {
	Active      int
	TotalDebt   int
	AverageDebt float64
	Health      int
}

// Rank scores every active decision against today and orders them by debt
// descending, then id ascending. Resolved decisions are skipped.
func Rank(decisions []store.Decision, today time.Time) ([]ScoredDecision, error) {
	var ranked []ScoredDecision
	for _, d := range decisions {
		if !d.Active() {
			continue
		}
		b, err := scoring.ComputeDebt(scoring.DebtInput{
			Created: d.CreatedDate,
			Due:     d.DueDate,
			Impact:  d.Impact,
			Stress:  d.Stress,
			Today:   today,
		})
		if err != nil {
			return nil, fmt.Errorf("score decision %d: %w", d.ID, err)
		}
		ranked = append(ranked, ScoredDecision{Decision: d, DebtBreakdown: b})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Debt != ranked[j].Debt {
			return ranked[i].Debt > ranked[j].Debt
		}
		return ranked[i].Decision.ID < ranked[j].Decision.ID
	})
	return ranked, nil
}

// Summarize totals ranked decisions. AverageDebt is rounded to one decimal.
func Summarize(ranked []ScoredDecision) Summary {
	total := 0
	for _, r := range ranked {
		total += r.Debt
	}
	avg := 0.0
	if len(ranked) > 0 {
		avg = math.Round(float64(total)/float64(len(ranked))*10) / 10
	}
	return Summary{
		Active:      len(ranked),
		TotalDebt:   total,
		AverageDebt: avg,
		Health:      scoring.ComputeHealthScore(total),
	}
}

// AppendResolved appends the resolved decisions, in input order, after the
// ranked ones. Resolved decisions carry no debt; DaysOpen is the time it
// took to resolve them.
func AppendResolved(ranked []ScoredDecision, decisions []store.Decision) []ScoredDecision {
	out := append([]ScoredDecision(nil), ranked...)
	for _, d := range decisions {
		if d.Active() {
			continue
		}
		out = append(out, ScoredDecision{
			Decision:      d,
			DebtBreakdown: scoring.DebtBreakdown{DaysOpen: max(0, calendar.DaysBetween(d.CreatedDate, *d.ResolvedDate))},
		})
	}
	return out
}

// Top returns at most n items. n <= 0 returns everything.
func Top(ranked []ScoredDecision, n int) []ScoredDecision {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
