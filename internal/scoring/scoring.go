// Package scoring computes decision debt and the aggregate health score.
//
// Debt is a bounded 0..100 projection of a decision's age, severity and
// overdue status against a reference day. It is never stored: callers
// recompute it whenever "today" may have changed.
package scoring

import (
	"math"
	"time"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/domain"
)

const (
	MinRating = 1
	MaxRating = 5
	MaxDebt   = 100

	// GrowthTau is the time constant, in days, of the age saturation curve.
	GrowthTau = 21.0
	// OverdueWindow is the number of overdue days at which the boost is capped.
	OverdueWindow   = 30.0
	MaxOverdueBoost = 0.5
	// HealthTau is the decay constant of the health score over total debt.
	HealthTau = 200.0
)

// DebtInput holds the static attributes of a decision plus the reference day.
type DebtInput struct {
	Created time.Time
	Due     *time.Time
	Impact  int
	Stress  int
	Today   time.Time
}

// DebtBreakdown is the result of ComputeDebt. Severity, Growth and
// OverdueBoost are kept for display.
type DebtBreakdown struct {
	Debt         int
	DaysOpen     int
	OverdueDays  int
	Severity     float64
	Growth       float64
	OverdueBoost float64
}

// ValidateRating checks that an impact or stress value is within [1,5].
func ValidateRating(name string, v int) error {
	if v < MinRating || v > MaxRating {
		return domain.Invalidf("%s must be between %d and %d", name, MinRating, MaxRating)
	}
	return nil
}

// ComputeDebt scores a single decision:
//
//	severity      = (impact + stress) / 10
//	growth        = 1 - exp(-days_open / 21)
//	overdue_boost = 1 + min(0.5, overdue_days / 30)
//	debt          = round(clamp(100 * growth * severity * overdue_boost, 0, 100))
//
// Future-dated creation and due dates clamp to zero days.
func ComputeDebt(in DebtInput) (DebtBreakdown, error) {
	if err := ValidateRating("impact", in.Impact); err != nil {
		return DebtBreakdown{}, err
	}
	if err := ValidateRating("stress", in.Stress); err != nil {
		return DebtBreakdown{}, err
	}

	daysOpen := max(0, calendar.DaysBetween(in.Created, in.Today))

	overdueDays := 0
	if in.Due != nil {
		overdueDays = max(0, calendar.DaysBetween(*in.Due, in.Today))
	}

	severity := float64(in.Impact+in.Stress) / 10.0
	growth := 1.0 - math.Exp(-float64(daysOpen)/GrowthTau)
	boost := 1.0 + math.Min(MaxOverdueBoost, float64(overdueDays)/OverdueWindow)

	raw := 100.0 * growth * severity * boost

	return DebtBreakdown{
		Debt:         int(math.Round(clamp(raw, 0, MaxDebt))),
		DaysOpen:     daysOpen,
		OverdueDays:  overdueDays,
		Severity:     severity,
		Growth:       growth,
		OverdueBoost: boost,
	}, nil
}

// ComputeHealthScore maps total outstanding debt to 0..100, higher is better.
// Zero debt is exactly 100; every ~139 points of debt halves the score.
func ComputeHealthScore(totalDebt int) int {
	if totalDebt < 0 {
		totalDebt = 0
	}
	health := 100.0 * math.Exp(-float64(totalDebt)/HealthTau)
	return int(math.Round(clamp(health, 0, 100)))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
