package store

import "time"

// Decision is a deferred decision. Dates are calendar days at midnight UTC.
type Decision struct {
	ID           int64
	Title        string
	Category     string
	Impact       int
	Stress       int
	CreatedDate  time.Time
	DueDate      *time.Time
	ResolvedDate *time.Time
}

// Active reports whether the decision is still unresolved.
func (d Decision) Active() bool {
	return d.ResolvedDate == nil
}

// NewDecision is the input to CreateDecision.
type NewDecision struct {
	Title       string
	Category    string
	Impact      int
	Stress      int
	CreatedDate time.Time
	DueDate     *time.Time
}

type Setting struct {
	Key   string
	Value string
}
