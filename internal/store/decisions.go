package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/domain"
	"github.com/sadopc/ddt/internal/scoring"
)

const decisionColumns = `id, title, category, impact, stress, created_date, due_date, resolved_date`

func (n *NewDecision) normalize() error {
	n.Title = strings.TrimSpace(n.Title)
	n.Category = strings.TrimSpace(n.Category)
	if n.Title == "" {
		return domain.Invalidf("title must not be empty")
	}
	if n.Category == "" {
		return domain.Invalidf("category must not be empty")
	}
	if err := scoring.ValidateRating("impact", n.Impact); err != nil {
		return err
	}
	if err := scoring.ValidateRating("stress", n.Stress); err != nil {
		return err
	}
	if n.CreatedDate.IsZero() {
		return domain.Invalidf("created date is required")
	}
	n.CreatedDate = calendar.Day(n.CreatedDate)
	if n.DueDate != nil {
		due := calendar.Day(*n.DueDate)
		n.DueDate = &due
	}
	return nil
}

// CreateDecision validates and inserts a decision. Nothing is written when
// validation fails.
func (s *Store) CreateDecision(n NewDecision) (*Decision, error) {
	if err := n.normalize(); err != nil {
		return nil, err
	}

	var due any
	if n.DueDate != nil {
		due = calendar.FormatDate(*n.DueDate)
	}

	res, err := s.db.Exec(
		`INSERT INTO decisions (title, category, impact, stress, created_date, due_date, resolved_date)
		 VALUES (?, ?, ?, ?, ?, ?, NULL)`,
		n.Title, n.Category, n.Impact, n.Stress, calendar.FormatDate(n.CreatedDate), due,
	)
	if err != nil {
		return nil, fmt.Errorf("insert decision: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert decision: %w", err)
	}
	return s.GetDecision(id)
}

func (s *Store) GetDecision(id int64) (*Decision, error) {
	row := s.db.QueryRow(`SELECT `+decisionColumns+` FROM decisions WHERE id = ?`, id)
	d, err := scanDecision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get decision %d: %w", id, domain.ErrDecisionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get decision %d: %w", id, err)
	}
	return d, nil
}

// ResolveDecision marks an active decision resolved. It returns false when
// the id is unknown or the decision was already resolved; resolved_date is
// never overwritten.
func (s *Store) ResolveDecision(id int64, resolved time.Time) (bool, error) {
	res, err := s.db.Exec(
		`UPDATE decisions SET resolved_date = ? WHERE id = ? AND resolved_date IS NULL`,
		calendar.FormatDate(calendar.Day(resolved)), id,
	)
	if err != nil {
		return false, fmt.Errorf("resolve decision %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve decision %d: %w", id, err)
	}
	return n > 0, nil
}

// ListDecisions returns decisions ordered by id ascending.
func (s *Store) ListDecisions(includeResolved bool) ([]Decision, error) {
	query := `SELECT ` + decisionColumns + ` FROM decisions`
	if !includeResolved {
		query += ` WHERE resolved_date IS NULL`
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var decisions []Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, *d)
	}
	return decisions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDecision(r rowScanner) (*Decision, error) {
	d := &Decision{}
	var created string
	var due, resolved sql.NullString
	if err := r.Scan(&d.ID, &d.Title, &d.Category, &d.Impact, &d.Stress, &created, &due, &resolved); err != nil {
		return nil, err
	}

	var err error
	if d.CreatedDate, err = calendar.ParseDate(created); err != nil {
		return nil, fmt.Errorf("decision %d created_date: %w", d.ID, err)
	}
	if due.Valid {
		if d.DueDate, err = calendar.ParseOptionalDate(due.String); err != nil {
			return nil, fmt.Errorf("decision %d due_date: %w", d.ID, err)
		}
	}
	if resolved.Valid {
		if d.ResolvedDate, err = calendar.ParseOptionalDate(resolved.String); err != nil {
			return nil, fmt.Errorf("decision %d resolved_date: %w", d.ID, err)
		}
	}
	return d, nil
}
