package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sadopc/ddt/internal/domain"
)

const (
	SettingReportTopN      = "report_top_n"
	SettingDefaultCategory = "default_category"

	DefaultReportTopN = 10
	MaxReportTopN     = 100
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a known setting after validating its value.
func (s *Store) SetSetting(key, value string) error {
	value = strings.TrimSpace(value)
	if err := validateSetting(key, value); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// ReportTopN returns how many decisions a weekly report lists.
func (s *Store) ReportTopN() int {
	v, err := s.GetSetting(SettingReportTopN)
	if err != nil {
		return DefaultReportTopN
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return DefaultReportTopN
	}
	return n
}

// DefaultCategory returns the category pre-filled when adding interactively.
func (s *Store) DefaultCategory() string {
	v, err := s.GetSetting(SettingDefaultCategory)
	if err != nil || v == "" {
		return "general"
	}
	return v
}

func validateSetting(key, value string) error {
	switch key {
	case SettingReportTopN:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > MaxReportTopN {
			return domain.Invalidf("%s must be a whole number between 1 and %d", key, MaxReportTopN)
		}
	case SettingDefaultCategory:
		if value == "" {
			return domain.Invalidf("%s must not be empty", key)
		}
	default:
		return fmt.Errorf("%q: %w", key, domain.ErrUnknownSetting)
	}
	return nil
}
