package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/report"
)

var csvHeader = []string{"ID", "Title", "Category", "Impact", "Stress", "Created", "Due", "Resolved", "Debt", "Days Open", "Overdue Days"}

func ToCSV(items []report.ScoredDecision, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, item := range items {
		d := item.Decision
		row := []string{
			strconv.FormatInt(d.ID, 10),
			d.Title,
			d.Category,
			strconv.Itoa(d.Impact),
			strconv.Itoa(d.Stress),
			calendar.FormatDate(d.CreatedDate),
			calendar.FormatOptional(d.DueDate),
			calendar.FormatOptional(d.ResolvedDate),
			strconv.Itoa(item.Debt),
			strconv.Itoa(item.DaysOpen),
			strconv.Itoa(item.OverdueDays),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
