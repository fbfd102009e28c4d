package cli

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/domain"
	"github.com/sadopc/ddt/internal/export"
	"github.com/sadopc/ddt/internal/report"
	"github.com/sadopc/ddt/internal/scoring"
	"github.com/sadopc/ddt/internal/store"
	"github.com/sadopc/ddt/internal/tui"
)

func (a *App) cmdAdd(s *store.Store, args []string) error {
	fs := a.newFlagSet("add")
	title := fs.String("title", "", "decision title")
	category := fs.String("category", "", "decision category (default from settings)")
	impact := fs.Int("impact", 0, "impact 1-5")
	stress := fs.Int("stress", 0, "stress 1-5")
	created := fs.String("created", "", "created date YYYY-MM-DD (default today)")
	due := fs.String("due", "", "due date YYYY-MM-DD")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "title", "impact", "stress"); err != nil {
		return err
	}
	if err := scoring.ValidateRating("impact", *impact); err != nil {
		return err
	}
	if err := scoring.ValidateRating("stress", *stress); err != nil {
		return err
	}

	createdDate := a.clock.Today()
	if *created != "" {
		d, err := calendar.ParseDate(*created)
		if err != nil {
			return err
		}
		createdDate = d
	}
	dueDate, err := calendar.ParseOptionalDate(*due)
	if err != nil {
		return err
	}

	cat := *category
	if !isFlagSet(fs, "category") {
		cat = s.DefaultCategory()
	}

	d, err := s.CreateDecision(store.NewDecision{
		Title:       *title,
		Category:    cat,
		Impact:      *impact,
		Stress:      *stress,
		CreatedDate: createdDate,
		DueDate:     dueDate,
	})
	if err != nil {
		return err
	}
	a.log.Debug("decision added", zap.Int64("id", d.ID), zap.String("category", d.Category))
	fmt.Fprintf(a.stdout, "Added decision #%d: %s\n", d.ID, d.Title)
	return nil
}

func (a *App) cmdResolve(s *store.Store, args []string) error {
	fs := a.newFlagSet("resolve")
	id := fs.Int64("id", 0, "decision id")
	resolved := fs.String("resolved", "", "resolved date YYYY-MM-DD (default today)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id"); err != nil {
		return err
	}

	resolvedDate := a.clock.Today()
	if *resolved != "" {
		d, err := calendar.ParseDate(*resolved)
		if err != nil {
			return err
		}
		resolvedDate = d
	}

	ok, err := s.ResolveDecision(*id, resolvedDate)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("decision #%d: %w", *id, domain.ErrNotResolvable)
	}
	a.log.Debug("decision resolved", zap.Int64("id", *id), zap.String("resolved", calendar.FormatDate(resolvedDate)))
	fmt.Fprintf(a.stdout, "Resolved decision #%d\n", *id)
	return nil
}

func (a *App) cmdList(s *store.Store, args []string) error {
	fs := a.newFlagSet("list")
	all := fs.Bool("all", false, "include resolved decisions")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	decisions, err := s.ListDecisions(*all)
	if err != nil {
		return err
	}
	if len(decisions) == 0 {
		fmt.Fprintln(a.stdout, "No decisions found.")
		return nil
	}
	ranked, err := report.Rank(decisions, a.clock.Today())
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(a.styles.heading.Render("Active decisions (sorted by debt):") + "\n")
	if len(ranked) == 0 {
		b.WriteString("  None.\n")
	}
	for _, r := range ranked {
		fmt.Fprintf(&b, "  #%d [%s] debt=%s days_open=%3d overdue=%3d due=%s  %s\n",
			r.Decision.ID,
			r.Decision.Category,
			a.styles.debt(r.Debt).Render(fmt.Sprintf("%3d", r.Debt)),
			r.DaysOpen,
			r.OverdueDays,
			dueText(r.Decision),
			r.Decision.Title,
		)
	}

	if *all {
		var resolved []store.Decision
		for _, d := range decisions {
			if !d.Active() {
				resolved = append(resolved, d)
			}
		}
		if len(resolved) > 0 {
			b.WriteString("\n" + a.styles.heading.Render("Resolved decisions:") + "\n")
			for _, d := range resolved {
				fmt.Fprintf(&b, "  #%d [%s] resolved=%s  %s\n",
					d.ID, d.Category, a.styles.muted.Render(calendar.FormatOptional(d.ResolvedDate)), d.Title)
			}
		}
	}
	fmt.Fprint(a.stdout, b.String())
	return nil
}

func (a *App) cmdSummary(s *store.Store, args []string) error {
	fs := a.newFlagSet("summary")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ranked, err := a.rankActive(s)
	if err != nil {
		return err
	}
	sum := report.Summarize(ranked)
	fmt.Fprintf(a.stdout, "Active decisions: %d\n", sum.Active)
	fmt.Fprintf(a.stdout, "Total debt: %d\n", sum.TotalDebt)
	fmt.Fprintf(a.stdout, "Average debt: %.1f\n", sum.AverageDebt)
	fmt.Fprintf(a.stdout, "Decision health score: %s/100\n", a.styles.health(sum.Health).Render(fmt.Sprint(sum.Health)))
	return nil
}

func (a *App) cmdReport(s *store.Store, args []string) error {
	fs := a.newFlagSet("report")
	week := fs.String("week", "", "ISO week YYYY-WW or YYYY-Www (default current week)")
	top := fs.Int("top", 0, "number of top decisions to include")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	today := a.clock.Today()
	label := calendar.ISOWeekKey(today)
	if *week != "" {
		y, w, err := calendar.ParseWeek(*week)
		if err != nil {
			return err
		}
		label = calendar.WeekLabel(y, w)
	}

	topN := a.reportTopN(s)
	if isFlagSet(fs, "top") {
		if *top < 1 {
			return domain.Invalidf("--top must be at least 1, got %d", *top)
		}
		topN = *top
	}

	ranked, err := a.rankActive(s)
	if err != nil {
		return err
	}
	path, err := report.WriteMarkdown(report.NewWeekly(label, today, ranked, topN), a.cfg.ReportsDir)
	if err != nil {
		return err
	}
	a.log.Debug("report written", zap.String("path", path), zap.Int("top", topN))
	fmt.Fprintf(a.stdout, "Wrote report: %s\n", path)
	return nil
}

func (a *App) cmdExport(s *store.Store, args []string) error {
	fs := a.newFlagSet("export")
	format := fs.String("format", "csv", "export format: csv or json")
	out := fs.String("out", "", "output file (default ddt-export-<date>.<format>)")
	all := fs.Bool("all", false, "include resolved decisions")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	f := strings.ToLower(strings.TrimSpace(*format))
	if f != "csv" && f != "json" {
		return domain.Invalidf("unknown export format %q: expected csv or json", *format)
	}

	today := a.clock.Today()
	path := *out
	if path == "" {
		path = filepath.Join(".", fmt.Sprintf("ddt-export-%s.%s", calendar.FormatDate(today), f))
	}

	decisions, err := s.ListDecisions(*all)
	if err != nil {
		return err
	}
	ranked, err := report.Rank(decisions, today)
	if err != nil {
		return err
	}
	items := ranked
	if *all {
		items = report.AppendResolved(ranked, decisions)
	}

	switch f {
	case "csv":
		err = export.ToCSV(items, path)
	case "json":
		err = export.ToJSON(items, today, path)
	}
	if err != nil {
		return err
	}
	a.log.Debug("export written", zap.String("path", path), zap.String("format", f), zap.Int("count", len(items)))
	fmt.Fprintf(a.stdout, "Exported %d decisions to %s\n", len(items), path)
	return nil
}

func (a *App) cmdSettings(s *store.Store, args []string) error {
	if len(args) > 0 && args[0] == "set" {
		if len(args) != 3 {
			return domain.Invalidf("usage: ddt settings set KEY VALUE")
		}
		if err := s.SetSetting(args[1], args[2]); err != nil {
			return err
		}
		v, err := s.GetSetting(args[1])
		if err != nil {
			return err
		}
		a.log.Debug("setting changed", zap.String("key", args[1]), zap.String("value", v))
		fmt.Fprintf(a.stdout, "Set %s = %s\n", args[1], v)
		return nil
	}

	fs := a.newFlagSet("settings")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	settings, err := s.GetAllSettings()
	if err != nil {
		return err
	}
	for _, st := range settings {
		fmt.Fprintf(a.stdout, "%s = %s\n", st.Key, st.Value)
	}
	return nil
}

func (a *App) cmdTUI(s *store.Store, args []string) error {
	fs := a.newFlagSet("tui")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	run := a.runTUI
	if run == nil {
		run = tui.Run
	}
	return run(s, a.clock, a.cfg.ReportsDir)
}

func (a *App) rankActive(s *store.Store) ([]report.ScoredDecision, error) {
	decisions, err := s.ListDecisions(false)
	if err != nil {
		return nil, err
	}
	return report.Rank(decisions, a.clock.Today())
}

// reportTopN prefers the configured value over the stored setting.
func (a *App) reportTopN(s *store.Store) int {
	if a.cfg.ReportTopN > 0 {
		return a.cfg.ReportTopN
	}
	return s.ReportTopN()
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func dueText(d store.Decision) string {
	if d.DueDate == nil {
		return "-"
	}
	return calendar.FormatDate(*d.DueDate)
}
