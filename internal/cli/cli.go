// Package cli implements the ddt command surface.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/config"
	"github.com/sadopc/ddt/internal/domain"
	"github.com/sadopc/ddt/internal/store"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1 // storage or other internal failure
	ExitInvalid  = 2 // bad input or usage
	ExitNotFound = 3 // unknown or already resolved decision
)

// Options carries the process dependencies so commands can be tested.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Clock  calendar.Clock
	Config config.Config
	Logger *zap.Logger

	// RunTUI starts the interactive UI. Nil uses the bubbletea program.
	RunTUI func(s *store.Store, clock calendar.Clock, reportsDir string) error
}

// App holds per-invocation state shared by commands.
type App struct {
	stdout io.Writer
	stderr io.Writer
	clock  calendar.Clock
	cfg    config.Config
	log    *zap.Logger
	styles styles
	runTUI func(s *store.Store, clock calendar.Clock, reportsDir string) error
}

type command struct {
	name    string
	summary string
	run     func(a *App, s *store.Store, args []string) error
}

var commands = []command{
	{"add", "Add a new decision", (*App).cmdAdd},
	{"resolve", "Mark a decision resolved", (*App).cmdResolve},
	{"list", "List decisions sorted by debt", (*App).cmdList},
	{"summary", "Show totals and health score", (*App).cmdSummary},
	{"report", "Write the weekly Markdown report", (*App).cmdReport},
	{"export", "Export decisions as CSV or JSON", (*App).cmdExport},
	{"settings", "Show or change settings", (*App).cmdSettings},
	{"tui", "Open the interactive terminal UI", (*App).cmdTUI},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Run executes one command and returns the process exit code. The store is
// opened only for known commands and always closed before returning.
func Run(args []string, opts Options) int {
	a := newApp(opts)

	global := flag.NewFlagSet("ddt", flag.ContinueOnError)
	global.SetOutput(a.stderr)
	global.Usage = func() { a.usage(a.stderr) }
	dbPath := global.String("db", a.cfg.DBPath, "path to SQLite database file")
	reportsDir := global.String("reports-dir", a.cfg.ReportsDir, "directory for weekly reports")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitInvalid
	}
	a.cfg.DBPath = *dbPath
	a.cfg.ReportsDir = *reportsDir

	rest := global.Args()
	if len(rest) == 0 {
		a.usage(a.stderr)
		return ExitInvalid
	}
	if rest[0] == "help" {
		a.usage(a.stdout)
		return ExitOK
	}

	cmd, ok := findCommand(rest[0])
	if !ok {
		fmt.Fprintf(a.stderr, "Error: unknown command %q\n\n", rest[0])
		a.usage(a.stderr)
		return ExitInvalid
	}

	s, err := store.New(a.cfg.DBPath)
	if err != nil {
		a.log.Error("open store failed", zap.String("path", a.cfg.DBPath), zap.Error(err))
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return ExitFailure
	}
	defer s.Close()

	if err := cmd.run(a, s, rest[1:]); err != nil {
		return a.fail(cmd.name, err)
	}
	return ExitOK
}

func newApp(opts Options) *App {
	a := &App{
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		clock:  opts.Clock,
		cfg:    opts.Config,
		log:    opts.Logger,
		runTUI: opts.RunTUI,
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	if a.clock == nil {
		a.clock = calendar.SystemClock
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.cfg.ReportsDir == "" {
		a.cfg.ReportsDir = "reports"
	}
	a.styles = newStyles(lipgloss.NewRenderer(a.stdout))
	return a
}

// fail reports err and maps its classification to an exit code.
func (a *App) fail(name string, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	switch domain.CodeOf(err) {
	case domain.ErrCodeInvalid:
		a.log.Debug("invalid input", zap.String("command", name), zap.Error(err))
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return ExitInvalid
	case domain.ErrCodeNotFound, domain.ErrCodeConflict:
		a.log.Debug("target not found", zap.String("command", name), zap.Error(err))
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return ExitNotFound
	default:
		a.log.Error("command failed", zap.String("command", name), zap.Error(err))
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return ExitFailure
	}
}

func (a *App) usage(w io.Writer) {
	var b strings.Builder
	b.WriteString("ddt - Decision Debt Tracker\n\n")
	b.WriteString("Usage: ddt [--db PATH] [--reports-dir DIR] <command> [flags]\n\n")
	b.WriteString("Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-9s %s\n", c.name, c.summary)
	}
	b.WriteString("\nRun 'ddt <command> -h' for command flags.\n")
	fmt.Fprint(w, b.String())
}

// newFlagSet builds a subcommand flag set that reports parse errors as
// invalid input.
func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("ddt "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return domain.WrapError(domain.ErrCodeInvalid, "bad arguments", err)
	}
	if fs.NArg() > 0 {
		return domain.Invalidf("unexpected argument %q", fs.Arg(0))
	}
	return nil
}

// requireFlags fails unless every named flag was given explicitly.
func requireFlags(fs *flag.FlagSet, names ...string) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	var missing []string
	for _, n := range names {
		if !set[n] {
			missing = append(missing, "--"+n)
		}
	}
	if len(missing) > 0 {
		return domain.Invalidf("missing required flag(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
