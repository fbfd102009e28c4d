package main

import (
	"fmt"
	"os"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/cli"
	"github.com/sadopc/ddt/internal/config"
	"github.com/sadopc/ddt/internal/logger"
	"github.com/sadopc/ddt/internal/store"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using ./ddt.db\n", err)
		dbPath = "ddt.db"
	}

	cfg := config.Load(dbPath)
	log := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	}, os.Stderr)

	code := cli.Run(os.Args[1:], cli.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Clock:  calendar.SystemClock,
		Config: cfg,
		Logger: log,
	})
	_ = log.Sync()
	os.Exit(code)
}
