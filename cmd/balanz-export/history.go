package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"balanz_export/internal/config"
	"balanz_export/internal/database"
	"balanz_export/internal/repository"
)

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recent export runs" }
func (*historyCmd) Usage() string {
	return `history [-n <count>]

  Lists recent export runs from the run-history database, newest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of runs to show")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := config.New()

	db, err := database.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	hist := repository.NewRunHistoryRepository(db)
	runs, err := hist.Recent(c.limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tTICKERS\tFLOWS\tDURATION\tOUTPUT")
	for _, run := range runs {
		detail := run.OutputDir
		if run.Status == "error" {
			detail = run.ErrorMessage
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%dms\t%s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Status,
			run.TickersResolved,
			run.CashFlowRows,
			run.DurationMs,
			detail,
		)
	}
	w.Flush()

	return subcommands.ExitSuccess
}
