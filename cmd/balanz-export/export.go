package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"

	"balanz_export/internal/broker/balanz"
	"balanz_export/internal/config"
	"balanz_export/internal/database"
	"balanz_export/internal/export"
	"balanz_export/internal/reconcile"
	"balanz_export/internal/repository"
	"balanz_export/internal/watchlist"
)

type exportCmd struct {
	watchlistFile string
	outputDir     string
	settlement    int
	dumpAccount   string
	skipFailed    bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "resolve the watch-list and write the CSV book" }
func (*exportCmd) Usage() string {
	return `export [-watchlist <file>] [-out <dir>] [-settlement {0|1}] [-skip-failed] [-dump-account <file>]

  Resolves every ticker in the watch-list against the account's holdings
  snapshot, falling back to a live quote lookup, and writes two CSV
  sheets: Titulos (resolved quotes) and Flujos (projected cash flow).

  Credentials come from BALANZ_USER, BALANZ_PASSWORD and
  BALANZ_ACCOUNT_ID.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.watchlistFile, "watchlist", "", "Watch-list file (default: WATCHLIST_FILE or quotes.json)")
	f.StringVar(&c.outputDir, "out", "", "Output directory for the CSV book (default: OUTPUT_DIR or .)")
	f.IntVar(&c.settlement, "settlement", int(balanz.SettlementStandard), "Settlement period for quote lookups: 0 immediate, 1 standard")
	f.BoolVar(&c.skipFailed, "skip-failed", false, "Skip tickers that fail to resolve instead of aborting")
	f.StringVar(&c.dumpAccount, "dump-account", "", "Also write the raw holdings snapshot as JSON to this file")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if c.watchlistFile != "" {
		cfg.WatchlistFile = c.watchlistFile
	}
	if c.outputDir != "" {
		cfg.OutputDir = c.outputDir
	}
	if c.skipFailed {
		cfg.SkipFailedTickers = true
	}
	if c.settlement != 0 && c.settlement != 1 {
		fmt.Fprintln(os.Stderr, "Error: -settlement must be 0 or 1")
		return subcommands.ExitUsageError
	}

	// Run history is best-effort: a missing or broken database never
	// blocks an export.
	hist, runID := startRun(cfg.DBPath)

	tickersResolved, cashFlowRows, err := c.run(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hist != nil {
			hist.Fail(runID, err.Error())
		}
		return subcommands.ExitFailure
	}
	if hist != nil {
		if err := hist.Complete(runID, tickersResolved, cashFlowRows, cfg.OutputDir); err != nil {
			log.Printf("[Export] Could not record run completion: %v", err)
		}
	}
	return subcommands.ExitSuccess
}

func (c *exportCmd) run(cfg *config.Config) (tickersResolved, cashFlowRows int, err error) {
	tickers, err := watchlist.Load(cfg.WatchlistFile)
	if err != nil {
		return 0, 0, err
	}
	log.Printf("[Export] Read %d tickers from %s", len(tickers), cfg.WatchlistFile)

	client := newClient(cfg)

	if c.dumpAccount != "" {
		if err := dumpAccountStatus(client, c.dumpAccount); err != nil {
			return 0, 0, err
		}
	}

	rec := reconcile.New(client)
	rec.Settlement = balanz.Settlement(c.settlement)
	rec.SkipFailed = cfg.SkipFailedTickers

	quoteRows, err := rec.Quotes(tickers)
	if err != nil {
		return 0, 0, err
	}

	flowRows, err := rec.CashFlows()
	if err != nil {
		return 0, 0, err
	}

	book := export.Book{
		export.TitulosSheet(quoteRows),
		export.FlujosSheet(flowRows),
	}
	if err := export.WriteCSV(cfg.OutputDir, book); err != nil {
		return 0, 0, err
	}

	return len(quoteRows), len(flowRows), nil
}

// dumpAccountStatus writes the raw holdings snapshot as indented JSON.
func dumpAccountStatus(client *balanz.Client, path string) error {
	holdings, err := client.AccountStatus()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(holdings, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing account snapshot: %w", err)
	}
	log.Printf("[Export] Wrote holdings snapshot to %s", path)
	return nil
}

// newClient builds the broker client from configuration.
func newClient(cfg *config.Config) *balanz.Client {
	cache := balanz.NewTokenCache(cfg.TokenFile)
	client := balanz.NewClient(balanz.Credentials{
		Username:  cfg.Username,
		Password:  cfg.Password,
		AccountID: cfg.AccountID,
	}, cache)
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.HTTPTimeout)
	client.ReloginOn401 = cfg.ReloginOn401
	return client
}

// startRun opens the run-history store and records a started run.
func startRun(dbPath string) (*repository.RunHistoryRepository, int64) {
	db, err := database.New(dbPath)
	if err != nil {
		log.Printf("[Export] Run history unavailable: %v", err)
		return nil, 0
	}
	if err := db.RunMigrations(); err != nil {
		log.Printf("[Export] Run history unavailable: %v", err)
		db.Close()
		return nil, 0
	}

	hist := repository.NewRunHistoryRepository(db)
	id, err := hist.Start()
	if err != nil {
		log.Printf("[Export] Could not record run start: %v", err)
		db.Close()
		return nil, 0
	}
	return hist, id
}
