package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"balanz_export/internal/config"
)

type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "force a fresh login and refresh the cached token" }
func (*loginCmd) Usage() string {
	return `login

  Runs the two-step login handshake, ignoring any cached token, and
  writes the fresh token to the token cache file.
`
}

func (*loginCmd) SetFlags(_ *flag.FlagSet) {}

func (*loginCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	client := newClient(cfg)
	if err := client.Relogin(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Fresh token written to %s\n", cfg.TokenFile)
	return subcommands.ExitSuccess
}
