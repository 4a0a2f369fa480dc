// Command balanz-export reconciles a ticker watch-list against a Balanz
// account and exports the result as a CSV book.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&exportCmd{}, "")
	subcommands.Register(&loginCmd{}, "")
	subcommands.Register(&historyCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
