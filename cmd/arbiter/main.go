package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/arbiter/internal/cli"
	"github.com/example/arbiter/internal/version"
	"github.com/example/arbiter/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "arbiter",
		Short:   "arbiter - tournament pairing orchestrator",
		Version: version.String(),
		Long: `arbiter pairs tournament players into remote games and tracks each
pairing from creation to its final result. Pairings are kept in a local
SQLite ledger; games are created and checked on the configured game host.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ShowCmd())
	rootCmd.AddCommand(cli.FetchCmd())
	rootCmd.AddCommand(cli.PairCmd())
	rootCmd.AddCommand(cli.ResultsCmd())
	rootCmd.AddCommand(cli.BroadcastCmd())

	err := rootCmd.Execute()
	wire.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
