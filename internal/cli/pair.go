package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/arbiter/internal/wire"
)

// PairCmd returns the pair command.
func PairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair [round]",
		Short: "Create a game for every unpaired record of the round",
		Long: `Create one remote game per pairing record that has no game yet. Records
that already have a game are left untouched, so the command can be re-run
until the round converges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := parseRound(args[0])
			if err != nil {
				return err
			}
			if _, err := remoteConfig(); err != nil {
				return err
			}
			broker, err := wire.SessionBroker()
			if err != nil {
				return err
			}

			result, pairErr := broker.PairRound(context.Background(), round)
			if result == nil {
				return pairErr
			}

			for _, game := range result.Paired {
				fmt.Printf("%s %s: %s\n", color.GreenString("✓"), game.Pair, game.SessionID)
			}
			for _, failed := range result.Failed {
				fmt.Printf("%s %s: %v\n", color.RedString("✗"), failed.Pair, failed.Err)
			}
			fmt.Printf("Round %d: %d game(s) created, %d failed\n",
				round, len(result.Paired), len(result.Failed))

			// Per-record failures are already printed; still fail the
			// command so scripts notice and re-run.
			return pairErr
		},
	}
}
