package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/arbiter/internal/wire"
)

// ResultsCmd returns the results command.
func ResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results [round]",
		Short: "Fetch and record results for the round's finished games",
		Long: `Query the game host for every game of the round that has no recorded
result yet, in one batched request, and store the outcome of finished
games. Games still in progress stay pending for the next run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := parseRound(args[0])
			if err != nil {
				return err
			}
			if _, err := remoteConfig(); err != nil {
				return err
			}
			reconciler, err := wire.ResultReconciler()
			if err != nil {
				return err
			}

			result, err := reconciler.ReconcileRound(context.Background(), round)
			if err != nil {
				return fmt.Errorf("failed to reconcile round %d: %w", round, err)
			}

			for _, game := range result.Resolved {
				fmt.Printf("%s %s: %s\n", color.GreenString("✓"), game.SessionID, game.Result)
			}
			for _, sessionID := range result.Pending {
				fmt.Printf("%s %s: pending\n", color.YellowString("…"), sessionID)
			}
			fmt.Printf("Round %d: %d result(s) recorded, %d pending\n",
				round, len(result.Resolved), len(result.Pending))
			return nil
		},
	}
}
