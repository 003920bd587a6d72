package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/arbiter/internal/wire"
)

// ShowCmd returns the show command.
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [round]",
		Short: "Dump the round's ledger records (debug aid)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := parseRound(args[0])
			if err != nil {
				return err
			}
			reporter, err := wire.RoundReporter()
			if err != nil {
				return err
			}

			records, err := reporter.ListRound(context.Background(), round)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Printf("Round %d: no records\n", round)
				return nil
			}

			for _, rec := range records {
				sessionID := "-"
				if rec.Paired() {
					sessionID = rec.SessionID
				}
				outcome := "unresolved"
				if rec.Resolved() {
					outcome = rec.Result.String()
				}
				fmt.Printf("%-5d %-20s %-20s %-10s %s\n",
					rec.ID, rec.Pair.WhitePlayer, rec.Pair.BlackPlayer, sessionID, outcome)
			}
			return nil
		},
	}
}
