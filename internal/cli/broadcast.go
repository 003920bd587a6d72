package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/arbiter/internal/wire"
)

// BroadcastCmd returns the broadcast command.
func BroadcastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast [round]",
		Short: "Print the round's game IDs, space-separated",
		Long:  "Print every game ID of the round on one line, for broadcast tooling.",
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

			ids, err := reporter.BroadcastRound(context.Background(), round)
			if err != nil {
				return err
			}
			fmt.Println(ids)
			return nil
		},
	}
}
