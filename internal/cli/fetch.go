package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/arbiter/internal/sheet"
	"github.com/example/arbiter/internal/wire"
)

// FetchCmd returns the fetch command.
func FetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [round]",
		Short: "Store a round's pairing sheet in the ledger",
		Long: `Parse the pairing sheet for the round (round_<n>.txt by default) and
store one pairing record per line, without creating any games.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := parseRound(args[0])
			if err != nil {
				return err
			}
			cfg, err := wire.Config()
			if err != nil {
				return err
			}
			service, err := wire.IngestService()
			if err != nil {
				return err
			}

			pairs, err := sheet.ParseFile(cfg.SheetPath(round))
			if err != nil {
				return err
			}

			result, err := service.IngestRound(context.Background(), round, pairs)
			if err != nil {
				return fmt.Errorf("failed to ingest round %d: %w", round, err)
			}

			fmt.Printf("✓ Round %d: stored %d pairing(s)\n", round, result.Inserted)
			return nil
		},
	}
}
