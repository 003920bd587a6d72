package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/arbiter/internal/wire"
)

// InitCmd returns the init command.
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the pairing database",
		Long:  "Create the SQLite database and its schema. Safe to run more than once.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := wire.Config()
			if err != nil {
				return err
			}
			fmt.Printf("✓ Database ready at %s\n", cfg.DatabasePath)
			return nil
		},
	}
}
