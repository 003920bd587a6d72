// Package cli contains the cobra commands of the arbiter tool.
package cli

import (
	"fmt"
	"strconv"

	"github.com/example/arbiter/internal/config"
	"github.com/example/arbiter/internal/wire"
)

// parseRound converts a positional round argument.
func parseRound(arg string) (int, error) {
	round, err := strconv.Atoi(arg)
	if err != nil || round <= 0 {
		return 0, fmt.Errorf("invalid round number %q: expected a positive integer", arg)
	}
	return round, nil
}

// remoteConfig returns the configuration, ensuring a bearer token is
// present. Commands that call out to the game host go through this.
func remoteConfig() (*config.Config, error) {
	cfg, err := wire.Config()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}
	return cfg, nil
}
