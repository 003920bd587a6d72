package secondary

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/arbiter/internal/models"
)

// ErrRemoteUnavailable is returned when the game host could not be reached
// or kept failing transiently after the retry budget was exhausted.
var ErrRemoteUnavailable = errors.New("game host unavailable")

// InvalidPairingError is a permanent rejection of a pair by the game host
// (unknown handle, self-pairing, malformed request). It is never retried.
type InvalidPairingError struct {
	Pair       models.Pair
	StatusCode int
	Message    string
}

func (e *InvalidPairingError) Error() string {
	return fmt.Sprintf("pairing %s rejected by game host (status %d): %s",
		e.Pair, e.StatusCode, e.Message)
}

// SessionStatus is one entry of a batched status lookup. Winner is empty
// unless the host reported a decisive game.
type SessionStatus struct {
	ID     string
	Status string
	Winner string
}

// GameHost creates and inspects remote game sessions.
type GameHost interface {
	// CreateSession creates one game for the pair, with the white pieces
	// explicitly assigned to pair.WhitePlayer, and returns the session ID.
	// This call is NOT idempotent on the remote side: calling it twice for
	// the same pair creates two games.
	CreateSession(ctx context.Context, pair models.Pair) (string, error)

	// LookupStatuses fetches the current status of the given sessions in a
	// single batched request. Sessions unknown to the host are simply
	// absent from the response.
	LookupStatuses(ctx context.Context, sessionIDs []string) ([]SessionStatus, error)
}
