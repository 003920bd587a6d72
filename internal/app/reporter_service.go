package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/arbiter/internal/models"
	"github.com/example/arbiter/internal/ports/primary"
	"github.com/example/arbiter/internal/ports/secondary"
)

// RoundReporterImpl implements the RoundReporter interface.
type RoundReporterImpl struct {
	ledger secondary.Ledger
}

// NewRoundReporter creates a new RoundReporter with injected dependencies.
func NewRoundReporter(ledger secondary.Ledger) *RoundReporterImpl {
	return &RoundReporterImpl{ledger: ledger}
}

// BroadcastRound returns the round's session IDs, space-joined, in
// insertion order. The format is the contract: broadcast tooling splits on
// single spaces.
func (s *RoundReporterImpl) BroadcastRound(ctx context.Context, round int) (string, error) {
	ids, err := s.ledger.AllSessionIDs(ctx, round)
	if err != nil {
		return "", fmt.Errorf("failed to collect session IDs for round %d: %w", round, err)
	}
	return strings.Join(ids, " "), nil
}

// ListRound returns every record of the round.
func (s *RoundReporterImpl) ListRound(ctx context.Context, round int) ([]*models.PairingRecord, error) {
	return s.ledger.ListRecords(ctx, round)
}

// Ensure RoundReporterImpl implements the interface.
var _ primary.RoundReporter = (*RoundReporterImpl)(nil)
