package app

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/example/arbiter/internal/models"
	"github.com/example/arbiter/internal/ports/primary"
	"github.com/example/arbiter/internal/ports/secondary"
)

// ResultReconcilerImpl implements the ResultReconciler interface.
//
// Reconciliation is read-then-write and idempotent: results only move from
// unresolved to a terminal value, and SetResult no-ops once a result is
// recorded, so re-running against unchanged remote state changes nothing.
type ResultReconcilerImpl struct {
	ledger secondary.Ledger
	host   secondary.GameHost
	log    *zap.Logger
}

// NewResultReconciler creates a new ResultReconciler with injected dependencies.
func NewResultReconciler(ledger secondary.Ledger, host secondary.GameHost, log *zap.Logger) *ResultReconcilerImpl {
	return &ResultReconcilerImpl{
		ledger: ledger,
		host:   host,
		log:    log,
	}
}

// ReconcileRound records the outcome of every finished game in the round.
// One batched lookup covers all unresolved sessions; games still running,
// aborted, or absent from the response stay unresolved for the next run.
func (s *ResultReconcilerImpl) ReconcileRound(ctx context.Context, round int) (*primary.ReconcileResult, error) {
	unresolved, err := s.ledger.ListUnresolved(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("failed to load unresolved records for round %d: %w", round, err)
	}

	result := &primary.ReconcileResult{Round: round}
	if len(unresolved) == 0 {
		s.log.Info("nothing to reconcile", zap.Int("round", round))
		return result, nil
	}

	sessionIDs := make([]string, 0, len(unresolved))
	for id := range unresolved {
		sessionIDs = append(sessionIDs, id)
	}
	sort.Strings(sessionIDs)

	s.log.Info("reconciling round",
		zap.Int("round", round),
		zap.Int("games_unfinished", len(sessionIDs)))

	statuses, err := s.host.LookupStatuses(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to look up game statuses for round %d: %w", round, err)
	}

	pending := make(map[string]bool, len(unresolved))
	for id := range unresolved {
		pending[id] = true
	}

	for _, st := range statuses {
		recordID, ok := unresolved[st.ID]
		if !ok {
			// The host answered for a game we never asked about.
			s.log.Warn("unexpected game in status response",
				zap.Int("round", round),
				zap.String("session_id", st.ID))
			continue
		}

		outcome, conclusive := translateStatus(st)
		s.log.Info("game status",
			zap.Int("round", round),
			zap.String("session_id", st.ID),
			zap.String("status", st.Status),
			zap.String("winner", st.Winner),
			zap.Bool("conclusive", conclusive))
		if !conclusive {
			continue
		}

		if err := s.ledger.SetResult(ctx, recordID, outcome); err != nil {
			return result, fmt.Errorf("failed to record result for record %d: %w", recordID, err)
		}
		result.Resolved = append(result.Resolved, primary.ResolvedGame{
			RecordID:  recordID,
			SessionID: st.ID,
			Result:    outcome,
		})
		delete(pending, st.ID)
	}

	for id := range pending {
		result.Pending = append(result.Pending, id)
	}
	sort.Strings(result.Pending)

	return result, nil
}

// translateStatus maps the host's status vocabulary onto the result enum.
// A reported winner decides the game; a drawn terminal state records a
// draw; any other known terminal state records Unknown. In-progress states
// (created, started), aborted games, and statuses this version does not
// recognize are treated as not yet resolved, so a vocabulary extension on
// the host side can never corrupt the ledger.
func translateStatus(st secondary.SessionStatus) (models.Result, bool) {
	switch st.Winner {
	case "white":
		return models.WhiteWin, true
	case "black":
		return models.BlackWin, true
	}

	switch st.Status {
	case "draw", "stalemate":
		return models.Draw, true
	case "mate", "resign", "outoftime", "timeout", "cheat", "variantEnd":
		// Finished, but the host did not say who won.
		return models.Unknown, true
	}

	// In progress, or vocabulary this version does not know: leave
	// unresolved for a later run.
	return models.Unknown, false
}

// Ensure ResultReconcilerImpl implements the interface.
var _ primary.ResultReconciler = (*ResultReconcilerImpl)(nil)
