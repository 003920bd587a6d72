// Package app implements the primary ports: the pairing lifecycle services.
package app

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/example/arbiter/internal/ports/primary"
	"github.com/example/arbiter/internal/ports/secondary"
)

// SessionBrokerImpl implements the SessionBroker interface.
//
// The broker holds no state between invocations: every run works on a fresh
// ledger snapshot, which is what makes re-running it after a failure safe.
// The one known gap: if the process dies after a session is created remotely
// but before the ledger commit, the record still looks unpaired and the next
// run creates a second session for it. Closing that gap would need a durable
// intent written before the remote call, which this design deliberately does
// not do; the remote call is the only suspension point per record.
type SessionBrokerImpl struct {
	ledger secondary.Ledger
	host   secondary.GameHost
	log    *zap.Logger
}

// NewSessionBroker creates a new SessionBroker with injected dependencies.
func NewSessionBroker(ledger secondary.Ledger, host secondary.GameHost, log *zap.Logger) *SessionBrokerImpl {
	return &SessionBrokerImpl{
		ledger: ledger,
		host:   host,
		log:    log,
	}
}

// PairRound creates one game session per unpaired record of the round.
//
// Per-record failures (a rejected pairing, an exhausted retry budget) do not
// stop the remaining records; they are reported in the result and folded
// into the returned error. A ledger write failure aborts the run, since
// continuing would risk minting sessions whose IDs are never persisted.
func (s *SessionBrokerImpl) PairRound(ctx context.Context, round int) (*primary.PairRoundResult, error) {
	unpaired, err := s.ledger.ListUnpaired(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("failed to load unpaired records for round %d: %w", round, err)
	}

	s.log.Info("pairing round",
		zap.Int("round", round),
		zap.Int("games_to_create", len(unpaired)))

	result := &primary.PairRoundResult{Round: round}
	var errs error

	for _, rec := range unpaired {
		sessionID, err := s.host.CreateSession(ctx, rec.Pair)
		if err != nil {
			s.log.Error("failed to create game",
				zap.Int("round", round),
				zap.Int64("record_id", rec.ID),
				zap.String("white", rec.Pair.WhitePlayer),
				zap.String("black", rec.Pair.BlackPlayer),
				zap.Error(err))
			result.Failed = append(result.Failed, primary.FailedPairing{
				RecordID: rec.ID,
				Pair:     rec.Pair,
				Err:      err,
			})
			errs = multierr.Append(errs, fmt.Errorf("record %d (%s): %w", rec.ID, rec.Pair, err))
			continue
		}

		if err := s.ledger.SetSessionID(ctx, rec.ID, sessionID); err != nil {
			// The session exists remotely but could not be persisted. Log
			// the ID so the record can be fixed up by hand, then abort.
			s.log.Error("failed to persist session ID",
				zap.Int("round", round),
				zap.Int64("record_id", rec.ID),
				zap.String("session_id", sessionID),
				zap.Error(err))
			return result, multierr.Append(errs,
				fmt.Errorf("failed to persist session %s for record %d: %w", sessionID, rec.ID, err))
		}

		s.log.Info("game created",
			zap.Int("round", round),
			zap.Int64("record_id", rec.ID),
			zap.String("white", rec.Pair.WhitePlayer),
			zap.String("black", rec.Pair.BlackPlayer),
			zap.String("session_id", sessionID))
		result.Paired = append(result.Paired, primary.PairedGame{
			RecordID:  rec.ID,
			Pair:      rec.Pair,
			SessionID: sessionID,
		})
	}

	return result, errs
}

// Ensure SessionBrokerImpl implements the interface.
var _ primary.SessionBroker = (*SessionBrokerImpl)(nil)
