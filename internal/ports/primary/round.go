// Package primary defines the driving ports: the service interfaces the CLI
// calls into, with their boundary types.
package primary

import (
	"context"

	"github.com/example/arbiter/internal/models"
)

// IngestService stores a round's pairings in the ledger.
type IngestService interface {
	// IngestRound inserts one record per pair. A duplicate pair aborts the
	// ingestion and surfaces the conflict to the caller; records inserted
	// before the conflict remain.
	IngestRound(ctx context.Context, round int, pairs []models.Pair) (*IngestResult, error)
}

// IngestResult reports how many records an ingestion created.
type IngestResult struct {
	Round    int
	Inserted int
}

// SessionBroker creates a remote game session for every unpaired record of
// a round.
type SessionBroker interface {
	// PairRound fetches the round's unpaired records and creates one game
	// session for each, writing the session ID back to the ledger. A
	// failure on one record does not stop the others; all per-record
	// failures are reported in the result and folded into the returned
	// error.
	PairRound(ctx context.Context, round int) (*PairRoundResult, error)
}

// PairedGame is one successfully brokered record.
type PairedGame struct {
	RecordID  int64
	Pair      models.Pair
	SessionID string
}

// FailedPairing is one record the broker could not pair.
type FailedPairing struct {
	RecordID int64
	Pair     models.Pair
	Err      error
}

// PairRoundResult summarizes one PairRound invocation.
type PairRoundResult struct {
	Round  int
	Paired []PairedGame
	Failed []FailedPairing
}

// ResultReconciler advances unresolved records toward a terminal result.
type ResultReconciler interface {
	// ReconcileRound queries the game host for every session of the round
	// that lacks a result, in one batched request, and records every
	// conclusive outcome. Sessions still in progress (or absent from the
	// response) stay unresolved for a later invocation.
	ReconcileRound(ctx context.Context, round int) (*ReconcileResult, error)
}

// ResolvedGame is one record whose result was recorded by a reconciliation.
type ResolvedGame struct {
	RecordID  int64
	SessionID string
	Result    models.Result
}

// ReconcileResult summarizes one ReconcileRound invocation.
type ReconcileResult struct {
	Round    int
	Resolved []ResolvedGame
	Pending  []string // session IDs still without a conclusive result
}

// RoundReporter exposes read-only views of a round for export and
// inspection.
type RoundReporter interface {
	// BroadcastRound returns all session IDs of the round joined by single
	// spaces, each exactly once, in insertion order.
	BroadcastRound(ctx context.Context, round int) (string, error)

	// ListRound returns every record of the round.
	ListRound(ctx context.Context, round int) ([]*models.PairingRecord, error)
}
