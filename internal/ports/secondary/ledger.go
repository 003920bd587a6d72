// Package secondary defines the driven ports: interfaces the application
// core depends on, implemented by adapters.
package secondary

import (
	"context"
	"errors"

	"github.com/example/arbiter/internal/models"
)

// ErrDuplicatePairing is returned by AddRecord when the same
// (round, white, black) triple is ingested twice.
var ErrDuplicatePairing = errors.New("pairing already exists for this round")

// UnpairedRecord is a ledger row that has no game session yet.
type UnpairedRecord struct {
	ID   int64
	Pair models.Pair
}

// Ledger is the durable store of pairing records. It is the single source
// of truth: the broker and the reconciler keep no state of their own.
//
// All queries are scoped by round number, since player handles may repeat
// across rounds. Mutations are single-statement and conditionally guarded,
// which is what makes re-running the callers after a crash safe.
type Ledger interface {
	// AddRecord inserts a new record with no session and no result.
	// Returns the new record ID, or ErrDuplicatePairing.
	AddRecord(ctx context.Context, round int, pair models.Pair) (int64, error)

	// ListUnpaired returns all records in the round without a session,
	// in insertion order.
	ListUnpaired(ctx context.Context, round int) ([]UnpairedRecord, error)

	// SetSessionID assigns a session to a record. It only takes effect if
	// the record has no session yet; otherwise it is a no-op, so a retried
	// write can never overwrite an assigned session.
	SetSessionID(ctx context.Context, recordID int64, sessionID string) error

	// ListUnresolved returns sessionID -> recordID for all records in the
	// round that have a session but no result.
	ListUnresolved(ctx context.Context, round int) (map[string]int64, error)

	// SetResult records a result. No-op if the record already has one.
	SetResult(ctx context.Context, recordID int64, result models.Result) error

	// AllSessionIDs returns every assigned session ID in the round, in
	// insertion order.
	AllSessionIDs(ctx context.Context, round int) ([]string, error)

	// ListRecords returns all records of the round, in insertion order.
	ListRecords(ctx context.Context, round int) ([]*models.PairingRecord, error)
}
