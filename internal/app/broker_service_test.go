package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/example/arbiter/internal/models"
	"github.com/example/arbiter/internal/ports/secondary"
)

func newTestBroker(ledger *fakeLedger, host *fakeGameHost) *SessionBrokerImpl {
	return NewSessionBroker(ledger, host, zap.NewNop())
}

func TestPairRoundPairsEveryUnpairedRecord(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed(1, "alice", "bob", "")
	ledger.seed(1, "carol", "dave", "")
	host := &fakeGameHost{}

	result, err := newTestBroker(ledger, host).PairRound(context.Background(), 1)
	if err != nil {
		t.Fatalf("PairRound failed: %v", err)
	}
	if len(result.Paired) != 2 || len(result.Failed) != 0 {
		t.Fatalf("expected 2 paired / 0 failed, got %d / %d", len(result.Paired), len(result.Failed))
	}

	// Convergence: nothing left to pair, and a second run makes no calls.
	unpaired, err := ledger.ListUnpaired(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListUnpaired failed: %v", err)
	}
	if len(unpaired) != 0 {
		t.Errorf("expected no unpaired records, got %d", len(unpaired))
	}

	result, err = newTestBroker(ledger, host).PairRound(context.Background(), 1)
	if err != nil {
		t.Fatalf("second PairRound failed: %v", err)
	}
	if len(result.Paired) != 0 {
		t.Errorf("second run should pair nothing, paired %d", len(result.Paired))
	}
	if len(host.created) != 2 {
		t.Errorf("second run must not create sessions, total creates %d", len(host.created))
	}
}

func TestPairRoundIsolatesPerRecordFailures(t *testing.T) {
	ledger := newFakeLedger()
	id1 := ledger.seed(1, "alice", "bob", "")
	id2 := ledger.seed(1, "carol", "ghost", "")
	id3 := ledger.seed(1, "erin", "frank", "")

	rejection := &secondary.InvalidPairingError{
		Pair:       models.Pair{WhitePlayer: "carol", BlackPlayer: "ghost"},
		StatusCode: 400,
		Message:    "no such user",
	}
	host := &fakeGameHost{
		createFn: func(pair models.Pair) (string, error) {
			if pair.BlackPlayer == "ghost" {
				return "", rejection
			}
			return "game-" + pair.WhitePlayer, nil
		},
	}

	result, err := newTestBroker(ledger, host).PairRound(context.Background(), 1)

	// The rejection surfaces to the caller without stopping other records.
	var invalid *secondary.InvalidPairingError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidPairingError in folded error, got %v", err)
	}
	if len(result.Paired) != 2 {
		t.Fatalf("expected records 1 and 3 paired, got %d", len(result.Paired))
	}
	if len(result.Failed) != 1 || result.Failed[0].RecordID != id2 {
		t.Fatalf("expected record %d failed, got %+v", id2, result.Failed)
	}

	if ledger.records[id1].SessionID == "" || ledger.records[id3].SessionID == "" {
		t.Error("records 1 and 3 should have session IDs")
	}
	if ledger.records[id2].SessionID != "" {
		t.Error("rejected record must stay unpaired")
	}

	// Each record is attempted at most once per invocation.
	if len(host.created) != 3 {
		t.Errorf("expected 3 create attempts, got %d", len(host.created))
	}
}

func TestPairRoundOnlyTouchesItsOwnRound(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed(1, "alice", "bob", "")
	id2 := ledger.seed(2, "alice", "bob", "")
	host := &fakeGameHost{}

	if _, err := newTestBroker(ledger, host).PairRound(context.Background(), 2); err != nil {
		t.Fatalf("PairRound failed: %v", err)
	}

	if len(host.created) != 1 {
		t.Fatalf("expected 1 create, got %d", len(host.created))
	}
	if ledger.records[id2].SessionID == "" {
		t.Error("round 2 record should be paired")
	}
	if ledger.records[1].SessionID != "" {
		t.Error("round 1 record must be untouched")
	}
}

func TestPairRoundAbortsWhenLedgerWriteFails(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed(1, "alice", "bob", "")
	ledger.seed(1, "carol", "dave", "")
	ledger.setSessionErr = errors.New("disk full")
	host := &fakeGameHost{}

	_, err := newTestBroker(ledger, host).PairRound(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error when ledger write fails")
	}
	// Continuing would mint sessions whose IDs are never persisted.
	if len(host.created) != 1 {
		t.Errorf("expected the run to stop after the first record, got %d creates", len(host.created))
	}
}

func TestPairRoundPropagatesListFailure(t *testing.T) {
	ledger := newFakeLedger()
	ledger.listUnpairedErr = errors.New("database is locked")

	_, err := newTestBroker(ledger, &fakeGameHost{}).PairRound(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error when the ledger is unreadable")
	}
}

func TestPairRoundReportsRemoteOutage(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed(1, "alice", "bob", "")
	host := &fakeGameHost{
		createFn: func(models.Pair) (string, error) {
			return "", fmt.Errorf("%w after 5 attempts", secondary.ErrRemoteUnavailable)
		},
	}

	result, err := newTestBroker(ledger, host).PairRound(context.Background(), 1)
	if !errors.Is(err, secondary.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("expected 1 failed record, got %d", len(result.Failed))
	}
	// The record stays unpaired; the whole round can simply be re-invoked.
	unpaired, _ := ledger.ListUnpaired(context.Background(), 1)
	if len(unpaired) != 1 {
		t.Errorf("record should remain unpaired for a retry, got %d unpaired", len(unpaired))
	}
}
