package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/example/arbiter/internal/models"
	"github.com/example/arbiter/internal/ports/secondary"
)

func TestIngestRoundStoresAllPairs(t *testing.T) {
	ledger := newFakeLedger()
	service := NewIngestService(ledger, zap.NewNop())

	result, err := service.IngestRound(context.Background(), 1, []models.Pair{
		{WhitePlayer: "alice", BlackPlayer: "bob"},
		{WhitePlayer: "carol", BlackPlayer: "dave"},
	})
	if err != nil {
		t.Fatalf("IngestRound failed: %v", err)
	}
	if result.Inserted != 2 {
		t.Errorf("expected 2 inserted, got %d", result.Inserted)
	}

	unpaired, _ := ledger.ListUnpaired(context.Background(), 1)
	if len(unpaired) != 2 {
		t.Errorf("expected 2 unpaired records, got %d", len(unpaired))
	}
}

func TestIngestRoundSurfacesDuplicates(t *testing.T) {
	ledger := newFakeLedger()
	service := NewIngestService(ledger, zap.NewNop())
	ctx := context.Background()

	pairs := []models.Pair{{WhitePlayer: "alice", BlackPlayer: "bob"}}
	if _, err := service.IngestRound(ctx, 1, pairs); err != nil {
		t.Fatalf("first ingestion failed: %v", err)
	}

	// Re-running the same sheet must not silently duplicate records.
	result, err := service.IngestRound(ctx, 1, pairs)
	if !errors.Is(err, secondary.ErrDuplicatePairing) {
		t.Fatalf("expected ErrDuplicatePairing, got %v", err)
	}
	if result.Inserted != 0 {
		t.Errorf("expected no inserts on duplicate, got %d", result.Inserted)
	}
}

func TestBroadcastRoundJoinsSessionIDs(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed(1, "alice", "bob", "game0001")
	ledger.seed(1, "carol", "dave", "game0002")
	ledger.seed(1, "erin", "frank", "game0003")
	ledger.seed(2, "gina", "hank", "game0099") // other round, excluded
	ledger.seed(1, "ivan", "judy", "")         // unpaired, excluded

	reporter := NewRoundReporter(ledger)
	out, err := reporter.BroadcastRound(context.Background(), 1)
	if err != nil {
		t.Fatalf("BroadcastRound failed: %v", err)
	}
	if out != "game0001 game0002 game0003" {
		t.Errorf("unexpected broadcast output: %q", out)
	}
}

func TestBroadcastRoundEmptyRound(t *testing.T) {
	reporter := NewRoundReporter(newFakeLedger())
	out, err := reporter.BroadcastRound(context.Background(), 7)
	if err != nil {
		t.Fatalf("BroadcastRound failed: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
