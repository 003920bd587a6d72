package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/arbiter/internal/models"
	"github.com/example/arbiter/internal/ports/primary"
	"github.com/example/arbiter/internal/ports/secondary"
)

// IngestServiceImpl implements the IngestService interface.
type IngestServiceImpl struct {
	ledger secondary.Ledger
	log    *zap.Logger
}

// NewIngestService creates a new IngestService with injected dependencies.
func NewIngestService(ledger secondary.Ledger, log *zap.Logger) *IngestServiceImpl {
	return &IngestServiceImpl{
		ledger: ledger,
		log:    log,
	}
}

// IngestRound inserts one pairing record per pair, in sheet order. A
// duplicate pair stops the ingestion with the conflict surfaced; it is
// never swallowed, since it usually means the sheet was ingested twice.
func (s *IngestServiceImpl) IngestRound(ctx context.Context, round int, pairs []models.Pair) (*primary.IngestResult, error) {
	result := &primary.IngestResult{Round: round}

	for _, pair := range pairs {
		id, err := s.ledger.AddRecord(ctx, round, pair)
		if err != nil {
			return result, fmt.Errorf("failed to ingest pairing for round %d: %w", round, err)
		}
		s.log.Info("pairing stored",
			zap.Int("round", round),
			zap.Int64("record_id", id),
			zap.String("white", pair.WhitePlayer),
			zap.String("black", pair.BlackPlayer))
		result.Inserted++
	}

	s.log.Info("round ingested",
		zap.Int("round", round),
		zap.Int("pairings", result.Inserted))
	return result, nil
}

// Ensure IngestServiceImpl implements the interface.
var _ primary.IngestService = (*IngestServiceImpl)(nil)
