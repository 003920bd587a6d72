package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/arbiter/internal/models"
	"github.com/example/arbiter/internal/ports/secondary"
)

// Ensure the fakes implement their interfaces.
var (
	_ secondary.Ledger   = (*fakeLedger)(nil)
	_ secondary.GameHost = (*fakeGameHost)(nil)
)

// fakeLedger implements secondary.Ledger in memory, honoring the same
// conditional-write guards as the SQLite adapter.
type fakeLedger struct {
	records map[int64]*models.PairingRecord
	nextID  int64

	setResultCalls int

	listUnpairedErr error
	setSessionErr   error
	setResultErr    error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[int64]*models.PairingRecord)}
}

// seed inserts a record directly, bypassing AddRecord's validation.
func (f *fakeLedger) seed(round int, white, black, sessionID string) int64 {
	f.nextID++
	f.records[f.nextID] = &models.PairingRecord{
		ID:          f.nextID,
		RoundNumber: round,
		Pair:        models.Pair{WhitePlayer: white, BlackPlayer: black},
		SessionID:   sessionID,
	}
	return f.nextID
}

func (f *fakeLedger) sortedIDs() []int64 {
	ids := make([]int64, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeLedger) AddRecord(ctx context.Context, round int, pair models.Pair) (int64, error) {
	if err := pair.Validate(); err != nil {
		return 0, err
	}
	for _, rec := range f.records {
		if rec.RoundNumber == round && rec.Pair == pair {
			return 0, fmt.Errorf("round %d, %s: %w", round, pair, secondary.ErrDuplicatePairing)
		}
	}
	return f.seed(round, pair.WhitePlayer, pair.BlackPlayer, ""), nil
}

func (f *fakeLedger) ListUnpaired(ctx context.Context, round int) ([]secondary.UnpairedRecord, error) {
	if f.listUnpairedErr != nil {
		return nil, f.listUnpairedErr
	}
	var out []secondary.UnpairedRecord
	for _, id := range f.sortedIDs() {
		rec := f.records[id]
		if rec.RoundNumber == round && rec.SessionID == "" {
			out = append(out, secondary.UnpairedRecord{ID: rec.ID, Pair: rec.Pair})
		}
	}
	return out, nil
}

func (f *fakeLedger) SetSessionID(ctx context.Context, recordID int64, sessionID string) error {
	if f.setSessionErr != nil {
		return f.setSessionErr
	}
	if rec, ok := f.records[recordID]; ok && rec.SessionID == "" {
		rec.SessionID = sessionID
	}
	return nil
}

func (f *fakeLedger) ListUnresolved(ctx context.Context, round int) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, rec := range f.records {
		if rec.RoundNumber == round && rec.SessionID != "" && rec.Result == nil {
			out[rec.SessionID] = rec.ID
		}
	}
	return out, nil
}

func (f *fakeLedger) SetResult(ctx context.Context, recordID int64, result models.Result) error {
	if f.setResultErr != nil {
		return f.setResultErr
	}
	f.setResultCalls++
	if rec, ok := f.records[recordID]; ok && rec.Result == nil {
		res := result
		rec.Result = &res
	}
	return nil
}

func (f *fakeLedger) AllSessionIDs(ctx context.Context, round int) ([]string, error) {
	var out []string
	for _, id := range f.sortedIDs() {
		rec := f.records[id]
		if rec.RoundNumber == round && rec.SessionID != "" {
			out = append(out, rec.SessionID)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListRecords(ctx context.Context, round int) ([]*models.PairingRecord, error) {
	var out []*models.PairingRecord
	for _, id := range f.sortedIDs() {
		if rec := f.records[id]; rec.RoundNumber == round {
			out = append(out, rec)
		}
	}
	return out, nil
}

// fakeGameHost implements secondary.GameHost with scripted responses.
type fakeGameHost struct {
	// createFn decides the outcome per pair; nil means sequential IDs.
	createFn func(pair models.Pair) (string, error)
	created  []models.Pair

	statuses       []secondary.SessionStatus
	lookupErr      error
	lookupRequests [][]string
}

func (f *fakeGameHost) CreateSession(ctx context.Context, pair models.Pair) (string, error) {
	f.created = append(f.created, pair)
	if f.createFn != nil {
		return f.createFn(pair)
	}
	return fmt.Sprintf("game%04d", len(f.created)), nil
}

func (f *fakeGameHost) LookupStatuses(ctx context.Context, sessionIDs []string) ([]secondary.SessionStatus, error) {
	ids := make([]string, len(sessionIDs))
	copy(ids, sessionIDs)
	f.lookupRequests = append(f.lookupRequests, ids)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.statuses, nil
}
