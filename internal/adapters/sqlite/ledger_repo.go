// Package sqlite contains the SQLite implementation of the ledger port.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/example/arbiter/internal/models"
	"github.com/example/arbiter/internal/ports/secondary"
)

// LedgerRepository implements secondary.Ledger with SQLite.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new SQLite ledger repository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// AddRecord inserts a new pairing record with no session and no result.
func (r *LedgerRepository) AddRecord(ctx context.Context, round int, pair models.Pair) (int64, error) {
	if err := pair.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO pairings (round_number, white_player, black_player) VALUES (?, ?, ?)",
		round, pair.WhitePlayer, pair.BlackPlayer,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, fmt.Errorf("round %d, %s: %w", round, pair, secondary.ErrDuplicatePairing)
		}
		return 0, fmt.Errorf("failed to add pairing record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new record ID: %w", err)
	}
	return id, nil
}

// ListUnpaired returns the round's records without a session, in insertion order.
func (r *LedgerRepository) ListUnpaired(ctx context.Context, round int) ([]secondary.UnpairedRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, white_player, black_player FROM pairings WHERE session_id IS NULL AND round_number = ? ORDER BY id ASC",
		round,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaired records: %w", err)
	}
	defer rows.Close()

	var records []secondary.UnpairedRecord
	for rows.Next() {
		var rec secondary.UnpairedRecord
		if err := rows.Scan(&rec.ID, &rec.Pair.WhitePlayer, &rec.Pair.BlackPlayer); err != nil {
			return nil, fmt.Errorf("failed to scan unpaired record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list unpaired records: %w", err)
	}
	return records, nil
}

// SetSessionID assigns a session to a record. The WHERE guard makes the
// write conditional: once a session is assigned it can never be replaced,
// no matter how often a retried broker run reaches this point.
func (r *LedgerRepository) SetSessionID(ctx context.Context, recordID int64, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE pairings SET session_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND session_id IS NULL",
		sessionID, recordID,
	)
	if err != nil {
		return fmt.Errorf("failed to set session ID on record %d: %w", recordID, err)
	}
	return nil
}

// ListUnresolved returns sessionID -> recordID for records with a session
// but no result.
func (r *LedgerRepository) ListUnresolved(ctx context.Context, round int) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, session_id FROM pairings WHERE session_id IS NOT NULL AND result IS NULL AND round_number = ?",
		round,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list unresolved records: %w", err)
	}
	defer rows.Close()

	unresolved := make(map[string]int64)
	for rows.Next() {
		var (
			id        int64
			sessionID string
		)
		if err := rows.Scan(&id, &sessionID); err != nil {
			return nil, fmt.Errorf("failed to scan unresolved record: %w", err)
		}
		unresolved[sessionID] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list unresolved records: %w", err)
	}
	return unresolved, nil
}

// SetResult records a result. Same conditional-write idiom as SetSessionID:
// results only move from NULL to a terminal value, never the reverse.
func (r *LedgerRepository) SetResult(ctx context.Context, recordID int64, result models.Result) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE pairings SET result = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND result IS NULL",
		int(result), recordID,
	)
	if err != nil {
		return fmt.Errorf("failed to set result on record %d: %w", recordID, err)
	}
	return nil
}

// AllSessionIDs returns every assigned session ID of the round, in
// insertion order.
func (r *LedgerRepository) AllSessionIDs(ctx context.Context, round int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT session_id FROM pairings WHERE session_id IS NOT NULL AND round_number = ? ORDER BY id ASC",
		round,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list session IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list session IDs: %w", err)
	}
	return ids, nil
}

// ListRecords returns every record of the round, in insertion order.
func (r *LedgerRepository) ListRecords(ctx context.Context, round int) ([]*models.PairingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, round_number, white_player, black_player, session_id, result,
			created_at, updated_at
		 FROM pairings WHERE round_number = ? ORDER BY id ASC`,
		round,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*models.PairingRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (*models.PairingRecord, error) {
	var (
		rec       models.PairingRecord
		sessionID sql.NullString
		result    sql.NullInt64
		createdAt time.Time
		updatedAt sql.NullTime
	)
	err := rows.Scan(&rec.ID, &rec.RoundNumber, &rec.Pair.WhitePlayer, &rec.Pair.BlackPlayer,
		&sessionID, &result, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pairing record: %w", err)
	}

	rec.SessionID = sessionID.String
	if result.Valid {
		res := models.Result(result.Int64)
		rec.Result = &res
	}
	rec.CreatedAt = createdAt.Format(time.RFC3339)
	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}
	return &rec, nil
}

// Ensure LedgerRepository implements the interface.
var _ secondary.Ledger = (*LedgerRepository)(nil)
