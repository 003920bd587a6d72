package db

// SchemaSQL is the authoritative schema for the arbiter database.
//
// Tests must load the schema through GetSchemaSQL() rather than hardcoding
// CREATE TABLE statements, so that repository code and tests cannot drift
// apart: a column referenced by a repository but missing here fails every
// test immediately with "no such column".
//
// The result column keeps the historical integer encoding:
// 0 = black wins, 1 = white wins, 2 = draw, 3 = unknown. NULL = unresolved.
const SchemaSQL = `
-- Pairings (one row per player pair within a round)
CREATE TABLE IF NOT EXISTS pairings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	round_number INTEGER NOT NULL,
	white_player TEXT NOT NULL,
	black_player TEXT NOT NULL,
	session_id TEXT UNIQUE,
	result INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME,
	CHECK(white_player <> black_player),
	UNIQUE(round_number, white_player, black_player)
);

CREATE INDEX IF NOT EXISTS idx_pairings_round ON pairings(round_number);
`

// GetSchemaSQL returns the authoritative schema for use in tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
