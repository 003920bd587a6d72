// Package models contains the domain entities of the arbiter ledger.
package models

import "fmt"

// Result is the outcome of a finished game. The integer encoding is the
// storage encoding: it must stay stable across schema versions.
type Result int

const (
	BlackWin Result = 0
	WhiteWin Result = 1
	Draw     Result = 2
	Unknown  Result = 3
)

// String returns a human-readable label for the result.
func (r Result) String() string {
	switch r {
	case BlackWin:
		return "black wins"
	case WhiteWin:
		return "white wins"
	case Draw:
		return "draw"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Conclusive reports whether the result denotes a finished game that should
// be persisted. Unknown is conclusive: it records that the game ended in a
// way the status vocabulary does not cover.
func (r Result) Conclusive() bool {
	switch r {
	case BlackWin, WhiteWin, Draw, Unknown:
		return true
	default:
		return false
	}
}

// Pair is one pairing from the sheet: two player handles with the color
// assignment already decided upstream.
type Pair struct {
	WhitePlayer string
	BlackPlayer string
}

// Validate checks the structural invariants of a pair.
func (p Pair) Validate() error {
	if p.WhitePlayer == "" || p.BlackPlayer == "" {
		return fmt.Errorf("pair %q vs %q: empty player handle", p.WhitePlayer, p.BlackPlayer)
	}
	if p.WhitePlayer == p.BlackPlayer {
		return fmt.Errorf("pair: %q cannot play against themselves", p.WhitePlayer)
	}
	return nil
}

func (p Pair) String() string {
	return p.WhitePlayer + " - " + p.BlackPlayer
}

// PairingRecord is one row of the ledger: a pair within a round, the remote
// game session created for it (once assigned), and its result (once known).
type PairingRecord struct {
	ID          int64
	RoundNumber int
	Pair        Pair
	SessionID   string // empty until a session is created; never changes afterwards
	Result      *Result
	CreatedAt   string
	UpdatedAt   string
}

// Paired reports whether a remote session has been assigned.
func (r *PairingRecord) Paired() bool {
	return r.SessionID != ""
}

// Resolved reports whether a result has been recorded.
func (r *PairingRecord) Resolved() bool {
	return r.Result != nil
}
