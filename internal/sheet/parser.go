// Package sheet parses the human-authored pairing sheet for a round into
// structured pairs. The core never sees raw sheet text; it only consumes
// the pairs produced here.
package sheet

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/example/arbiter/internal/models"
)

// playerLine matches one pairing line of the sheet: a table number, then
// each player's handle followed by their score. Lines that do not match
// (headers, separators, blank lines) are skipped.
var playerLine = regexp.MustCompile(`^(\d+) +(\w+) +\d+.+ +(\w+) +\d+`)

// Parse reads pairing lines from r. Sheet convention: on odd-numbered
// tables the left-hand player has the white pieces, on even-numbered
// tables the right-hand player does.
func Parse(r io.Reader) ([]models.Pair, error) {
	var pairs []models.Pair

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		match := playerLine.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}

		table, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("invalid table number %q: %w", match[1], err)
		}

		var pair models.Pair
		if table%2 == 1 {
			pair = models.Pair{WhitePlayer: match[2], BlackPlayer: match[3]}
		} else {
			pair = models.Pair{WhitePlayer: match[3], BlackPlayer: match[2]}
		}
		if err := pair.Validate(); err != nil {
			return nil, fmt.Errorf("table %d: %w", table, err)
		}
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pairing sheet: %w", err)
	}

	return pairs, nil
}

// ParseFile parses the pairing sheet at the given path.
func ParseFile(path string) ([]models.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pairing sheet: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
