package board

import (
	"loteria/internal/card"
	"loteria/internal/pattern"
)

// Win is the first (board, pattern) pair that FindWin confirmed.
type Win struct {
	BoardIndex int
	Pattern    pattern.Pattern
}

// FindWin searches boards in order and, for each board, patterns in order,
// returning the first pattern fully covered by history. Patterns that do not
// fit a board are skipped for that board.
func FindWin(boards []*Board, patterns []pattern.Pattern, history []card.Card) (Win, bool) {
	for i, b := range boards {
		if b == nil {
			continue
		}
		for _, p := range patterns {
			if !p.IsValidForBoardSize(b.Size()) {
				continue
			}
			if b.Matches(p, history) {
				return Win{BoardIndex: i, Pattern: p}, true
			}
		}
	}
	return Win{}, false
}
