package board

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"loteria/internal/card"
	"loteria/internal/pattern"
)

var (
	ErrInvalidSize       = errors.New("board size must be positive")
	ErrNoOwner           = errors.New("board must have an owner")
	ErrInsufficientCards = errors.New("not enough distinct cards to fill the board")
	ErrNotGenerated      = errors.New("board has not been generated")
	ErrOutOfRange        = errors.New("position is outside the board")
)

// Board is one player's tabla: a size×size grid of cards with a parallel
// marker grid. Cells are assigned once by Generate; afterwards only the
// markers change.
type Board struct {
	size      int
	owner     string
	grid      [][]card.Card
	markers   [][]bool
	generated bool
}

// New creates an empty board for owner.
func New(size int, owner string) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("size %d: %w", size, ErrInvalidSize)
	}
	if owner == "" {
		return nil, ErrNoOwner
	}
	b := &Board{size: size, owner: owner}
	b.clear()
	return b, nil
}

func (b *Board) clear() {
	b.grid = make([][]card.Card, b.size)
	b.markers = make([][]bool, b.size)
	for r := range b.grid {
		b.grid[r] = make([]card.Card, b.size)
		b.markers[r] = make([]bool, b.size)
	}
	b.generated = false
}

// Generate fills the grid in row-major order from an independently shuffled
// copy of pool. The pool itself is left untouched, so boards sample the
// catalog rather than consume a deck. Calling Generate again replaces the
// whole grid and wipes every marker.
func (b *Board) Generate(pool []card.Card, rng *rand.Rand) error {
	need := b.size * b.size
	distinct := make([]card.Card, 0, len(pool))
	seen := make(map[int]struct{}, len(pool))
	for _, c := range pool {
		if _, dup := seen[c.Number]; dup || c.IsZero() {
			continue
		}
		seen[c.Number] = struct{}{}
		distinct = append(distinct, c)
	}
	if len(distinct) < need {
		return fmt.Errorf("%dx%d board needs %d cards, pool has %d: %w",
			b.size, b.size, need, len(distinct), ErrInsufficientCards)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	rng.Shuffle(len(distinct), func(i, j int) {
		distinct[i], distinct[j] = distinct[j], distinct[i]
	})

	b.clear()
	i := 0
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			b.grid[r][c] = distinct[i]
			i++
		}
	}
	b.generated = true
	return nil
}

func (b *Board) Size() int       { return b.size }
func (b *Board) Owner() string   { return b.owner }
func (b *Board) Generated() bool { return b.generated }

// Mark sets the marker of the cell holding c. It reports false when c is
// not on the board; marking an already marked cell is a no-op that still
// reports true.
func (b *Board) Mark(c card.Card) bool {
	return b.setMarker(c, true)
}

// Unmark clears the marker of the cell holding c.
func (b *Board) Unmark(c card.Card) bool {
	return b.setMarker(c, false)
}

func (b *Board) setMarker(c card.Card, v bool) bool {
	r, col, ok := b.find(c)
	if !ok {
		return false
	}
	b.markers[r][col] = v
	return true
}

func (b *Board) find(c card.Card) (int, int, bool) {
	if !b.generated {
		return 0, 0, false
	}
	for r := 0; r < b.size; r++ {
		for col := 0; col < b.size; col++ {
			if b.grid[r][col].Equal(c) {
				return r, col, true
			}
		}
	}
	return 0, 0, false
}

// HasCard reports whether c is on the board.
func (b *Board) HasCard(c card.Card) bool {
	_, _, ok := b.find(c)
	return ok
}

// IsMarked reports the marker at (row, col); out-of-range cells are unmarked.
func (b *Board) IsMarked(row, col int) bool {
	if !b.inRange(row, col) {
		return false
	}
	return b.markers[row][col]
}

// CardAt returns the card at (row, col).
func (b *Board) CardAt(row, col int) (card.Card, error) {
	if !b.generated {
		return card.Card{}, ErrNotGenerated
	}
	if !b.inRange(row, col) {
		return card.Card{}, fmt.Errorf("(%d,%d) on %dx%d: %w", row, col, b.size, b.size, ErrOutOfRange)
	}
	return b.grid[row][col], nil
}

// MarkedCount returns how many cells are marked.
func (b *Board) MarkedCount() int {
	n := 0
	for _, row := range b.markers {
		for _, m := range row {
			if m {
				n++
			}
		}
	}
	return n
}

// Cards returns a copy of the grid, row-major.
func (b *Board) Cards() [][]card.Card {
	out := make([][]card.Card, b.size)
	for r := range b.grid {
		out[r] = append([]card.Card(nil), b.grid[r]...)
	}
	return out
}

// Matches reports whether every position of p holds a card present in
// history. Markers are ignored: the call history is the only authority.
// p must satisfy p.IsValidForBoardSize(b.Size()); positions outside the
// board never match.
func (b *Board) Matches(p pattern.Pattern, history []card.Card) bool {
	if !b.generated || p.IsZero() {
		return false
	}
	called := make(map[int]struct{}, len(history))
	for _, c := range history {
		called[c.Number] = struct{}{}
	}
	for _, pos := range p.Positions() {
		if !b.inRange(pos.Row, pos.Col) {
			return false
		}
		if _, ok := called[b.grid[pos.Row][pos.Col].Number]; !ok {
			return false
		}
	}
	return true
}

func (b *Board) inRange(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}
