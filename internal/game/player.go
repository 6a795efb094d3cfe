package game

import (
	"fmt"
	"strings"

	"loteria/internal/board"
	"loteria/internal/card"
	"loteria/internal/pattern"
)

// Board count limits per player, enforced by NewPlayerWithBoards (the
// engine itself does not cap).
const (
	MinBoards = 1
	MaxBoards = 4
)

// Player owns its boards exclusively. Identity is the name, compared
// case-insensitively.
type Player struct {
	name   string
	boards []*board.Board
	score  int
	ready  bool
}

// NewPlayer creates a player with no boards.
func NewPlayer(name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Player{name: name}, nil
}

// NewPlayerWithBoards creates a player holding count empty size×size boards.
func NewPlayerWithBoards(name string, count, size int) (*Player, error) {
	if count < MinBoards || count > MaxBoards {
		return nil, fmt.Errorf("%d boards, want %d-%d: %w", count, MinBoards, MaxBoards, ErrInvalidBoardCount)
	}
	p, err := NewPlayer(name)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		b, err := board.New(size, p.name)
		if err != nil {
			return nil, err
		}
		p.boards = append(p.boards, b)
	}
	return p, nil
}

func (p *Player) Name() string { return p.name }

// Key is the identity key used for lookups and statistics.
func (p *Player) Key() string { return Key(p.name) }

// Key normalizes a player name into its identity key.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Is reports whether p and other are the same player.
func (p *Player) Is(other *Player) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Key() == other.Key()
}

// AddBoard gives p another board. The board must have been created for p.
func (p *Player) AddBoard(b *board.Board) error {
	if b == nil {
		return board.ErrNoOwner
	}
	if Key(b.Owner()) != p.Key() {
		return fmt.Errorf("board of %q given to %q: %w", b.Owner(), p.name, ErrBoardOwnerMismatch)
	}
	p.boards = append(p.boards, b)
	return nil
}

// Boards returns the player's boards in order.
func (p *Player) Boards() []*board.Board {
	return append([]*board.Board(nil), p.boards...)
}

// Board returns the board at a zero-based index.
func (p *Player) Board(i int) (*board.Board, error) {
	if i < 0 || i >= len(p.boards) {
		return nil, fmt.Errorf("board %d of %d for %s: %w", i+1, len(p.boards), p.name, ErrInvalidBoardIndex)
	}
	return p.boards[i], nil
}

func (p *Player) Score() int { return p.score }

func (p *Player) AddScore(n int) { p.score += n }

func (p *Player) Ready() bool { return p.ready }

func (p *Player) SetReady(ok bool) { p.ready = ok }

// MarkCard marks c on every board and returns how many boards held it.
func (p *Player) MarkCard(c card.Card) int {
	n := 0
	for _, b := range p.boards {
		if b.Mark(c) {
			n++
		}
	}
	return n
}

// MarkedCount totals the marked cells over all boards.
func (p *Player) MarkedCount() int {
	n := 0
	for _, b := range p.boards {
		n += b.MarkedCount()
	}
	return n
}

// HasWinningPattern is an advisory check; only Engine.ClaimWin declares a winner.
func (p *Player) HasWinningPattern(pat pattern.Pattern, history []card.Card) bool {
	for _, b := range p.boards {
		if pat.IsValidForBoardSize(b.Size()) && b.Matches(pat, history) {
			return true
		}
	}
	return false
}
