package pattern

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyName       = errors.New("pattern name cannot be empty")
	ErrNoPositions     = errors.New("pattern needs at least one position")
	ErrInvalidKind     = errors.New("pattern kind is required")
	ErrUnsupportedSize = errors.New("pattern is not defined for this board size")
)

// Position is a zero-based (row, col) cell coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Kind tags a pattern with the shape it describes.
type Kind string

const (
	FullCard       Kind = "full_card"
	FourCorners    Kind = "four_corners"
	HorizontalLine Kind = "horizontal_line"
	VerticalLine   Kind = "vertical_line"
	DiagonalLine   Kind = "diagonal_line"
	Cross          Kind = "cross"
	XPattern       Kind = "x"
	Border         Kind = "border"
	CenterSquare   Kind = "center_square"
	Custom         Kind = "custom"
)

// Point values per kind. Scoring only; never used to validate a claim.
const (
	FullCardPoints     = 25
	FourCornersPoints  = 10
	DiagonalPoints     = 8
	LinePoints         = 5
	CrossPoints        = 15
	XPoints            = 12
	BorderPoints       = 15
	CenterSquarePoints = 3
)

// Pattern is a named set of board positions that together win.
type Pattern struct {
	name      string
	kind      Kind
	positions []Position
	points    int
}

// New validates and builds a pattern. Duplicate positions are collapsed,
// keeping first-seen order.
func New(name string, kind Kind, positions []Position, points int) (Pattern, error) {
	if name == "" {
		return Pattern{}, ErrEmptyName
	}
	if kind == "" {
		return Pattern{}, ErrInvalidKind
	}
	if len(positions) == 0 {
		return Pattern{}, ErrNoPositions
	}
	seen := make(map[Position]struct{}, len(positions))
	ps := make([]Position, 0, len(positions))
	for _, p := range positions {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		ps = append(ps, p)
	}
	return Pattern{name: name, kind: kind, positions: ps, points: points}, nil
}

func (p Pattern) Name() string { return p.name }
func (p Pattern) Kind() Kind   { return p.kind }
func (p Pattern) Points() int  { return p.points }

// Positions returns a copy of the required positions.
func (p Pattern) Positions() []Position {
	out := make([]Position, len(p.positions))
	copy(out, p.positions)
	return out
}

// IsZero reports whether p was never built by New.
func (p Pattern) IsZero() bool {
	return len(p.positions) == 0
}

// IsValidForBoardSize reports whether every position lies inside a size×size grid.
func (p Pattern) IsValidForBoardSize(size int) bool {
	if p.IsZero() {
		return false
	}
	for _, pos := range p.positions {
		if pos.Row < 0 || pos.Row >= size || pos.Col < 0 || pos.Col >= size {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	return p.name
}

// MarshalJSON exposes the pattern to API clients.
func (p Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(view{
		Name:      p.name,
		Kind:      p.kind,
		Positions: p.positions,
		Points:    p.points,
	})
}

type view struct {
	Name      string     `json:"name"`
	Kind      Kind       `json:"kind"`
	Positions []Position `json:"positions"`
	Points    int        `json:"points"`
}
