package pattern

import "fmt"

// Factories below assume size >= 1; callers validate board sizes first.

// FullBoard requires every cell (tabla llena).
func FullBoard(size int) Pattern {
	ps := make([]Position, 0, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			ps = append(ps, Position{r, c})
		}
	}
	return mustNew("Full Card", FullCard, ps, FullCardPoints)
}

// Corners requires the four corner cells.
func Corners(size int) Pattern {
	last := size - 1
	ps := []Position{{0, 0}, {0, last}, {last, 0}, {last, last}}
	return mustNew("Four Corners", FourCorners, ps, FourCornersPoints)
}

// Row requires every cell of one row.
func Row(size, row int) Pattern {
	ps := make([]Position, 0, size)
	for c := 0; c < size; c++ {
		ps = append(ps, Position{row, c})
	}
	return mustNew(fmt.Sprintf("Horizontal Line %d", row+1), HorizontalLine, ps, LinePoints)
}

// Column requires every cell of one column.
func Column(size, col int) Pattern {
	ps := make([]Position, 0, size)
	for r := 0; r < size; r++ {
		ps = append(ps, Position{r, col})
	}
	return mustNew(fmt.Sprintf("Vertical Line %d", col+1), VerticalLine, ps, LinePoints)
}

// Diagonal requires the top-left to bottom-right diagonal, or the
// top-right to bottom-left one when leftToRight is false.
func Diagonal(size int, leftToRight bool) Pattern {
	ps := make([]Position, 0, size)
	for i := 0; i < size; i++ {
		if leftToRight {
			ps = append(ps, Position{i, i})
		} else {
			ps = append(ps, Position{i, size - 1 - i})
		}
	}
	name := "Diagonal (L-R)"
	if !leftToRight {
		name = "Diagonal (R-L)"
	}
	return mustNew(name, DiagonalLine, ps, DiagonalPoints)
}

// Standard returns every row and column, both diagonals, the corners and
// the full board: 2*size + 4 patterns.
func Standard(size int) []Pattern {
	out := make([]Pattern, 0, 2*size+4)
	for i := 0; i < size; i++ {
		out = append(out, Row(size, i), Column(size, i))
	}
	out = append(out, Diagonal(size, true), Diagonal(size, false))
	out = append(out, Corners(size), FullBoard(size))
	return out
}

// X requires both diagonals.
func X(size int) Pattern {
	ps := append(Diagonal(size, true).positions, Diagonal(size, false).positions...)
	return mustNew("X", XPattern, ps, XPoints)
}

// Outline requires the outer ring of cells.
func Outline(size int) Pattern {
	var ps []Position
	last := size - 1
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if r == 0 || r == last || c == 0 || c == last {
				ps = append(ps, Position{r, c})
			}
		}
	}
	return mustNew("Border", Border, ps, BorderPoints)
}

// Plus requires the center row and center column. Only odd sizes have a center.
func Plus(size int) (Pattern, error) {
	if size%2 == 0 {
		return Pattern{}, fmt.Errorf("cross on %dx%d: %w", size, size, ErrUnsupportedSize)
	}
	mid := size / 2
	ps := append(Row(size, mid).positions, Column(size, mid).positions...)
	return mustNew("Cross", Cross, ps, CrossPoints), nil
}

// Center requires the single center cell. Only odd sizes have a center.
func Center(size int) (Pattern, error) {
	if size%2 == 0 {
		return Pattern{}, fmt.Errorf("center on %dx%d: %w", size, size, ErrUnsupportedSize)
	}
	mid := size / 2
	return mustNew("Center Square", CenterSquare, []Position{{mid, mid}}, CenterSquarePoints), nil
}

func mustNew(name string, kind Kind, ps []Position, points int) Pattern {
	p, err := New(name, kind, ps, points)
	if err != nil {
		panic(err)
	}
	return p
}
