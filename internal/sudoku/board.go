// internal/sudoku/board.go
//
// 9x9 board model and conflict-detection predicates.
// Responsibilities:
//   - Hold the 81 cell values (0 = empty, 1-9 = filled).
//   - Answer placement-legality queries (row / column / 3x3 box rules).
//   - Report conflicts for the current occupant of a cell (for highlighting).
//   - Locate empty cells in row-major order and decide completion.
//
// A Board never enforces validity on write: the game layer must be able to
// display a temporarily conflicting grid, so legality is a separate query,
// not a constraint on Set. Given-cell immutability lives in GivenMask, a
// companion structure owned by whoever created the puzzle.

package sudoku

import (
	"errors"
	"strings"
)

const (
	// Size is the board edge length.
	Size = 9
	// BoxSize is the edge length of one sub-box.
	BoxSize = 3
)

// ErrOutOfRange reports a coordinate or cell value outside its valid domain.
// It is a caller fault and is never silently clamped.
var ErrOutOfRange = errors.New("sudoku: coordinate or value out of range")

// Coord identifies a cell by row and column, both in 0..8.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is the 9x9 grid of cell values. The zero value is an empty board.
// Assignment copies the whole grid, so boards behave as values.
type Board [Size][Size]uint8

// GivenMask marks the cells that belong to the original puzzle and must
// never be overwritten by the playing layer.
type GivenMask [Size][Size]bool

// Count reports how many cells are marked as givens.
func (m *GivenMask) Count() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if m[r][c] {
				n++
			}
		}
	}
	return n
}

func inBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

// boxOrigin returns the top-left coordinate of the 3x3 box containing (r, c).
func boxOrigin(r, c int) (int, int) {
	return (r / BoxSize) * BoxSize, (c / BoxSize) * BoxSize
}

// Get returns the value at (r, c).
func (b *Board) Get(r, c int) (uint8, error) {
	if !inBounds(r, c) {
		return 0, ErrOutOfRange
	}
	return b[r][c], nil
}

// Set writes v (0..9) at (r, c). It performs no legality check: callers that
// care whether the placement conflicts use IsValidPlacement or HasConflicts.
func (b *Board) Set(r, c int, v uint8) error {
	if !inBounds(r, c) || v > 9 {
		return ErrOutOfRange
	}
	b[r][c] = v
	return nil
}

// IsValidPlacement reports whether v could legally sit at (r, c): v must not
// already occur elsewhere in the row, column, or box. The cell (r, c) itself
// is excluded from the comparison, so re-affirming the current value is
// valid. Clearing (v == 0) never conflicts.
func (b *Board) IsValidPlacement(r, c int, v uint8) bool {
	if v == 0 {
		return true
	}
	for i := 0; i < Size; i++ {
		if i != c && b[r][i] == v {
			return false
		}
		if i != r && b[i][c] == v {
			return false
		}
	}
	br, bc := boxOrigin(r, c)
	for rr := br; rr < br+BoxSize; rr++ {
		for cc := bc; cc < bc+BoxSize; cc++ {
			if (rr != r || cc != c) && b[rr][cc] == v {
				return false
			}
		}
	}
	return true
}

// HasConflicts reports whether the value currently at (r, c) duplicates
// another non-zero value in its row, column, or box. Unlike
// IsValidPlacement it inspects the actual occupant, which is what the
// renderer needs for real-time conflict highlighting.
func (b *Board) HasConflicts(r, c int) bool {
	return !b.IsValidPlacement(r, c, b[r][c])
}

// Conflicts returns the cells that clash with the value at (r, c). The cell
// itself is never included; an empty cell has no conflicts.
func (b *Board) Conflicts(r, c int) []Coord {
	v := b[r][c]
	if v == 0 {
		return nil
	}
	var out []Coord
	for i := 0; i < Size; i++ {
		if i != c && b[r][i] == v {
			out = append(out, Coord{Row: r, Col: i})
		}
	}
	for i := 0; i < Size; i++ {
		if i != r && b[i][c] == v {
			out = append(out, Coord{Row: i, Col: c})
		}
	}
	br, bc := boxOrigin(r, c)
	for rr := br; rr < br+BoxSize; rr++ {
		for cc := bc; cc < bc+BoxSize; cc++ {
			// Cells sharing the row or column were collected above.
			if rr == r || cc == c {
				continue
			}
			if b[rr][cc] == v {
				out = append(out, Coord{Row: rr, Col: cc})
			}
		}
	}
	return out
}

// FindEmpty returns the first empty cell in row-major scan order. The scan
// order is part of the solver's contract: with an unshuffled candidate
// order the search is fully deterministic.
func (b *Board) FindEmpty() (Coord, bool) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == 0 {
				return Coord{Row: r, Col: c}, true
			}
		}
	}
	return Coord{}, false
}

// IsFilled reports whether every cell holds a non-zero value, valid or not.
func (b *Board) IsFilled() bool {
	_, empty := b.FindEmpty()
	return !empty
}

// IsComplete reports whether the board is full AND every row, column, and
// box contains 1-9 exactly once. A full but contradictory grid is not
// complete.
func (b *Board) IsComplete() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == 0 || b.HasConflicts(r, c) {
				return false
			}
		}
	}
	return true
}

// CountFilled reports the number of non-empty cells.
func (b *Board) CountFilled() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy. Boards are value types so this is plain
// assignment; the method exists to make snapshot intent explicit at call
// sites that guard against destructive search.
func (b *Board) Clone() Board {
	return *b
}

// Parse reads a board from an 81-character string of digits, with '.' or
// '0' for empty cells. Whitespace is ignored, so both single-line and
// 9-line layouts parse.
func Parse(s string) (Board, error) {
	var b Board
	i := 0
	for _, ch := range s {
		switch {
		case ch == '.' || ch == '0':
			if i >= Size*Size {
				return Board{}, errors.New("sudoku: grid longer than 81 cells")
			}
			i++
		case ch >= '1' && ch <= '9':
			if i >= Size*Size {
				return Board{}, errors.New("sudoku: grid longer than 81 cells")
			}
			b[i/Size][i%Size] = uint8(ch - '0')
			i++
		case ch == ' ' || ch == '\n' || ch == '\r' || ch == '\t' || ch == '|' || ch == '-' || ch == '+':
			// layout characters
		default:
			return Board{}, errors.New("sudoku: unexpected character " + string(ch))
		}
	}
	if i != Size*Size {
		return Board{}, errors.New("sudoku: grid shorter than 81 cells")
	}
	return b, nil
}

// String renders the grid as nine rows of digits with '.' for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + b[r][c])
			}
		}
		if r < Size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Flat renders the grid as a single row-major 81-character string with '0'
// for empty cells. This is the wire and storage form; Parse accepts it.
func (b *Board) Flat() string {
	buf := make([]byte, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			buf = append(buf, '0'+b[r][c])
		}
	}
	return string(buf)
}
