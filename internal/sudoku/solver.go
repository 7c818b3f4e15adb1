// internal/sudoku/solver.go
//
// Backtracking search over a Board.
// Two public modes share one search routine:
//   - find the first complete valid assignment (Solve / SolveRandom), and
//   - count complete assignments up to a cap (CountSolutions), which is how
//     puzzle uniqueness is verified without full enumeration.
//
// Every entry point works on its own copy of the caller's board; the caller
// sees no mutation unless it applies a returned result itself.

package sudoku

import "math/rand"

// candidateDigits returns 1..9, shuffled when rng is non-nil. A shuffled
// order at every branch is what makes repeated fills of an empty board
// produce distinct complete grids.
func candidateDigits(rng *rand.Rand) [Size]uint8 {
	digits := [Size]uint8{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if rng != nil {
		rng.Shuffle(Size, func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })
	}
	return digits
}

// countUpTo runs the backtracking search on b, stopping once limit complete
// assignments have been found. If first is non-nil it receives the first
// solution encountered. The board is restored to its input state on return.
func countUpTo(b *Board, limit int, rng *rand.Rand, first *Board) int {
	count := 0
	var dfs func() bool
	dfs = func() bool {
		cell, ok := b.FindEmpty()
		if !ok {
			if count == 0 && first != nil {
				*first = *b
			}
			count++
			return count >= limit
		}
		for _, v := range candidateDigits(rng) {
			if b.IsValidPlacement(cell.Row, cell.Col, v) {
				b[cell.Row][cell.Col] = v
				done := dfs()
				// Revert before trying the next candidate; the search
				// relies on the cell being empty again.
				b[cell.Row][cell.Col] = 0
				if done {
					return true
				}
			}
		}
		return false
	}
	dfs()
	return count
}

// Solve returns the first complete valid board reachable from b with
// candidates tried in natural 1..9 order, making the result deterministic
// for a given input. ok is false when b has no valid completion; that is a
// normal outcome, not an error.
func Solve(b Board) (Board, bool) {
	var out Board
	n := countUpTo(&b, 1, nil, &out)
	return out, n > 0
}

// SolveRandom is Solve with candidates shuffled by rng at every branch.
// The generator uses it to grow distinct full grids from an empty board.
func SolveRandom(b Board, rng *rand.Rand) (Board, bool) {
	var out Board
	n := countUpTo(&b, 1, rng, &out)
	return out, n > 0
}

// CountSolutions counts complete valid assignments reachable from b,
// stopping early once limit is reached. A limit of 2 is enough to classify
// a puzzle as unique versus ambiguous without paying for full enumeration.
func CountSolutions(b Board, limit int) int {
	if limit < 1 {
		return 0
	}
	return countUpTo(&b, limit, nil, nil)
}

// Hint picks the first empty cell of board in row-major order and returns
// its digit from solution. It is a lookup, not a search: re-solving a board
// the player may have corrupted could diverge from the intended solution,
// while the recorded solution is always authoritative for puzzles built by
// Generate. ok is false when the board has no empty cell.
func Hint(board, solution Board) (Coord, uint8, bool) {
	cell, ok := board.FindEmpty()
	if !ok {
		return Coord{}, 0, false
	}
	return cell, solution[cell.Row][cell.Col], true
}
