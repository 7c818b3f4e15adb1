// internal/sudoku/generator.go
//
// Puzzle generation: build a complete random grid, then dig cells back out
// while a cap-2 solution count proves the puzzle still has exactly one
// solution. Difficulty is a removal-count bucket, nothing fancier.
//
// All randomness comes through the injected *rand.Rand so generation is
// reproducible under a fixed seed (the daily puzzle and the tests depend
// on that).

package sudoku

import (
	"errors"
	"math/rand"
	"strings"
)

// Difficulty selects how many cells the generator removes from a complete
// grid. Buckets, as removed cells out of 81:
//   - easy:   40-45 (36-41 givens)
//   - medium: 46-49 (32-35 givens)
//   - hard:   50-53 (28-31 givens)
//   - expert: 54-58 (23-27 givens)
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// Difficulties lists the supported levels in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard, Expert}

// ErrUnknownDifficulty reports a difficulty name outside the supported set.
var ErrUnknownDifficulty = errors.New("sudoku: unknown difficulty")

// ParseDifficulty maps a user-supplied name to a Difficulty. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard, Expert:
		return d, nil
	}
	return "", ErrUnknownDifficulty
}

// RemovalRange returns the inclusive removed-cell bounds for d. Unknown
// values fall back to the easy bucket.
func (d Difficulty) RemovalRange() (min, max int) {
	switch d {
	case Medium:
		return 46, 49
	case Hard:
		return 50, 53
	case Expert:
		return 54, 58
	default:
		return 40, 45
	}
}

// Puzzle is a generated puzzle: the reduced board handed to the player, the
// mask of immutable givens, and the full solution recorded before digging
// so that hints and correctness checks never need to re-solve.
type Puzzle struct {
	Board      Board      `json:"board"`
	Givens     GivenMask  `json:"givens"`
	Solution   Board      `json:"solution"`
	Difficulty Difficulty `json:"difficulty"`
}

// fillStepBudget bounds the number of placements one randomized fill
// attempt may make before it is abandoned and restarted with a fresh
// layout. Diagonal pre-seeding keeps real attempts far below this.
const fillStepBudget = 1 << 20

// maxFillAttempts bounds how many budgeted random attempts run before the
// final attempt falls back to the deterministic solver, which always
// completes a diagonal-seeded grid.
const maxFillAttempts = 16

// Generate produces a puzzle with exactly one solution at the requested
// difficulty. The achieved removal count can fall short of the bucket when
// no further cell can be removed without breaking uniqueness; the puzzle is
// still returned. Generation never fails.
func Generate(d Difficulty, rng *rand.Rand) Puzzle {
	solution := fillComplete(rng)
	board := solution

	min, max := d.RemovalRange()
	target := min + rng.Intn(max-min+1)

	removed := 0
	for _, pos := range rng.Perm(Size * Size) {
		if removed >= target {
			break
		}
		r, c := pos/Size, pos%Size
		if board[r][c] == 0 {
			continue
		}
		backup := board[r][c]
		board[r][c] = 0
		if CountSolutions(board, 2) == 1 {
			removed++
		} else {
			// Removing this cell admits a second solution; put it back.
			board[r][c] = backup
		}
	}

	var givens GivenMask
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			givens[r][c] = board[r][c] != 0
		}
	}
	return Puzzle{Board: board, Givens: givens, Solution: solution, Difficulty: d}
}

// fillComplete grows a full valid grid from nothing. The three diagonal
// boxes share no row, column, or box constraints, so they are seeded with
// independent random permutations first; the remaining 54 cells are filled
// by randomized backtracking under a step budget, restarting from a fresh
// layout if an attempt exhausts it.
func fillComplete(rng *rand.Rand) Board {
	for attempt := 0; attempt < maxFillAttempts; attempt++ {
		b := seedDiagonalBoxes(rng)
		if out, ok := fillBounded(&b, rng, fillStepBudget); ok {
			return out
		}
	}
	// Every diagonal-seeded grid is completable, so the deterministic
	// solver cannot miss.
	b := seedDiagonalBoxes(rng)
	out, _ := Solve(b)
	return out
}

// seedDiagonalBoxes returns an empty board with the three diagonal 3x3
// boxes filled by independent random permutations of 1-9.
func seedDiagonalBoxes(rng *rand.Rand) Board {
	var b Board
	for box := 0; box < BoxSize; box++ {
		origin := box * BoxSize
		perm := rng.Perm(Size)
		for i, p := range perm {
			b[origin+i/BoxSize][origin+i%BoxSize] = uint8(p + 1)
		}
	}
	return b
}

// fillBounded is the randomized fill search with a placement budget. ok is
// false when the budget ran out before a complete grid was reached.
func fillBounded(b *Board, rng *rand.Rand, budget int) (Board, bool) {
	steps := 0
	var dfs func() bool
	dfs = func() bool {
		if steps >= budget {
			return false
		}
		cell, ok := b.FindEmpty()
		if !ok {
			return true
		}
		for _, v := range candidateDigits(rng) {
			if b.IsValidPlacement(cell.Row, cell.Col, v) {
				steps++
				b[cell.Row][cell.Col] = v
				if dfs() {
					return true
				}
				b[cell.Row][cell.Col] = 0
				if steps >= budget {
					return false
				}
			}
		}
		return false
	}
	if dfs() {
		return *b, true
	}
	return Board{}, false
}
