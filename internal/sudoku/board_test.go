package sudoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The classic example grid: solvable, with a unique solution.
var samplePuzzle = Board{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

var sampleSolution = Board{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

func TestGetSet(t *testing.T) {
	var b Board

	require.NoError(t, b.Set(0, 0, 5))
	v, err := b.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), v)

	// Clearing is an ordinary write.
	require.NoError(t, b.Set(0, 0, 0))
	v, _ = b.Get(0, 0)
	assert.Equal(t, uint8(0), v)
}

func TestGetSetOutOfRange(t *testing.T) {
	var b Board

	_, err := b.Get(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.Get(0, 9)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.ErrorIs(t, b.Set(9, 0, 1), ErrOutOfRange)
	assert.ErrorIs(t, b.Set(0, -1, 1), ErrOutOfRange)
	assert.ErrorIs(t, b.Set(0, 0, 10), ErrOutOfRange)
}

// Set must accept an illegal placement: the UI shows conflicts instead of
// rejecting them.
func TestSetAllowsConflictingValue(t *testing.T) {
	var b Board
	require.NoError(t, b.Set(0, 0, 5))
	require.NoError(t, b.Set(0, 1, 5))

	assert.True(t, b.HasConflicts(0, 0))
	assert.True(t, b.HasConflicts(0, 1))
}

func TestIsValidPlacement(t *testing.T) {
	var b Board
	require.NoError(t, b.Set(0, 0, 5))

	assert.False(t, b.IsValidPlacement(0, 8, 5), "same row")
	assert.False(t, b.IsValidPlacement(8, 0, 5), "same column")
	assert.False(t, b.IsValidPlacement(1, 1, 5), "same box")
	assert.True(t, b.IsValidPlacement(1, 3, 5), "unconstrained cell")

	// The cell itself is excluded from the comparison.
	assert.True(t, b.IsValidPlacement(0, 0, 5))

	// Clearing never conflicts.
	assert.True(t, b.IsValidPlacement(0, 8, 0))
	assert.True(t, b.IsValidPlacement(0, 0, 0))
}

func TestHasConflictsScenario(t *testing.T) {
	var b Board
	require.NoError(t, b.Set(0, 0, 5))
	require.NoError(t, b.Set(0, 1, 5))

	assert.True(t, b.HasConflicts(0, 0))
	assert.True(t, b.HasConflicts(0, 1))
	assert.False(t, b.HasConflicts(0, 2), "empty cell never conflicts")
}

// Placing a digit and immediately clearing it restores the pre-placement
// conflict state everywhere.
func TestConflictStateRestoredAfterClear(t *testing.T) {
	b := samplePuzzle
	var before [Size][Size]bool
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			before[r][c] = b.HasConflicts(r, c)
		}
	}

	require.NoError(t, b.Set(0, 2, 5)) // clashes with the 5 at (0,0)
	assert.True(t, b.HasConflicts(0, 2))
	require.NoError(t, b.Set(0, 2, 0))

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			assert.Equal(t, before[r][c], b.HasConflicts(r, c), "cell (%d,%d)", r, c)
		}
	}
}

func TestConflictsReturnsClashingCells(t *testing.T) {
	var b Board
	require.NoError(t, b.Set(0, 0, 5))
	require.NoError(t, b.Set(0, 1, 5)) // same row and same box
	require.NoError(t, b.Set(8, 0, 5)) // same column

	got := b.Conflicts(0, 0)
	assert.ElementsMatch(t, []Coord{{Row: 0, Col: 1}, {Row: 8, Col: 0}}, got,
		"each clashing cell reported exactly once")

	assert.Nil(t, b.Conflicts(4, 4), "empty cell has no conflicts")
}

func TestFindEmptyRowMajorOrder(t *testing.T) {
	b := samplePuzzle

	cell, ok := b.FindEmpty()
	require.True(t, ok)
	assert.Equal(t, Coord{Row: 0, Col: 2}, cell)

	// Repeated calls with no mutation return the same cell.
	again, ok := b.FindEmpty()
	require.True(t, ok)
	assert.Equal(t, cell, again)

	full := sampleSolution
	_, ok = full.FindEmpty()
	assert.False(t, ok)
}

func TestIsCompleteRejectsContradictoryFullGrid(t *testing.T) {
	b := sampleSolution
	assert.True(t, b.IsComplete())

	// Full but contradictory: swap in a duplicate.
	b[0][0] = b[0][1]
	assert.True(t, b.IsFilled())
	assert.False(t, b.IsComplete())
}

func TestIsCompleteIdempotent(t *testing.T) {
	b := sampleSolution
	for i := 0; i < 5; i++ {
		assert.True(t, b.IsComplete())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := samplePuzzle
	cp := b.Clone()
	require.NoError(t, cp.Set(0, 2, 4))

	v, _ := b.Get(0, 2)
	assert.Equal(t, uint8(0), v, "mutating the clone must not touch the original")
}

func TestCountFilledAndGivenMaskCount(t *testing.T) {
	assert.Equal(t, 30, samplePuzzle.CountFilled())
	assert.Equal(t, 81, sampleSolution.CountFilled())

	var m GivenMask
	m[0][0], m[8][8] = true, true
	assert.Equal(t, 2, m.Count())
}

func TestParseAndString(t *testing.T) {
	text := samplePuzzle.String()
	parsed, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, samplePuzzle, parsed)

	// Single line with zeros instead of dots.
	oneline := "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	parsed, err = Parse(oneline)
	require.NoError(t, err)
	assert.Equal(t, samplePuzzle, parsed)
}

func TestFlatRoundTrips(t *testing.T) {
	flat := samplePuzzle.Flat()
	assert.Len(t, flat, 81)
	assert.Equal(t, "530070000600195000098000060800060003400803001700020006060000280000419005000080079", flat)

	parsed, err := Parse(flat)
	require.NoError(t, err)
	assert.Equal(t, samplePuzzle, parsed)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("12345")
	assert.Error(t, err, "too short")

	_, err = Parse(samplePuzzle.String() + "1")
	assert.Error(t, err, "too long")

	_, err = Parse("x" + samplePuzzle.String()[1:])
	assert.Error(t, err, "bad character")
}
