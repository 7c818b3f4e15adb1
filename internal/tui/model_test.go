package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numgrid/sudoku/internal/game"
	"github.com/numgrid/sudoku/internal/sudoku"
)

const (
	fixtureBoard    = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	fixtureSolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

func fixtureSession(t *testing.T) *game.Session {
	t.Helper()
	board, err := sudoku.Parse(fixtureBoard)
	require.NoError(t, err)
	sol, err := sudoku.Parse(fixtureSolution)
	require.NoError(t, err)
	var mask sudoku.GivenMask
	for r := 0; r < sudoku.Size; r++ {
		for c := 0; c < sudoku.Size; c++ {
			mask[r][c] = board[r][c] != 0
		}
	}
	return game.New(sudoku.Puzzle{Board: board, Givens: mask, Solution: sol, Difficulty: sudoku.Easy})
}

// playModel returns a model already on the board screen with the fixture.
func playModel(t *testing.T) Model {
	t.Helper()
	m := New(filepath.Join(t.TempDir(), "save.json"))
	m.sess = fixtureSession(t)
	m.screen = screenPlay
	return m
}

func keyRune(s string) tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func press(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestMenuSelectGeneratesPuzzle(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "save.json"))
	require.Equal(t, screenMenu, m.screen)

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.menuIdx)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.True(t, m.generating)
	require.NotNil(t, cmd)

	msg := cmd()
	puz, ok := msg.(puzzleMsg)
	require.True(t, ok)
	assert.Equal(t, sudoku.Medium, puz.puz.Difficulty)

	m = press(m, msg)
	require.Equal(t, screenPlay, m.screen)
	require.NotNil(t, m.sess)
	assert.False(t, m.generating)
	assert.Equal(t, sudoku.Medium, m.sess.Difficulty)
}

func TestCursorMovementWraps(t *testing.T) {
	m := playModel(t)

	for i := 0; i < 9; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 0, m.sess.Cursor.Col)

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 8, m.sess.Cursor.Row)

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.sess.Cursor.Row)

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 8, m.sess.Cursor.Col)
}

func TestPlaceDigitAndClear(t *testing.T) {
	m := playModel(t)

	// (0,0) is a given
	m = press(m, keyRune("1"))
	assert.Contains(t, m.flash, "given")
	assert.Equal(t, 0, m.sess.MoveCount)

	// (0,2) is empty; its solution digit is 4
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(m, keyRune("4"))
	v, err := m.sess.Board.Get(0, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(4), v)
	assert.Equal(t, 1, m.sess.MoveCount)

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	v, _ = m.sess.Board.Get(0, 2)
	assert.Equal(t, uint8(0), v)
	assert.Equal(t, 2, m.sess.MoveCount)

	// clearing an already-empty cell is a no-op
	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, 2, m.sess.MoveCount)
}

func TestUndoKey(t *testing.T) {
	m := playModel(t)
	m.sess.Cursor = sudoku.Coord{Row: 0, Col: 2}

	m = press(m, keyRune("4"))
	require.Equal(t, 1, m.sess.MoveCount)

	m = press(m, keyRune("u"))
	v, _ := m.sess.Board.Get(0, 2)
	assert.Equal(t, uint8(0), v)
	assert.Equal(t, 0, m.sess.MoveCount)

	m = press(m, keyRune("u"))
	assert.Contains(t, m.flash, "Nothing to undo")
}

func TestHintHighlightsWithoutFilling(t *testing.T) {
	m := playModel(t)

	m = press(m, keyRune("h"))
	require.NotNil(t, m.hintCell)
	assert.Equal(t, sudoku.Coord{Row: 0, Col: 2}, *m.hintCell)
	assert.Equal(t, uint8(4), m.hintValue)
	assert.Contains(t, m.flash, "Hint: try 4 at row 1, col 3")
	assert.Equal(t, 1, m.sess.Hints)

	// the hint never writes to the board
	v, _ := m.sess.Board.Get(0, 2)
	assert.Equal(t, uint8(0), v)

	// playing any digit clears the highlight
	m.sess.Cursor = sudoku.Coord{Row: 0, Col: 2}
	m = press(m, keyRune("4"))
	assert.Nil(t, m.hintCell)
}

func TestCheckMarksMistakes(t *testing.T) {
	m := playModel(t)
	m.sess.Cursor = sudoku.Coord{Row: 0, Col: 2}

	m = press(m, keyRune("9")) // solution wants a 4 here
	m = press(m, keyRune("c"))
	assert.Contains(t, m.flash, "1 cell(s) disagree")
	assert.True(t, m.mistakes[sudoku.Coord{Row: 0, Col: 2}])

	m = press(m, keyRune("4"))
	assert.Empty(t, m.mistakes)
	m = press(m, keyRune("c"))
	assert.Contains(t, m.flash, "All good so far")
}

func TestHelpOverlayStopsClock(t *testing.T) {
	m := playModel(t)

	m = press(m, keyRune("?"))
	assert.True(t, m.showHelp)
	assert.True(t, m.sess.Paused())

	m = press(m, keyRune("?"))
	assert.False(t, m.showHelp)
	assert.False(t, m.sess.Paused())
}

func TestPauseHidesBoard(t *testing.T) {
	m := playModel(t)
	m.sess.Cursor = sudoku.Coord{Row: 0, Col: 2}

	m = press(m, keyRune("p"))
	assert.True(t, m.paused)
	assert.True(t, m.sess.Paused())
	assert.NotContains(t, m.View(), "│", "board hidden while paused")

	m = press(m, keyRune("5"))
	assert.Equal(t, 0, m.sess.MoveCount, "digits ignored while paused")

	m = press(m, keyRune("p"))
	assert.False(t, m.paused)
	assert.False(t, m.sess.Paused())
}

func TestNewGameAsksFirst(t *testing.T) {
	m := playModel(t)

	m = press(m, keyRune("n"))
	assert.True(t, m.confirmNew)

	// anything but y cancels
	m = press(m, keyRune("x"))
	assert.False(t, m.confirmNew)
	assert.Equal(t, screenPlay, m.screen)

	m = press(m, keyRune("n"))
	m = press(m, keyRune("y"))
	assert.Equal(t, screenMenu, m.screen)
	assert.Nil(t, m.sess)
}

func TestQuitSavesUnfinishedGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	m := New(path)
	m.sess = fixtureSession(t)
	m.screen = screenPlay
	m.sess.Cursor = sudoku.Coord{Row: 0, Col: 2}
	m = press(m, keyRune("4"))

	next, cmd := m.Update(keyRune("q"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)

	restored, ok := game.Load(path)
	require.True(t, ok)
	assert.Equal(t, 1, restored.MoveCount)
}

func TestWinRemovesSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	m := New(path)

	sol, err := sudoku.Parse(fixtureSolution)
	require.NoError(t, err)
	board := sol.Clone()
	board[8][8] = 0
	var mask sudoku.GivenMask
	for r := 0; r < sudoku.Size; r++ {
		for c := 0; c < sudoku.Size; c++ {
			mask[r][c] = board[r][c] != 0
		}
	}
	m.sess = game.New(sudoku.Puzzle{Board: board, Givens: mask, Solution: sol, Difficulty: sudoku.Easy})
	m.screen = screenPlay
	require.NoError(t, game.Save(path, m.sess))

	m.sess.Cursor = sudoku.Coord{Row: 8, Col: 8}
	m = press(m, keyRune("9")) // sol[8][8]
	require.Equal(t, screenWin, m.screen)
	assert.True(t, m.sess.Paused(), "clock frozen for the summary")

	_, ok := game.Load(path)
	assert.False(t, ok, "save removed after the win")
}

func TestResumePrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	s := fixtureSession(t)
	require.NoError(t, s.Apply(0, 2, 4))
	require.NoError(t, game.Save(path, s))

	m := New(path)
	require.Equal(t, screenResume, m.screen)
	require.NotNil(t, m.saved)
	assert.True(t, m.saved.Paused(), "clock held during the prompt")

	m = press(m, keyRune("y"))
	require.Equal(t, screenPlay, m.screen)
	assert.Equal(t, 1, m.sess.MoveCount)
	assert.False(t, m.sess.Paused())

	// declining leaves the menu
	m2 := New(path)
	m2 = press(m2, keyRune("n"))
	assert.Equal(t, screenMenu, m2.screen)
	assert.Nil(t, m2.saved)
}

func TestFlashExpiresOnTick(t *testing.T) {
	m := playModel(t)
	m.flash = "stale"
	m.flashAt = time.Now().Add(-flashFor - time.Second)

	m = press(m, tickMsg(time.Now()))
	assert.Empty(t, m.flash)
}

func TestViewShowsBoardAndClock(t *testing.T) {
	m := playModel(t)
	out := m.View()
	assert.Contains(t, out, "sudoku")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "moves 0")
}

func TestViewCountsRemainingDigits(t *testing.T) {
	m := playModel(t)
	// the sample board holds three 5s, so six remain
	assert.Contains(t, m.View(), "5:6")

	for i := range m.sess.Board {
		m.sess.Board[i] = m.sess.Solution[i]
	}
	assert.Contains(t, m.View(), "5:0")
}
