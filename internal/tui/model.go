// internal/tui/model.go
//
// Interactive terminal sudoku built on bubbletea. One Model drives four
// screens: the resume prompt (when a save file exists), the difficulty
// menu, the board itself, and the win summary. The session clock runs
// between keystrokes, so the pause key and the help overlay stop it
// explicitly. Quitting mid-game writes a save file; winning removes it.

package tui

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/numgrid/sudoku/internal/game"
	"github.com/numgrid/sudoku/internal/sudoku"
)

type screen int

const (
	screenResume screen = iota
	screenMenu
	screenPlay
	screenWin
)

// tickMsg refreshes the clock once a second and expires stale flashes.
type tickMsg time.Time

// puzzleMsg delivers a freshly generated puzzle to the model.
type puzzleMsg struct{ puz sudoku.Puzzle }

const flashFor = 2 * time.Second

// Model is the bubbletea model for the whole game.
type Model struct {
	screen screen

	// menu state
	menuIdx    int
	generating bool

	// play state
	sess       *game.Session
	hintCell   *sudoku.Coord
	hintValue  uint8
	mistakes   map[sudoku.Coord]bool
	paused     bool // player-requested; the help overlay pauses separately
	confirmNew bool
	showHelp   bool

	// save handling
	savePath string
	saved    *game.Session

	// transient status line
	flash   string
	flashAt time.Time

	keys keyMap
	help help.Model
	rng  *rand.Rand

	width    int
	quitting bool
}

// New builds the initial model. If a save exists at savePath the game
// starts on the resume prompt, otherwise on the difficulty menu.
func New(savePath string) Model {
	m := Model{
		screen:   screenMenu,
		savePath: savePath,
		mistakes: map[sudoku.Coord]bool{},
		keys:     defaultKeyMap(),
		help:     help.New(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if s, ok := game.Load(savePath); ok {
		// The clock restarts on restore; hold it until the player decides.
		s.Pause()
		m.saved = s
		m.screen = screenResume
	}
	return m
}

// Run starts the interactive game and blocks until the player quits.
func Run(savePath string) error {
	p := tea.NewProgram(New(savePath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.flash != "" && time.Since(m.flashAt) > flashFor {
			m.flash = ""
		}
		return m, tick()

	case puzzleMsg:
		return m.startGame(msg.puz), nil

	case tea.KeyMsg:
		switch m.screen {
		case screenResume:
			return m.updateResume(msg)
		case screenMenu:
			return m.updateMenu(msg)
		case screenPlay:
			return m.updatePlay(msg)
		case screenWin:
			return m.updateWin(msg)
		}
	}
	return m, nil
}

// startGame replaces any previous session with a fresh one. The old save
// file is gone from here on: the new game is the only game.
func (m Model) startGame(puz sudoku.Puzzle) Model {
	_ = game.Delete(m.savePath)
	m.sess = game.New(puz)
	m.saved = nil
	m.generating = false
	m.paused = false
	m.showHelp = false
	m.confirmNew = false
	m.hintCell = nil
	m.mistakes = map[sudoku.Coord]bool{}
	m.screen = screenPlay
	return m
}

func (m Model) updateResume(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.sess = m.saved
		m.saved = nil
		m.sess.Resume()
		m.screen = screenPlay
	case "n", "N":
		m.saved = nil
		m.screen = screenMenu
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.generating {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menuIdx = (m.menuIdx + len(sudoku.Difficulties) - 1) % len(sudoku.Difficulties)
	case key.Matches(msg, m.keys.Down):
		m.menuIdx = (m.menuIdx + 1) % len(sudoku.Difficulties)
	case msg.String() == "enter":
		m.generating = true
		d := sudoku.Difficulties[m.menuIdx]
		seed := m.rng.Int63()
		return m, func() tea.Msg {
			return puzzleMsg{puz: sudoku.Generate(d, rand.New(rand.NewSource(seed)))}
		}
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending new-game question swallows everything except its answer.
	if m.confirmNew {
		m.confirmNew = false
		if s := msg.String(); s == "y" || s == "Y" {
			_ = game.Delete(m.savePath)
			m.sess = nil
			m.screen = screenMenu
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			m.showHelp = false
			if !m.paused {
				m.sess.Resume()
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if !m.sess.Completed() {
			if err := game.Save(m.savePath, m.sess); err == nil {
				m.flash = "Game saved"
			}
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.sess.Pause()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if m.paused {
			m.paused = false
			m.sess.Resume()
		} else {
			m.paused = true
			m.sess.Pause()
		}
		return m, nil
	}

	// Everything below touches the board; a paused board is hidden.
	if m.paused {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.sess.Cursor.Row = (m.sess.Cursor.Row + sudoku.Size - 1) % sudoku.Size
	case key.Matches(msg, m.keys.Down):
		m.sess.Cursor.Row = (m.sess.Cursor.Row + 1) % sudoku.Size
	case key.Matches(msg, m.keys.Left):
		m.sess.Cursor.Col = (m.sess.Cursor.Col + sudoku.Size - 1) % sudoku.Size
	case key.Matches(msg, m.keys.Right):
		m.sess.Cursor.Col = (m.sess.Cursor.Col + 1) % sudoku.Size

	case key.Matches(msg, m.keys.Digit):
		return m.place(msg.String()[0] - '0')

	case key.Matches(msg, m.keys.Clear):
		return m.place(0)

	case key.Matches(msg, m.keys.Undo):
		if m.sess.Undo() {
			m.clearMarks()
		} else {
			m.setFlash("Nothing to undo")
		}

	case key.Matches(msg, m.keys.Hint):
		cell, v, ok := m.sess.Hint()
		if !ok {
			m.setFlash("No empty cells left")
			break
		}
		m.hintCell = &cell
		m.hintValue = v
		m.setFlash(fmt.Sprintf("Hint: try %d at row %d, col %d", v, cell.Row+1, cell.Col+1))

	case key.Matches(msg, m.keys.Check):
		wrong := m.sess.Mistakes()
		m.mistakes = map[sudoku.Coord]bool{}
		for _, c := range wrong {
			m.mistakes[c] = true
		}
		if len(wrong) == 0 {
			m.setFlash("All good so far")
		} else {
			m.setFlash(fmt.Sprintf("%d cell(s) disagree with the solution", len(wrong)))
		}

	case key.Matches(msg, m.keys.New):
		m.confirmNew = true
	}
	return m, nil
}

// place writes v (0 clears) at the cursor and handles the win transition.
func (m Model) place(v uint8) (tea.Model, tea.Cmd) {
	cur := m.sess.Cursor
	if old, _ := m.sess.Board.Get(cur.Row, cur.Col); old == 0 && v == 0 {
		return m, nil // clearing an empty cell is not a move
	}
	if err := m.sess.Apply(cur.Row, cur.Col, v); err != nil {
		m.setFlash("Can't change a given cell")
		return m, nil
	}
	m.clearMarks()
	if m.sess.Completed() {
		_ = game.Delete(m.savePath)
		m.sess.Pause()
		m.screen = screenWin
	}
	return m, nil
}

func (m Model) updateWin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New), msg.String() == "enter":
		m.sess = nil
		m.screen = screenMenu
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) setFlash(s string) {
	m.flash = s
	m.flashAt = time.Now()
}

func (m *Model) clearMarks() {
	m.hintCell = nil
	m.mistakes = map[sudoku.Coord]bool{}
}
