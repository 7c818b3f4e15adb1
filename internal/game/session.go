// internal/game/session.go
//
// Session engine for a single sudoku game.
// Responsibilities:
//   - Apply and undo cell edits, refusing edits to given cells.
//   - Cap the undo history so long games stay bounded.
//   - Track the play clock across pause, resume, and reload.
//   - Answer hint, conflict, and completion queries from the engine.
//
// Notes:
//   - Hints are looked up in the solution recorded at generation time;
//     nothing here ever re-runs the solver.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/numgrid/sudoku/internal/sudoku"
)

// maxHistory caps the undo stack; older moves fall off the bottom.
const maxHistory = 100

// ErrGivenCell reports an attempt to edit one of the puzzle's given cells.
var ErrGivenCell = errors.New("game: cell is a given")

// New starts a session for a freshly generated puzzle.
func New(p sudoku.Puzzle) *Session {
	return &Session{
		ID:         randomID(),
		Difficulty: p.Difficulty,
		Board:      p.Board,
		Givens:     p.Givens,
		Solution:   p.Solution,
		History:    []Move{},
		startedAt:  time.Now(),
	}
}

// Apply sets cell (r,c) to v, where v == 0 clears the cell. The edit is
// recorded for undo. Given cells reject every edit, clears included.
func (s *Session) Apply(r, c int, v uint8) error {
	old, err := s.Board.Get(r, c)
	if err != nil {
		return err
	}
	if s.Givens[r][c] {
		return ErrGivenCell
	}
	if err := s.Board.Set(r, c, v); err != nil {
		return err
	}

	s.History = append(s.History, Move{Row: r, Col: c, Old: old, New: v})
	if len(s.History) > maxHistory {
		s.History = s.History[len(s.History)-maxHistory:]
	}
	s.MoveCount++
	return nil
}

// Undo reverts the most recent edit. It reports false when there is
// nothing left to undo.
func (s *Session) Undo() bool {
	if len(s.History) == 0 {
		return false
	}
	m := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	s.Board[m.Row][m.Col] = m.Old
	if s.MoveCount > 0 {
		s.MoveCount--
	}
	return true
}

// Hint returns the first empty cell in scan order together with the digit
// the solution holds there, and counts the hint as used. ok is false once
// the board is full.
func (s *Session) Hint() (sudoku.Coord, uint8, bool) {
	cell, v, ok := sudoku.Hint(s.Board, s.Solution)
	if ok {
		s.Hints++
	}
	return cell, v, ok
}

// Conflicts lists the filled cells clashing with cell (r,c).
func (s *Session) Conflicts(r, c int) []sudoku.Coord {
	return s.Board.Conflicts(r, c)
}

// Mistakes lists the player-filled cells that disagree with the solution.
// Given cells never appear (they came from the solution).
func (s *Session) Mistakes() []sudoku.Coord {
	var out []sudoku.Coord
	for r := 0; r < sudoku.Size; r++ {
		for c := 0; c < sudoku.Size; c++ {
			if s.Board[r][c] != 0 && s.Board[r][c] != s.Solution[r][c] {
				out = append(out, sudoku.Coord{Row: r, Col: c})
			}
		}
	}
	return out
}

// Completed reports whether the board is full and free of conflicts.
func (s *Session) Completed() bool {
	return s.Board.IsComplete()
}

// Status reports a coarse string representation of the session state.
func (s *Session) Status() string {
	if s.Completed() {
		return "solved"
	}
	return "playing"
}

// Pause stops the clock. Pausing an already paused session is a no-op.
func (s *Session) Pause() {
	if s.paused {
		return
	}
	s.banked += time.Since(s.startedAt)
	s.paused = true
}

// Resume restarts the clock after a Pause.
func (s *Session) Resume() {
	if !s.paused {
		return
	}
	s.startedAt = time.Now()
	s.paused = false
}

// Paused reports whether the clock is currently stopped.
func (s *Session) Paused() bool { return s.paused }

// Elapsed returns total play time, pauses excluded.
func (s *Session) Elapsed() time.Duration {
	if s.paused {
		return s.banked
	}
	return s.banked + time.Since(s.startedAt)
}

// ClockString formats the elapsed time as MM:SS for display.
func (s *Session) ClockString() string {
	total := int(s.Elapsed().Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
