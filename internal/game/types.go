// internal/game/types.go
//
// Core type definitions for a single sudoku session.
// Defines:
//   - Move: one reversible cell edit (for undo).
//   - Session: state for an in-progress or finished game.

package game

import (
	"time"

	"github.com/numgrid/sudoku/internal/sudoku"
)

// Move records a single cell edit so it can be undone. Old is the value the
// cell held before the edit (0 when it was empty).
type Move struct {
	Row int   `json:"row"`
	Col int   `json:"col"`
	Old uint8 `json:"old"`
	New uint8 `json:"new"`
}

// Session holds everything one running game needs: the player's board, the
// immutable givens, the solution recorded at generation time, the undo
// history, and the clock.
//
// Sessions are not safe for concurrent use; callers serialize access.
type Session struct {
	ID         string            // Unique session identifier (random hex string).
	Difficulty sudoku.Difficulty // Bucket the puzzle was generated at.
	Board      sudoku.Board      // Current grid, player entries included.
	Givens     sudoku.GivenMask  // Marks the cells the player may not edit.
	Solution   sudoku.Board      // Full solution, used for hints and checks.
	Cursor     sudoku.Coord      // Last cursor position (terminal UI state).
	MoveCount  int               // Net number of edits (undo subtracts).
	Hints      int               // Number of hints handed out.
	History    []Move            // Most recent edits, oldest first.

	// Clock state. banked accumulates finished spans (pauses, reloads);
	// startedAt anchors the currently running span.
	startedAt time.Time
	banked    time.Duration
	paused    bool
}
