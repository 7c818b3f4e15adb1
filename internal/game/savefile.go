// internal/game/savefile.go
//
// Suspend and resume support: a Session serializes to a Snapshot, and a
// Snapshot round-trips through a JSON save file so an unfinished game
// survives quitting the terminal UI.

package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/numgrid/sudoku/internal/sudoku"
)

// saveFileName is the save file kept in the user's home directory.
const saveFileName = ".sudoku-save.json"

// Snapshot is the serialized form of a Session. The running clock is
// flattened to elapsed seconds at capture time; restoring starts a fresh
// span on top of it.
type Snapshot struct {
	ID         string            `json:"id"`
	Difficulty sudoku.Difficulty `json:"difficulty"`
	Board      sudoku.Board      `json:"board"`
	Givens     sudoku.GivenMask  `json:"givens"`
	Solution   sudoku.Board      `json:"solution"`
	Cursor     sudoku.Coord      `json:"cursor"`
	MoveCount  int               `json:"move_count"`
	Hints      int               `json:"hints"`
	History    []Move            `json:"history"`
	ElapsedSec float64           `json:"elapsed_seconds"`
	SavedAt    time.Time         `json:"saved_at"`
}

// Snapshot captures the session, clock included, for persistence.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:         s.ID,
		Difficulty: s.Difficulty,
		Board:      s.Board,
		Givens:     s.Givens,
		Solution:   s.Solution,
		Cursor:     s.Cursor,
		MoveCount:  s.MoveCount,
		Hints:      s.Hints,
		History:    append([]Move{}, s.History...),
		ElapsedSec: s.Elapsed().Seconds(),
		SavedAt:    time.Now(),
	}
}

// Restore rebuilds a Session from a Snapshot. The banked play time carries
// over and the clock starts running again immediately.
func Restore(snap Snapshot) *Session {
	s := &Session{
		ID:         snap.ID,
		Difficulty: snap.Difficulty,
		Board:      snap.Board,
		Givens:     snap.Givens,
		Solution:   snap.Solution,
		Cursor:     snap.Cursor,
		MoveCount:  snap.MoveCount,
		Hints:      snap.Hints,
		History:    append([]Move{}, snap.History...),
		startedAt:  time.Now(),
		banked:     time.Duration(snap.ElapsedSec * float64(time.Second)),
	}
	if s.ID == "" {
		s.ID = randomID()
	}
	if s.History == nil {
		s.History = []Move{}
	}
	return s
}

// DefaultSavePath returns the per-user save file location.
func DefaultSavePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, saveFileName), nil
}

// Save writes the session to path, creating parent directories as needed.
func Save(path string, s *Session) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a saved session from path. A missing, unreadable, or corrupt
// file reports ok=false; there is no game to resume in any of those cases.
func Load(path string) (*Session, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return Restore(snap), true
}

// Delete removes the save file. A file that is already gone is not an
// error.
func Delete(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
