// internal/httpserver/routes_game.go
//
// Game lifecycle handlers: create, fetch, move, undo, hint, check,
// plus the stateless /solve and /generate endpoints.

package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/numgrid/sudoku/internal/game"
	"github.com/numgrid/sudoku/internal/sudoku"
)

// sessionView is the JSON shape returned for a game session. The solution
// never leaves the server; /game/hint and /game/check expose it one cell
// at a time.
type sessionView struct {
	ID         string `json:"id"`
	Difficulty string `json:"difficulty"`
	Board      string `json:"board"`
	Givens     string `json:"givens"`
	MoveCount  int    `json:"moveCount"`
	Hints      int    `json:"hints"`
	Status     string `json:"status"`
	Clock      string `json:"clock"`
}

func viewOf(s *game.Session) sessionView {
	return sessionView{
		ID:         s.ID,
		Difficulty: string(s.Difficulty),
		Board:      s.Board.Flat(),
		Givens:     givensString(&s.Givens),
		MoveCount:  s.MoveCount,
		Hints:      s.Hints,
		Status:     s.Status(),
		Clock:      s.ClockString(),
	}
}

// givensString renders the mask as 81 chars of '0'/'1' in row-major order.
func givensString(m *sudoku.GivenMask) string {
	buf := make([]byte, 0, 81)
	for r := 0; r < sudoku.Size; r++ {
		for c := 0; c < sudoku.Size; c++ {
			if m[r][c] {
				buf = append(buf, '1')
			} else {
				buf = append(buf, '0')
			}
		}
	}
	return string(buf)
}

// loadSession fetches a session by ID or writes a JSON 404.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, id string) (*game.Session, bool) {
	if id == "" {
		http.Error(w, `{"error":"missing id"}`, http.StatusBadRequest)
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"game not found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// handleNewGame starts a session at the requested difficulty. Guests play via
// the anon cookie; signed-in users get the game attached to their account.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Difficulty string `json:"difficulty"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	d := sudoku.Easy
	if body.Difficulty != "" {
		var err error
		if d, err = sudoku.ParseDifficulty(body.Difficulty); err != nil {
			http.Error(w, `{"error":"unknown difficulty"}`, http.StatusBadRequest)
			return
		}
	}

	puz := s.pool.Take(d)
	sess := game.New(puz)
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
		return
	}

	// Record ownership so finished games land in stats/history. Best effort;
	// gameplay works even if the insert fails.
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	var userID, anonID any
	if me != nil {
		userID = me.ID
	} else {
		anonID = s.ensureAnonID(w, r)
	}
	if _, err := s.db.Exec(`INSERT INTO games (id, user_id, anonymous_id, difficulty, status, moves, hints, started_at)
	                        VALUES (?,?,?,?, 'playing', 0, 0, ?)`,
		sess.ID, userID, anonID, string(d), time.Now().UTC().Format(time.RFC3339)); err != nil {
		log.Warn().Err(err).Str("game", sess.ID).Msg("record game start")
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(viewOf(sess))
}

// handleGetGame returns the current state of a session.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(sess))
}

// handleMove applies one placement (or a clear when value is 0) and reports
// any conflicts the move created. A move that completes the grid finishes
// the game and updates account stats.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID    string `json:"id"`
		Row   int    `json:"row"`
		Col   int    `json:"col"`
		Value uint8  `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.loadSession(w, r, body.ID)
	if !ok {
		return
	}
	if sess.Completed() {
		http.Error(w, `{"error":"game already solved"}`, http.StatusConflict)
		return
	}
	if err := sess.Apply(body.Row, body.Col, body.Value); err != nil {
		if errors.Is(err, game.ErrGivenCell) {
			http.Error(w, `{"error":"cell is a given"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	conflicts := []sudoku.Coord{}
	if body.Value != 0 {
		conflicts = sess.Conflicts(body.Row, body.Col)
	}
	done := sess.Completed()
	if done {
		s.finishGame(r, sess)
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"game":      viewOf(sess),
		"conflicts": conflicts,
		"solved":    done,
	})
}

// finishGame closes out the games row and bumps the owner's stats.
func (s *Server) finishGame(r *http.Request, sess *game.Session) {
	gamesCompleted.WithLabelValues(string(sess.Difficulty)).Inc()

	now := time.Now().UTC().Format(time.RFC3339)
	elapsed := sess.Elapsed().Milliseconds()
	if _, err := s.db.Exec(`UPDATE games SET status='won', moves=?, hints=?, finished_at=?, elapsed_ms=? WHERE id=?`,
		sess.MoveCount, sess.Hints, now, elapsed, sess.ID); err != nil {
		log.Warn().Err(err).Str("game", sess.ID).Msg("record game finish")
	}

	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		return
	}
	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin stats tx")
		return
	}
	if err := s.bumpStats(tx, me.ID, true); err != nil {
		log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		_ = tx.Rollback()
		return
	}
	_ = tx.Commit()
}

// handleUndo reverts the most recent move.
func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.loadSession(w, r, body.ID)
	if !ok {
		return
	}
	undone := sess.Undo()
	if undone {
		if err := s.store.Save(r.Context(), sess); err != nil {
			http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
			return
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"game":   viewOf(sess),
		"undone": undone,
	})
}

// handleHint suggests the solution digit for one empty cell. The cell is not
// filled in; the player still has to place the digit themselves.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.loadSession(w, r, body.ID)
	if !ok {
		return
	}
	cell, value, hinted := sess.Hint()
	if hinted {
		if err := s.store.Save(r.Context(), sess); err != nil {
			http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
			return
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"cell":   cell,
		"value":  value,
		"hinted": hinted,
		"hints":  sess.Hints,
	})
}

// handleCheck lists cells whose current value disagrees with the solution.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.loadSession(w, r, body.ID)
	if !ok {
		return
	}
	mistakes := sess.Mistakes()
	_ = json.NewEncoder(w).Encode(map[string]any{
		"mistakes": mistakes,
		"clean":    len(mistakes) == 0,
	})
}

// handleSolve solves an arbitrary 81-char grid. Status is one of:
// solved, unsolvable, multiple (more than one completion), invalid
// (a given already conflicts with another given).
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Board string `json:"board"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	b, err := sudoku.Parse(body.Board)
	if err != nil {
		solveOutcomes.WithLabelValues("invalid").Inc()
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	for r0 := 0; r0 < sudoku.Size; r0++ {
		for c0 := 0; c0 < sudoku.Size; c0++ {
			if b[r0][c0] != 0 && b.HasConflicts(r0, c0) {
				solveOutcomes.WithLabelValues("invalid").Inc()
				_ = json.NewEncoder(w).Encode(map[string]any{"status": "invalid"})
				return
			}
		}
	}

	switch n := sudoku.CountSolutions(b, 2); n {
	case 0:
		solveOutcomes.WithLabelValues("unsolvable").Inc()
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "unsolvable"})
	case 1:
		solved, _ := sudoku.Solve(b)
		solveOutcomes.WithLabelValues("solved").Inc()
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "solved", "solution": solved.Flat()})
	default:
		solved, _ := sudoku.Solve(b)
		solveOutcomes.WithLabelValues("multiple").Inc()
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "multiple", "solution": solved.Flat()})
	}
}

// handleGenerate produces a puzzle without creating a session. Omitting the
// seed draws from the pre-generated pool; passing one gives reproducible
// output for the same seed and difficulty.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Difficulty string `json:"difficulty"`
		Seed       *int64 `json:"seed"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	d := sudoku.Easy
	if body.Difficulty != "" {
		var err error
		if d, err = sudoku.ParseDifficulty(body.Difficulty); err != nil {
			http.Error(w, `{"error":"unknown difficulty"}`, http.StatusBadRequest)
			return
		}
	}

	var puz sudoku.Puzzle
	if body.Seed != nil {
		puz = sudoku.Generate(d, rand.New(rand.NewSource(*body.Seed)))
	} else {
		puz = s.pool.Take(d)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"board":      puz.Board.Flat(),
		"givens":     givensString(&puz.Givens),
		"solution":   puz.Solution.Flat(),
		"difficulty": string(puz.Difficulty),
	})
}
