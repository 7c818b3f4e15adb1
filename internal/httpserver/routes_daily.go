// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses session)
//   - POST /daily/finish      → record a solved daily and lock the day
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory binding).
// Everyone gets the same puzzle: board and difficulty derive from date + salt.
// Moves, undo, and hints go through the regular /game endpoints; /daily only
// hands out the session and records the result.

package httpserver

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/numgrid/sudoku/internal/daily"
	"github.com/numgrid/sudoku/internal/game"
	"github.com/numgrid/sudoku/internal/sudoku"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailyBinding // active bindings keyed by userID|date
	mu       sync.Mutex               // guards sessions and the puzzle cache

	// Puzzle of the day, generated once and reused for every player.
	puzzleDate string
	puzzle     sudoku.Puzzle
}

// dailyBinding ties a user's daily attempt to a session in the main store.
type dailyBinding struct {
	GameID   string
	UserID   string
	Date     string
	Start    time.Time
	Finished bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailyBinding),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/finish", dd.handleFinish)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// puzzleOfTheDay returns today's date key and the shared daily puzzle,
// regenerating the cache when the date rolls over.
func (d *dailyServer) puzzleOfTheDay() (string, sudoku.Puzzle) {
	now := time.Now().UTC()
	date := daily.DateKey(now)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.puzzleDate == date {
		return date, d.puzzle
	}
	rng := rand.New(rand.NewSource(daily.PuzzleSeed(now, d.salt)))
	d.puzzle = sudoku.Generate(daily.DifficultyFor(now, d.salt), rng)
	d.puzzleDate = date
	// Yesterday's bindings are unreachable now; drop them.
	for k, b := range d.sessions {
		if b.Date != date {
			delete(d.sessions, k)
		}
	}
	return date, d.puzzle
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string       `json:"date"`
	Played bool         `json:"played"`
	Game   *sessionView `json:"game,omitempty"`
}

// handleNew creates or reuses the daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse a session in the main store and return it.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	date, puz := d.puzzleOfTheDay()

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	// Reuse an in-flight attempt if there is one.
	key := uid + "|" + date
	d.mu.Lock()
	if b, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		if sess, err := d.srv.store.Get(r.Context(), b.GameID); err == nil {
			v := viewOf(sess)
			_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Game: &v})
			return
		}
		// Session evicted from the store; fall through and start over.
		d.mu.Lock()
		delete(d.sessions, key)
	}
	d.mu.Unlock()

	sess := game.New(puz)
	if err := d.srv.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
		return
	}
	d.mu.Lock()
	d.sessions[key] = &dailyBinding{
		GameID: sess.ID,
		UserID: uid,
		Date:   date,
		Start:  time.Now(),
	}
	d.mu.Unlock()

	v := viewOf(sess)
	_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Game: &v})
}

// -----------------------------------------------------------------------------
// /daily/finish

// dailyFinishReq is the request payload for /daily/finish.
type dailyFinishReq struct {
	GameID string `json:"gameId"`
}

// dailyFinishRes is the response payload for /daily/finish.
type dailyFinishRes struct {
	State     string `json:"state"` // won | locked
	Moves     int    `json:"moves"`
	Hints     int    `json:"hints"`
	ElapsedMs int    `json:"elapsedMs"`
}

// handleFinish records the result of a solved daily puzzle.
// - Ensures the game belongs to today's binding for this user.
// - Rejects unless the board is actually complete.
// - Persists the result; once recorded, the day is locked.
func (d *dailyServer) handleFinish(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var p dailyFinishReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.GameID == "" {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}

	date := daily.DateKey(time.Now().UTC())
	key := uid + "|" + date
	d.mu.Lock()
	b, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || b.GameID != p.GameID {
		http.Error(w, `{"error":"no session"}`, http.StatusConflict)
		return
	}
	if b.Finished {
		_ = json.NewEncoder(w).Encode(dailyFinishRes{State: "locked"})
		return
	}

	sess, err := d.srv.store.Get(r.Context(), b.GameID)
	if err != nil {
		http.Error(w, `{"error":"game not found"}`, http.StatusNotFound)
		return
	}
	if !sess.Completed() {
		http.Error(w, `{"error":"not solved"}`, http.StatusConflict)
		return
	}

	d.mu.Lock()
	b.Finished = true
	d.mu.Unlock()

	elapsed := int(time.Since(b.Start).Milliseconds())
	_ = d.store.InsertResult(r.Context(), daily.Result{
		UserID:     uid,
		Date:       date,
		Difficulty: string(sess.Difficulty),
		Moves:      sess.MoveCount,
		Hints:      sess.Hints,
		ElapsedMs:  elapsed,
	})
	_ = json.NewEncoder(w).Encode(dailyFinishRes{
		State:     "won",
		Moves:     sess.MoveCount,
		Hints:     sess.Hints,
		ElapsedMs: elapsed,
	})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now().UTC())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"server error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
