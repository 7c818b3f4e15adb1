package httpserver

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numgrid/sudoku/internal/sudoku"
)

// Shared 9x9 fixture with a unique solution.
const (
	solveFixture  = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	solveSolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

type moveRes struct {
	Game      sessionView    `json:"game"`
	Conflicts []sudoku.Coord `json:"conflicts"`
	Solved    bool           `json:"solved"`
}

func startGame(t *testing.T, c *testClient, difficulty string) sessionView {
	t.Helper()
	rec := c.do(http.MethodPost, "/game/new", map[string]string{"difficulty": difficulty})
	require.Equal(t, http.StatusCreated, rec.Code)
	var v sessionView
	decodeJSON(t, rec, &v)
	return v
}

// replaySolution pushes the recorded solution through /game/move cell by
// cell and returns the response to the final, completing move.
func replaySolution(t *testing.T, c *testClient, srv *Server, id string) moveRes {
	t.Helper()
	sess, err := srv.store.Get(context.Background(), id)
	require.NoError(t, err)

	var last moveRes
	for r := 0; r < sudoku.Size; r++ {
		for col := 0; col < sudoku.Size; col++ {
			if sess.Givens[r][col] {
				continue
			}
			rec := c.do(http.MethodPost, "/game/move", map[string]any{
				"id": id, "row": r, "col": col, "value": sess.Solution[r][col],
			})
			require.Equal(t, http.StatusOK, rec.Code, "move (%d,%d): %s", r, col, rec.Body.String())
			decodeJSON(t, rec, &last)
		}
	}
	return last
}

func TestNewGameAndFetch(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	v := startGame(t, c, "easy")
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "easy", v.Difficulty)
	assert.Len(t, v.Board, 81)
	assert.Len(t, v.Givens, 81)
	assert.Equal(t, "playing", v.Status)
	assert.Zero(t, v.MoveCount)

	// filled cells and given marks line up
	assert.Equal(t, strings.Count(v.Givens, "1"), 81-strings.Count(v.Board, "0"))

	rec := c.do(http.MethodGet, "/game/"+v.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got sessionView
	decodeJSON(t, rec, &got)
	assert.Equal(t, v.ID, got.ID)
	assert.Equal(t, v.Board, got.Board)

	// a guest game gets an anon cookie and an ownership row
	require.NotNil(t, c.cookie("sudoku_anon"))
	var anonID string
	require.NoError(t, srv.db.QueryRow(`SELECT anonymous_id FROM games WHERE id=?`, v.ID).Scan(&anonID))
	assert.Equal(t, c.cookie("sudoku_anon").Value, anonID)
}

func TestNewGameUnknownDifficulty(t *testing.T) {
	c := newClient(t, newTestServer(t))
	rec := c.do(http.MethodPost, "/game/new", map[string]string{"difficulty": "nightmare"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGameMissing(t *testing.T) {
	c := newClient(t, newTestServer(t))
	rec := c.do(http.MethodGet, "/game/doesnotexist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMoveHintUndoFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	v := startGame(t, c, "easy")

	// ask for a hint, then play exactly what it suggested
	rec := c.do(http.MethodPost, "/game/hint", map[string]string{"id": v.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	var hint struct {
		Cell   sudoku.Coord `json:"cell"`
		Value  uint8        `json:"value"`
		Hinted bool         `json:"hinted"`
		Hints  int          `json:"hints"`
	}
	decodeJSON(t, rec, &hint)
	require.True(t, hint.Hinted)
	assert.Equal(t, 1, hint.Hints)

	rec = c.do(http.MethodPost, "/game/move", map[string]any{
		"id": v.ID, "row": hint.Cell.Row, "col": hint.Cell.Col, "value": hint.Value,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var mv moveRes
	decodeJSON(t, rec, &mv)
	assert.Empty(t, mv.Conflicts, "the suggested digit never clashes")
	assert.Equal(t, 1, mv.Game.MoveCount)
	assert.False(t, mv.Solved)

	// undo restores the starting board
	rec = c.do(http.MethodPost, "/game/undo", map[string]string{"id": v.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	var un struct {
		Game   sessionView `json:"game"`
		Undone bool        `json:"undone"`
	}
	decodeJSON(t, rec, &un)
	assert.True(t, un.Undone)
	assert.Equal(t, v.Board, un.Game.Board)

	// nothing left to undo
	rec = c.do(http.MethodPost, "/game/undo", map[string]string{"id": v.ID})
	decodeJSON(t, rec, &un)
	assert.False(t, un.Undone)
}

func TestMoveRejectsGivenCell(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	v := startGame(t, c, "easy")

	r, col := -1, -1
	for i, ch := range v.Givens {
		if ch == '1' {
			r, col = i/9, i%9
			break
		}
	}
	require.GreaterOrEqual(t, r, 0)

	rec := c.do(http.MethodPost, "/game/move", map[string]any{"id": v.ID, "row": r, "col": col, "value": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "given")
}

func TestMoveOutOfRange(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	v := startGame(t, c, "easy")

	rec := c.do(http.MethodPost, "/game/move", map[string]any{"id": v.ID, "row": 9, "col": 0, "value": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMoveReportsConflicts(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	v := startGame(t, c, "easy")

	sess, err := srv.store.Get(context.Background(), v.ID)
	require.NoError(t, err)

	// place a digit that already occurs in the same row
	r, col, clash := -1, -1, uint8(0)
	for i := 0; i < sudoku.Size && r < 0; i++ {
		for j := 0; j < sudoku.Size; j++ {
			if sess.Board[i][j] != 0 {
				continue
			}
			for k := 0; k < sudoku.Size; k++ {
				if sess.Board[i][k] != 0 {
					r, col, clash = i, j, sess.Board[i][k]
					break
				}
			}
			break
		}
	}
	require.GreaterOrEqual(t, r, 0)

	rec := c.do(http.MethodPost, "/game/move", map[string]any{"id": v.ID, "row": r, "col": col, "value": clash})
	require.Equal(t, http.StatusOK, rec.Code)
	var mv moveRes
	decodeJSON(t, rec, &mv)
	assert.NotEmpty(t, mv.Conflicts)

	// clearing the cell reports no conflicts
	rec = c.do(http.MethodPost, "/game/move", map[string]any{"id": v.ID, "row": r, "col": col, "value": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &mv)
	assert.Empty(t, mv.Conflicts)
}

func TestCheckFindsMistakes(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	v := startGame(t, c, "easy")

	sess, err := srv.store.Get(context.Background(), v.ID)
	require.NoError(t, err)
	cell, right, ok := sudoku.Hint(sess.Board, sess.Solution)
	require.True(t, ok)
	wrong := right%9 + 1

	c.do(http.MethodPost, "/game/move", map[string]any{"id": v.ID, "row": cell.Row, "col": cell.Col, "value": wrong})
	rec := c.do(http.MethodPost, "/game/check", map[string]string{"id": v.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	var chk struct {
		Mistakes []sudoku.Coord `json:"mistakes"`
		Clean    bool           `json:"clean"`
	}
	decodeJSON(t, rec, &chk)
	assert.False(t, chk.Clean)
	assert.Contains(t, chk.Mistakes, cell)

	c.do(http.MethodPost, "/game/move", map[string]any{"id": v.ID, "row": cell.Row, "col": cell.Col, "value": right})
	rec = c.do(http.MethodPost, "/game/check", map[string]string{"id": v.ID})
	decodeJSON(t, rec, &chk)
	assert.True(t, chk.Clean)
	assert.Empty(t, chk.Mistakes)
}

func TestCompleteGameOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	v := startGame(t, c, "easy")

	last := replaySolution(t, c, srv, v.ID)
	assert.True(t, last.Solved)
	assert.Equal(t, "solved", last.Game.Status)

	rec := c.do(http.MethodGet, "/game/"+v.ID, nil)
	var got sessionView
	decodeJSON(t, rec, &got)
	assert.Equal(t, "solved", got.Status)

	// moving after the win is refused
	rec = c.do(http.MethodPost, "/game/move", map[string]any{"id": v.ID, "row": 0, "col": 0, "value": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// the ownership row is closed out
	var status string
	var elapsed int64
	require.NoError(t, srv.db.QueryRow(`SELECT status, elapsed_ms FROM games WHERE id=?`, v.ID).Scan(&status, &elapsed))
	assert.Equal(t, "won", status)
	assert.GreaterOrEqual(t, elapsed, int64(0))
}

func TestSolveEndpoint(t *testing.T) {
	c := newClient(t, newTestServer(t))

	t.Run("solved", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/solve", map[string]string{"board": solveFixture})
		require.Equal(t, http.StatusOK, rec.Code)
		var res struct {
			Status   string `json:"status"`
			Solution string `json:"solution"`
		}
		decodeJSON(t, rec, &res)
		assert.Equal(t, "solved", res.Status)
		assert.Equal(t, solveSolution, res.Solution)
	})

	t.Run("unsolvable", func(t *testing.T) {
		// a 1 at (0,2) clashes with nothing but contradicts the only solution
		grid := []byte(solveFixture)
		grid[2] = '1'
		rec := c.do(http.MethodPost, "/solve", map[string]string{"board": string(grid)})
		require.Equal(t, http.StatusOK, rec.Code)
		var res struct {
			Status string `json:"status"`
		}
		decodeJSON(t, rec, &res)
		assert.Equal(t, "unsolvable", res.Status)
	})

	t.Run("multiple", func(t *testing.T) {
		// blanking a rectangle whose corners hold the same two digits
		// leaves exactly two completions
		grid := []byte(solveSolution)
		for _, i := range []int{3*9 + 5, 3*9 + 8, 4*9 + 5, 4*9 + 8} {
			grid[i] = '0'
		}
		rec := c.do(http.MethodPost, "/solve", map[string]string{"board": string(grid)})
		require.Equal(t, http.StatusOK, rec.Code)
		var res struct {
			Status   string `json:"status"`
			Solution string `json:"solution"`
		}
		decodeJSON(t, rec, &res)
		assert.Equal(t, "multiple", res.Status)
		assert.Len(t, res.Solution, 81)
	})

	t.Run("invalid", func(t *testing.T) {
		grid := []byte(solveFixture)
		grid[1] = '5' // second 5 in the top row
		rec := c.do(http.MethodPost, "/solve", map[string]string{"board": string(grid)})
		require.Equal(t, http.StatusOK, rec.Code)
		var res struct {
			Status string `json:"status"`
		}
		decodeJSON(t, rec, &res)
		assert.Equal(t, "invalid", res.Status)
	})

	t.Run("malformed", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/solve", map[string]string{"board": "12345"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	c := newClient(t, newTestServer(t))

	body := map[string]any{"difficulty": "medium", "seed": 42}
	var first, second struct {
		Board      string `json:"board"`
		Givens     string `json:"givens"`
		Solution   string `json:"solution"`
		Difficulty string `json:"difficulty"`
	}

	rec := c.do(http.MethodPost, "/generate", body)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &first)

	rec = c.do(http.MethodPost, "/generate", body)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &second)

	assert.Equal(t, first, second)
	assert.Equal(t, "medium", first.Difficulty)

	// the reported solution really completes the reported board
	sol, err := sudoku.Parse(first.Solution)
	require.NoError(t, err)
	assert.True(t, sol.IsComplete())
	board, err := sudoku.Parse(first.Board)
	require.NoError(t, err)
	for r := 0; r < sudoku.Size; r++ {
		for col := 0; col < sudoku.Size; col++ {
			if board[r][col] != 0 {
				assert.Equal(t, sol[r][col], board[r][col])
			}
		}
	}
}

func TestGenerateUnseeded(t *testing.T) {
	c := newClient(t, newTestServer(t))
	rec := c.do(http.MethodPost, "/generate", map[string]string{"difficulty": "easy"})
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Board string `json:"board"`
	}
	decodeJSON(t, rec, &res)
	assert.Len(t, res.Board, 81)
}
