package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termgomoku/engine"
	"termgomoku/pointer"
	"termgomoku/types"
)

func newTestServer(t *testing.T, size, winLength int) (*engine.Controller, http.Handler) {
	t.Helper()
	ctrl, err := engine.NewController(engine.GameConfig{BoardSize: size, WinLength: winLength}, nil)
	require.NoError(t, err)
	h := NewServer(ctrl, Options{
		Defaults: engine.DefaultConfig(),
		Layout:   pointer.DefaultLayout(0),
	}, nil)
	return ctrl, h
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestGetGame(t *testing.T) {
	_, h := newTestServer(t, 9, 5)

	rr := do(t, h, http.MethodGet, "/api/game", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	snap := decodeBody[types.Snapshot](t, rr)
	assert.Equal(t, 9, snap.Size)
	assert.Equal(t, types.Black, snap.CurrentPlayer)
	assert.Equal(t, types.InProgress, snap.Outcome.Status)
	assert.Len(t, snap.Board, 9)
}

func TestNewGame(t *testing.T) {
	ctrl, h := newTestServer(t, 9, 5)

	// Given an explicit size
	rr := do(t, h, http.MethodPost, "/api/game", `{"size": 11, "win_length": 4}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, 11, ctrl.Snapshot().Size)
	assert.Equal(t, 4, ctrl.Snapshot().WinLength)

	// Given an empty body, the configured defaults apply
	rr = do(t, h, http.MethodPost, "/api/game", "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, engine.DefaultBoardSize, ctrl.Snapshot().Size)
	assert.Equal(t, engine.DefaultWinLength, ctrl.Snapshot().WinLength)
}

func TestNewGame_Invalid(t *testing.T) {
	ctrl, h := newTestServer(t, 9, 5)
	id := ctrl.Snapshot().GameID

	tests := []struct {
		name string
		body string
	}{
		{"win length above size", `{"size": 5, "win_length": 6}`},
		{"zero size", `{"size": 0}`},
		{"malformed", `{"size": `},
		{"unknown field", `{"komi": 6.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/game", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, decodeBody[errorResponse](t, rr).Error)
			assert.Equal(t, id, ctrl.Snapshot().GameID, "running game is kept")
		})
	}
}

func TestPlayMove(t *testing.T) {
	ctrl, h := newTestServer(t, 9, 5)

	rr := do(t, h, http.MethodPost, "/api/game/moves", `{"row": 3, "col": 4}`)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	res := decodeBody[moveResponse](t, rr)
	assert.Equal(t, types.Black, res.Player)
	assert.Equal(t, types.InProgress, res.Outcome.Status)
	assert.Equal(t, types.White, res.Snapshot.CurrentPlayer)
	assert.Equal(t, types.Black, res.Snapshot.At(3, 4))
	assert.Equal(t, types.Black, ctrl.Snapshot().At(3, 4))
}

func TestPlayMove_Errors(t *testing.T) {
	_, h := newTestServer(t, 9, 5)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/game/moves", `{"row": 1, "col": 1}`).Code)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"occupied", `{"row": 1, "col": 1}`, http.StatusConflict},
		{"out of bounds", `{"row": 10, "col": 1}`, http.StatusBadRequest},
		{"zero row", `{"row": 0, "col": 1}`, http.StatusBadRequest},
		{"missing col", `{"row": 2}`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
		{"not json", `row=2&col=2`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/game/moves", tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestPlayMove_WinThenLocked(t *testing.T) {
	_, h := newTestServer(t, 9, 3)
	var rr *httptest.ResponseRecorder
	for _, m := range []string{`{"row":1,"col":1}`, `{"row":2,"col":1}`, `{"row":2,"col":2}`, `{"row":3,"col":1}`, `{"row":3,"col":3}`} {
		rr = do(t, h, http.MethodPost, "/api/game/moves", m)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	res := decodeBody[moveResponse](t, rr)
	assert.Equal(t, types.Won, res.Outcome.Status)
	assert.Equal(t, types.Black, res.Outcome.Winner)
	assert.Contains(t, rr.Body.String(), `"axis":"diagonal"`)

	rr = do(t, h, http.MethodPost, "/api/game/moves", `{"row":9,"col":9}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestUndoRedo(t *testing.T) {
	_, h := newTestServer(t, 9, 5)

	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/api/game/undo", "").Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/api/game/redo", "").Code)

	do(t, h, http.MethodPost, "/api/game/moves", `{"row": 5, "col": 5}`)

	rr := do(t, h, http.MethodPost, "/api/game/undo", "")
	require.Equal(t, http.StatusOK, rr.Code)
	snap := decodeBody[types.Snapshot](t, rr)
	assert.Equal(t, types.None, snap.At(5, 5))
	assert.Equal(t, 1, snap.RedoCount)

	rr = do(t, h, http.MethodPost, "/api/game/redo", "")
	require.Equal(t, http.StatusOK, rr.Code)
	snap = decodeBody[types.Snapshot](t, rr)
	assert.Equal(t, types.Black, snap.At(5, 5))
	assert.Equal(t, types.White, snap.CurrentPlayer)
}

func TestPointer(t *testing.T) {
	_, h := newTestServer(t, 15, 5)

	rr := do(t, h, http.MethodGet, "/api/pointer?x=100&y=100", "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody[pointerResponse](t, rr)
	assert.Equal(t, types.Cell{Row: 2, Col: 2}, got.Cell)
	assert.Equal(t, pointer.Point{X: 100, Y: 100}, got.Intersection)

	// Anywhere in the hit zone snaps to the same intersection
	rr = do(t, h, http.MethodGet, "/api/pointer?x=109&y=91", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"row":2,"col":2,"intersection":{"x":100,"y":100}}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/pointer?x=125&y=125", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Beyond the last line of a 15x15 board.
	rr = do(t, h, http.MethodGet, "/api/pointer?x=800&y=100", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/pointer?x=abc&y=1", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSGF(t *testing.T) {
	_, h := newTestServer(t, 9, 5)
	do(t, h, http.MethodPost, "/api/game/moves", `{"row": 5, "col": 5}`)
	do(t, h, http.MethodPost, "/api/game/moves", `{"row": 4, "col": 6}`)

	rr := do(t, h, http.MethodGet, "/api/game/sgf", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/x-go-sgf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".sgf")
	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, "(;GM[4]"))
	assert.Contains(t, body, "SZ[9]")
	assert.Contains(t, body, "RE[?]")
	assert.Contains(t, body, ";B[ee];W[fd])")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(engine.ErrNoMoveToRedo))
	assert.Equal(t, http.StatusBadRequest, statusFor(engine.ErrInvalidPlayer))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
