package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"termgomoku/engine"
	"termgomoku/pointer"
	"termgomoku/sgf"
	"termgomoku/types"
)

type newGameRequest struct {
	Size      *int `json:"size"`
	WinLength *int `json:"win_length"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type moveResponse struct {
	Outcome  types.Outcome  `json:"outcome"`
	Player   types.Player   `json:"player"`
	Snapshot types.Snapshot `json:"snapshot"`
}

// pointerResponse is the cell under the pointer and where its
// intersection lies, so a client can snap a hover marker onto it.
type pointerResponse struct {
	types.Cell
	Intersection pointer.Point `json:"intersection"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var errBadRequest = errors.New("bad request")

func (s *server) game(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.eng.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

func (s *server) newGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := decode(r, &req, true); err != nil {
		s.fail(w, err)
		return
	}
	size, winLength := s.opts.Defaults.BoardSize, s.opts.Defaults.WinLength
	if req.Size != nil {
		size = *req.Size
	}
	if req.WinLength != nil {
		winLength = *req.WinLength
	}

	s.mu.Lock()
	snap, err := s.eng.NewGame(size, winLength)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("new game", "game_id", snap.GameID, "size", size, "win_length", winLength)
	writeJSON(w, http.StatusCreated, snap)
}

func (s *server) play(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(r, &req, false); err != nil {
		s.fail(w, err)
		return
	}
	if req.Row == nil || req.Col == nil {
		s.fail(w, fmt.Errorf("%w: row and col are required", errBadRequest))
		return
	}

	s.mu.Lock()
	res, err := s.eng.PlayMove(*req.Row, *req.Col)
	snap := s.eng.Snapshot()
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moveResponse{Outcome: res.Outcome, Player: res.Player, Snapshot: snap})
}

func (s *server) undo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap, err := s.eng.Undo()
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *server) redo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap, err := s.eng.Redo()
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// pointer maps a canvas position to the cell under it. Positions between
// lines or off the board answer 204.
func (s *server) pointer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		s.fail(w, fmt.Errorf("%w: x and y must be numbers", errBadRequest))
		return
	}

	s.mu.Lock()
	size := s.eng.Snapshot().Size
	s.mu.Unlock()

	layout := s.opts.Layout
	layout.Size = size
	cell, ok := pointer.PointerToCell(x, y, layout)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, pointerResponse{
		Cell:         cell,
		Intersection: pointer.CellToPointer(cell.Row, cell.Col, layout),
	})
}

func (s *server) sgf(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.eng.Snapshot()
	moves := s.eng.Moves()
	s.mu.Unlock()

	header := sgf.NewHeader(snap.Size, snap.WinLength, time.Now())
	header.Result = sgf.Result(snap.Outcome)

	short := snap.GameID
	if len(short) > 8 {
		short = short[:8]
	}
	w.Header().Set("Content-Type", "application/x-go-sgf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="gomoku_%s.sgf"`, short))
	w.WriteHeader(http.StatusOK)
	if err := sgf.Encode(w, header, moves); err != nil {
		s.log.Error("write sgf", "error", err)
	}
}

// decode reads a JSON body into v. An empty body is accepted when
// optional is set.
func decode(r *http.Request, v interface{}, optional bool) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %s", errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, engine.ErrInvalidCoordinate),
		errors.Is(err, engine.ErrInvalidGameConfig),
		errors.Is(err, engine.ErrInvalidPlayer):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrCellOccupied),
		errors.Is(err, engine.ErrGameAlreadyOver),
		errors.Is(err, engine.ErrNoMoveToUndo),
		errors.Is(err, engine.ErrNoMoveToRedo):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
