package engine

import (
	"fmt"
	"sync"
)

// DropResult describes the outcome of a single Drop call. Applied is false
// when the drop was a no-op because the column was full or the game was
// already over.
type DropResult struct {
	Applied bool
	Coord   Coord
	Marker  Marker
	Status  Status
	Winner  Marker
	Line    WinLine
}

func (r DropResult) GameOver() bool {
	return r.Status != InProgress
}

// State is a copy of everything a renderer needs
type State struct {
	Board      Board
	Turn       Marker
	Status     Status
	Winner     Marker
	Line       WinLine
	VsComputer bool
	Moves      int
}

func (s State) GameOver() bool {
	return s.Status != InProgress
}

// Engine owns the board and turn state. All methods are safe for concurrent
// use; drops never run concurrently against the same board.
type Engine struct {
	cfg Config

	board      Board
	turn       Marker
	status     Status
	winner     Marker
	line       WinLine
	vsComputer bool
	moves      int

	mu sync.Mutex
}

func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, board: NewBoard(cfg.Columns, cfg.Rows)}
	e.reset()

	return e, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Drop places the current player's marker in the lowest empty cell of
// column. Out of range columns are an error; a full column or a finished
// game is a no-op that leaves the turn untouched.
func (e *Engine) Drop(column int) (DropResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if column < 0 || column >= e.cfg.Columns {
		return DropResult{}, fmt.Errorf("%w: column %d out of range [0, %d)", ErrInvalidArgument, column, e.cfg.Columns)
	}

	if e.status != InProgress || e.board.ColumnFull(column) {
		return DropResult{Marker: e.turn, Status: e.status, Winner: e.winner, Line: e.line.clone()}, nil
	}

	m := e.turn
	row := e.board.drop(column, m)
	e.moves++

	if line, ok := CheckWin(e.board, m, e.cfg.RunLength); ok {
		e.status = Won
		e.winner = m
		e.line = line
	} else if e.board.IsFull() {
		e.status = Draw
	}

	// The turn flips even when this drop ended the game
	e.turn = m.Opponent()

	return DropResult{
		Applied: true,
		Coord:   Coord{Column: column, Row: row},
		Marker:  m,
		Status:  e.status,
		Winner:  e.winner,
		Line:    e.line.clone(),
	}, nil
}

// CheckWin scans the current board for a run belonging to m
func (e *Engine) CheckWin(m Marker) (WinLine, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return CheckWin(e.board, m, e.cfg.RunLength)
}

func (e *Engine) IsFull() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.IsFull()
}

// Reset clears the board and hands the turn to the starting player. The
// vs-computer flag is kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()
}

func (e *Engine) reset() {
	e.board.clear()
	e.turn = e.cfg.Start
	e.status = InProgress
	e.winner = Empty
	e.line = WinLine{}
	e.moves = 0
}

func (e *Engine) SetVsComputer(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.vsComputer = on
}

func (e *Engine) VsComputer() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.vsComputer
}

func (e *Engine) Turn() Marker {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.turn
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.status
}

func (e *Engine) GameOver() bool {
	return e.Status() != InProgress
}

func (e *Engine) Winner() Marker {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.winner
}

func (e *Engine) Cell(col, row int) Marker {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.At(col, row)
}

// Snapshot returns a copy of the board
func (e *Engine) Snapshot() Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.Clone()
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return State{
		Board:      e.board.Clone(),
		Turn:       e.turn,
		Status:     e.status,
		Winner:     e.winner,
		Line:       e.line.clone(),
		VsComputer: e.vsComputer,
		Moves:      e.moves,
	}
}
