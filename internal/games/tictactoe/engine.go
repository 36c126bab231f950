package tictactoe

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tcullen/arcadehub/internal/dependencies/timer"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
)

// GameID is the catalog id for tic-tac-toe
const GameID = model.GameID("tic-tac-toe")

// GameName is the display name used on score records
const GameName = "Tic Tac Toe"

const aiMoveDelay = 500 * time.Millisecond

// Scoring
const (
	winPoints  = 100
	drawPoints = 50
	lossPoints = 0
)

// Mark is the content of one board cell
type Mark uint8

const (
	MarkEmpty Mark = iota
	MarkX          // the player
	MarkO          // the AI
)

func (m Mark) String() string {
	switch m {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

// State is the lifecycle phase of a session
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"  // player (X) won
	StateLost    State = "lost" // AI (O) won
	StateDraw    State = "draw"
)

// The eight winning lines of the 3x3 board
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Engine plays tic-tac-toe against a rule-based AI. The player is always X
// and moves first; the AI answers after a short thinking delay.
type Engine struct {
	mu sync.Mutex

	board  [9]Mark
	xTurn  bool
	state  State
	moves  int
	closed bool

	// gen invalidates stale timer callbacks across resets
	gen     int
	pending timer.Handle

	scheduler timer.Scheduler
	reporter  *games.Reporter
	logger    *slog.Logger
}

// Ensure Engine implements the engine interface
var _ games.Engine = (*Engine)(nil)

// New creates an engine with a fresh board, player to move
func New(scheduler timer.Scheduler, reporter *games.Reporter, logger *slog.Logger) *Engine {
	return &Engine{
		xTurn:     true,
		state:     StatePlaying,
		scheduler: scheduler,
		reporter:  reporter,
		logger:    logger.With(slog.String("game", string(GameID))),
	}
}

// GameID returns the catalog id
func (e *Engine) GameID() model.GameID {
	return GameID
}

// Apply routes a generic input
func (e *Engine) Apply(input games.Input) error {
	switch input.Action {
	case "place":
		return e.PlaceMark(input.Index)
	default:
		return games.ErrUnknownAction
	}
}

// PlaceMark places the player's X at the given cell. Placing on an occupied
// cell, out of turn, or after the game ended is a silent no-op.
func (e *Engine) PlaceMark(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index > 8 {
		return games.ErrInvalidInput
	}
	if e.closed || e.state != StatePlaying || !e.xTurn || e.board[index] != MarkEmpty {
		return nil
	}

	e.board[index] = MarkX
	e.moves++
	e.xTurn = false

	if e.finishIfTerminal() {
		return nil
	}

	gen := e.gen
	e.pending = e.scheduler.AfterFunc(aiMoveDelay, func() {
		e.aiMove(gen)
	})
	return nil
}

// aiMove plays the AI's answer. It is a no-op if the session was reset or
// finished while the move was pending.
func (e *Engine) aiMove(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || e.closed || e.state != StatePlaying || e.xTurn {
		return
	}

	index := bestMove(e.board)
	if index < 0 {
		return
	}
	e.board[index] = MarkO
	e.xTurn = true
	e.finishIfTerminal()
}

// bestMove picks the AI's cell: win if possible, block the player's win,
// then center, corners, first empty.
func bestMove(board [9]Mark) int {
	for _, side := range [2]Mark{MarkO, MarkX} {
		for _, line := range winLines {
			a, b, c := line[0], line[1], line[2]
			switch {
			case board[a] == side && board[b] == side && board[c] == MarkEmpty:
				return c
			case board[a] == side && board[c] == side && board[b] == MarkEmpty:
				return b
			case board[b] == side && board[c] == side && board[a] == MarkEmpty:
				return a
			}
		}
	}
	if board[4] == MarkEmpty {
		return 4
	}
	for _, corner := range [4]int{0, 2, 6, 8} {
		if board[corner] == MarkEmpty {
			return corner
		}
	}
	for i := range board {
		if board[i] == MarkEmpty {
			return i
		}
	}
	return -1
}

// finishIfTerminal checks for a win or draw and reports the score on the
// transition. Caller must hold the lock.
func (e *Engine) finishIfTerminal() bool {
	switch winner(e.board) {
	case MarkX:
		e.state = StateWon
		e.reporter.Report(winPoints)
	case MarkO:
		e.state = StateLost
		e.reporter.Report(lossPoints)
	default:
		if boardFull(e.board) {
			e.state = StateDraw
			e.reporter.Report(drawPoints)
		}
	}
	return e.state != StatePlaying
}

func winner(board [9]Mark) Mark {
	for _, line := range winLines {
		if board[line[0]] != MarkEmpty &&
			board[line[0]] == board[line[1]] &&
			board[line[1]] == board[line[2]] {
			return board[line[0]]
		}
	}
	return MarkEmpty
}

func boardFull(board [9]Mark) bool {
	for _, cell := range board {
		if cell == MarkEmpty {
			return false
		}
	}
	return true
}

// Snapshot is the read-only view of a session
type Snapshot struct {
	Board    [9]string `json:"board"`
	State    State     `json:"state"`
	YourTurn bool      `json:"your_turn"`
	Moves    int       `json:"moves"`
}

// Snapshot returns the current session view
func (e *Engine) Snapshot() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:    e.state,
		YourTurn: e.xTurn && e.state == StatePlaying,
		Moves:    e.moves,
	}
	for i, cell := range e.board {
		snap.Board[i] = cell.String()
	}
	return snap
}

// Reset cancels the pending AI move and starts a fresh session
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.board = [9]Mark{}
	e.xTurn = true
	e.state = StatePlaying
	e.moves = 0
	e.reporter.Rearm()
}

// Close cancels timers and disposes the engine
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.closed = true
}

// cancelPending invalidates stale callbacks and cancels the outstanding
// timer if any. Caller must hold the lock.
func (e *Engine) cancelPending() {
	e.gen++
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
}
