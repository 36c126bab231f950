package snake

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tcullen/arcadehub/internal/dependencies/random"
	"github.com/tcullen/arcadehub/internal/dependencies/timer"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
)

// GameID is the catalog id for snake
const GameID = model.GameID("snake-game")

// GameName is the display name used on score records
const GameName = "Snake Game"

const (
	// GridSize is the side length of the square playfield
	GridSize = 20

	basePeriod = 150 * time.Millisecond
	minPeriod  = 100 * time.Millisecond
	periodStep = 2 * time.Millisecond

	// foodPlacementAttempts caps rejection sampling on a crowded board
	foodPlacementAttempts = 100

	foodPointsBase   = 10
	foodPointsSpread = 11 // 10 + Intn(11) -> [10, 20]

	finalScoreMultiplier = 2
)

// Direction of snake movement
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

var dirDeltas = [4]Cell{
	DirUp:    {X: 0, Y: -1},
	DirDown:  {X: 0, Y: 1},
	DirLeft:  {X: -1, Y: 0},
	DirRight: {X: 1, Y: 0},
}

// ParseDirection converts the wire form of a direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "right"
	}
}

// vertical reports whether the direction moves along the Y axis
func (d Direction) vertical() bool {
	return d == DirUp || d == DirDown
}

// Cell is a playfield coordinate
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// State is the lifecycle phase of a session
type State string

const (
	StatePlaying State = "playing"
	StateOver    State = "over"
)

// Engine plays snake on a 20x20 grid, driven by a self-rescheduling tick.
// Eating food grows the snake, scores a random 10-20 points, and speeds the
// tick up by 2ms down to a 100ms floor. Hitting a wall or the body ends the
// session and submits double the accumulated score.
type Engine struct {
	mu sync.Mutex

	snake  []Cell // head first
	dir    Direction
	food   Cell
	score  int
	period time.Duration
	paused bool
	state  State
	closed bool

	gen     int
	pending timer.Handle

	rnd       random.Random
	scheduler timer.Scheduler
	reporter  *games.Reporter
	logger    *slog.Logger
}

// Ensure Engine implements the engine interface
var _ games.Engine = (*Engine)(nil)

// New creates an engine with a random start position and direction and
// schedules the first tick
func New(rnd random.Random, scheduler timer.Scheduler, reporter *games.Reporter, logger *slog.Logger) *Engine {
	e := &Engine{
		rnd:       rnd,
		scheduler: scheduler,
		reporter:  reporter,
		logger:    logger.With(slog.String("game", string(GameID))),
	}
	e.mu.Lock()
	e.start()
	e.mu.Unlock()
	return e
}

// start initializes a fresh run. Caller must hold the lock.
func (e *Engine) start() {
	// Spawn away from the walls so the first ticks can't be instant death
	head := Cell{
		X: e.rnd.Intn(GridSize-4) + 2,
		Y: e.rnd.Intn(GridSize-4) + 2,
	}
	e.snake = []Cell{head}
	e.dir = Direction(e.rnd.Intn(4))
	e.score = 0
	e.period = basePeriod
	e.paused = false
	e.state = StatePlaying
	e.food = e.placeFood()
	e.scheduleTick()
}

// placeFood rejection-samples a free cell, giving up after a bounded number
// of attempts on a crowded board. Caller must hold the lock.
func (e *Engine) placeFood() Cell {
	for i := 0; i < foodPlacementAttempts; i++ {
		cell := Cell{X: e.rnd.Intn(GridSize), Y: e.rnd.Intn(GridSize)}
		if !e.occupied(cell) {
			return cell
		}
	}
	return Cell{X: e.rnd.Intn(GridSize), Y: e.rnd.Intn(GridSize)}
}

func (e *Engine) occupied(cell Cell) bool {
	for _, seg := range e.snake {
		if seg == cell {
			return true
		}
	}
	return false
}

// scheduleTick arms the next movement tick. Caller must hold the lock.
func (e *Engine) scheduleTick() {
	gen := e.gen
	e.pending = e.scheduler.AfterFunc(e.period, func() {
		e.tick(gen)
	})
}

// tick advances the snake one cell and re-arms itself while the session is
// live. A paused session keeps ticking but skips movement.
func (e *Engine) tick(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || e.closed || e.state != StatePlaying {
		return
	}
	if !e.paused {
		e.step()
	}
	if e.state == StatePlaying {
		e.scheduleTick()
	}
}

// step moves the head one cell, handling walls, self-collision, and food.
// Caller must hold the lock.
func (e *Engine) step() {
	delta := dirDeltas[e.dir]
	head := Cell{X: e.snake[0].X + delta.X, Y: e.snake[0].Y + delta.Y}

	if head.X < 0 || head.X >= GridSize || head.Y < 0 || head.Y >= GridSize || e.occupied(head) {
		e.state = StateOver
		e.reporter.Report(e.score * finalScoreMultiplier)
		return
	}

	e.snake = append([]Cell{head}, e.snake...)

	if head == e.food {
		e.score += foodPointsBase + e.rnd.Intn(foodPointsSpread)
		if e.period-periodStep >= minPeriod {
			e.period -= periodStep
		} else {
			e.period = minPeriod
		}
		e.food = e.placeFood()
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}
}

// GameID returns the catalog id
func (e *Engine) GameID() model.GameID {
	return GameID
}

// Apply routes a generic input
func (e *Engine) Apply(input games.Input) error {
	switch input.Action {
	case "direction":
		dir, ok := ParseDirection(input.Text)
		if !ok {
			return games.ErrInvalidInput
		}
		return e.SetDirection(dir)
	case "pause":
		return e.TogglePause()
	default:
		return games.ErrUnknownAction
	}
}

// SetDirection turns the snake. Turning onto the current movement axis
// (reversal or same direction) is a silent no-op.
func (e *Engine) SetDirection(dir Direction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state != StatePlaying {
		return nil
	}
	if dir.vertical() == e.dir.vertical() {
		return nil
	}
	e.dir = dir
	return nil
}

// TogglePause flips the pause flag; the tick keeps running but movement is
// suspended while paused
func (e *Engine) TogglePause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state != StatePlaying {
		return nil
	}
	e.paused = !e.paused
	return nil
}

// Snapshot is the read-only view of a session
type Snapshot struct {
	Snake    []Cell `json:"snake"`
	Food     Cell   `json:"food"`
	Score    int    `json:"score"`
	Length   int    `json:"length"`
	PeriodMs int    `json:"period_ms"`
	Paused   bool   `json:"paused"`
	State    State  `json:"state"`
}

// Snapshot returns the current session view
func (e *Engine) Snapshot() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	snake := make([]Cell, len(e.snake))
	copy(snake, e.snake)
	return Snapshot{
		Snake:    snake,
		Food:     e.food,
		Score:    e.score,
		Length:   len(e.snake),
		PeriodMs: int(e.period / time.Millisecond),
		Paused:   e.paused,
		State:    e.state,
	}
}

// Reset cancels the pending tick and starts a fresh run
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.reporter.Rearm()
	e.start()
}

// Close cancels timers and disposes the engine
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.closed = true
}

func (e *Engine) cancelPending() {
	e.gen++
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
}
