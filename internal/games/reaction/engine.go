package reaction

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/tcullen/arcadehub/internal/dependencies/clock"
	"github.com/tcullen/arcadehub/internal/dependencies/random"
	"github.com/tcullen/arcadehub/internal/dependencies/timer"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
)

// GameID is the catalog id for the reaction time test
const GameID = model.GameID("reaction-time")

// GameName is the display name used on score records
const GameName = "Reaction Time Test"

const (
	// MaxRounds is the number of measured reactions per session
	MaxRounds = 5

	minWaitMs    = 2000
	waitSpreadMs = 3001 // wait in [2000, 5000] ms

	scoreBaseline   = 500
	scoreMultiplier = 2
)

// State is the lifecycle phase of a round
type State string

const (
	StateIdle    State = "idle"    // between rounds, waiting for the player to start
	StateWaiting State = "waiting" // stimulus armed but not shown
	StateReady   State = "ready"   // stimulus shown, clock running
	StateDone    State = "done"    // all rounds measured
)

// Engine measures reaction time over five rounds. Each round arms a random
// 2-5 second delay before the stimulus; clicking early is a false start
// that cancels the round without consuming it. The final score is
// max(0, round(500 - average latency) * 2).
type Engine struct {
	mu sync.Mutex

	state       State
	latencies   []int // milliseconds, one per completed round
	stimulusAt  time.Time
	falseStarts int
	closed      bool

	gen     int
	pending timer.Handle

	clk       clock.Clock
	rnd       random.Random
	scheduler timer.Scheduler
	reporter  *games.Reporter
	logger    *slog.Logger
}

// Ensure Engine implements the engine interface
var _ games.Engine = (*Engine)(nil)

// New creates an idle engine
func New(clk clock.Clock, rnd random.Random, scheduler timer.Scheduler, reporter *games.Reporter, logger *slog.Logger) *Engine {
	return &Engine{
		state:     StateIdle,
		clk:       clk,
		rnd:       rnd,
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
	case "start":
		return e.StartRound()
	case "click":
		return e.Click()
	default:
		return games.ErrUnknownAction
	}
}

// StartRound arms the next stimulus. Starting is a silent no-op unless the
// engine is idle with rounds remaining.
func (e *Engine) StartRound() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state != StateIdle {
		return nil
	}

	e.state = StateWaiting
	delay := time.Duration(minWaitMs+e.rnd.Intn(waitSpreadMs)) * time.Millisecond
	gen := e.gen
	e.pending = e.scheduler.AfterFunc(delay, func() {
		e.showStimulus(gen)
	})
	return nil
}

// showStimulus reveals the stimulus and starts the latency clock
func (e *Engine) showStimulus(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || e.closed || e.state != StateWaiting {
		return
	}
	e.state = StateReady
	e.stimulusAt = e.clk.Now()
}

// Click reacts to the stimulus. Clicking during the wait is a false start:
// the armed stimulus is cancelled and the round returns to idle without
// being consumed. Clicking while idle or done is a silent no-op.
func (e *Engine) Click() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}

	switch e.state {
	case StateWaiting:
		e.cancelPending()
		e.falseStarts++
		e.state = StateIdle
	case StateReady:
		latency := int(e.clk.Now().Sub(e.stimulusAt).Milliseconds())
		e.latencies = append(e.latencies, latency)
		e.pending = nil
		if len(e.latencies) >= MaxRounds {
			e.state = StateDone
			e.reporter.Report(e.score())
		} else {
			e.state = StateIdle
		}
	}
	return nil
}

// score derives points from the average latency. Caller must hold the lock.
func (e *Engine) score() int {
	sum := 0
	for _, l := range e.latencies {
		sum += l
	}
	avg := float64(sum) / float64(len(e.latencies))
	points := int(math.Round(scoreBaseline-avg)) * scoreMultiplier
	if points < 0 {
		return 0
	}
	return points
}

// Snapshot is the read-only view of a session
type Snapshot struct {
	State       State `json:"state"`
	Round       int   `json:"round"` // completed rounds
	MaxRounds   int   `json:"max_rounds"`
	Latencies   []int `json:"latencies_ms"`
	FalseStarts int   `json:"false_starts"`
}

// Snapshot returns the current session view
func (e *Engine) Snapshot() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	latencies := make([]int, len(e.latencies))
	copy(latencies, e.latencies)
	return Snapshot{
		State:       e.state,
		Round:       len(e.latencies),
		MaxRounds:   MaxRounds,
		Latencies:   latencies,
		FalseStarts: e.falseStarts,
	}
}

// Reset cancels any armed stimulus and clears all measurements
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.latencies = nil
	e.falseStarts = 0
	e.state = StateIdle
	e.reporter.Rearm()
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
