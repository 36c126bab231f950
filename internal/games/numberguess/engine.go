package numberguess

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/tcullen/arcadehub/internal/dependencies/random"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
)

// GameID is the catalog id for the number guesser
const GameID = model.GameID("number-guesser")

// GameName is the display name used on score records
const GameName = "Number Guesser"

const (
	// MaxAttempts is the guess budget per session
	MaxAttempts = 7

	minTarget = 1
	maxTarget = 100

	baseScore       = 300
	perAttemptBonus = 50
)

// Hints returned after a wrong guess
const (
	HintTooLow  = "Too low! Try higher."
	HintTooHigh = "Too high! Try lower."
)

// State is the lifecycle phase of a session
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Engine plays higher/lower against a hidden target in [1, 100] with seven
// attempts. Wins score 300 plus 50 per unused attempt; losses reveal the
// target and submit nothing.
type Engine struct {
	mu sync.Mutex

	target   int
	attempts int
	hint     string
	state    State
	closed   bool

	rnd      random.Random
	reporter *games.Reporter
	logger   *slog.Logger
}

// Ensure Engine implements the engine interface
var _ games.Engine = (*Engine)(nil)

// New creates an engine with a fresh random target
func New(rnd random.Random, reporter *games.Reporter, logger *slog.Logger) *Engine {
	e := &Engine{
		state:    StatePlaying,
		rnd:      rnd,
		reporter: reporter,
		logger:   logger.With(slog.String("game", string(GameID))),
	}
	e.target = e.rollTarget()
	return e
}

func (e *Engine) rollTarget() int {
	return minTarget + e.rnd.Intn(maxTarget-minTarget+1)
}

// GameID returns the catalog id
func (e *Engine) GameID() model.GameID {
	return GameID
}

// Apply routes a generic input
func (e *Engine) Apply(input games.Input) error {
	switch input.Action {
	case "guess":
		return e.Guess(input.Text)
	default:
		return games.ErrUnknownAction
	}
}

// Guess consumes one attempt with the given number. Unparseable or
// out-of-range text is rejected without consuming an attempt; guesses after
// the game ended are silent no-ops.
func (e *Engine) Guess(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state != StatePlaying {
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < minTarget || n > maxTarget {
		return games.ErrInvalidInput
	}

	e.attempts++

	switch {
	case n == e.target:
		e.state = StateWon
		e.hint = ""
		e.reporter.Report(baseScore + (MaxAttempts-e.attempts)*perAttemptBonus)
	case e.attempts >= MaxAttempts:
		// Loss reveals the target via the snapshot; nothing is submitted
		e.state = StateLost
		e.hint = ""
	case n < e.target:
		e.hint = HintTooLow
	default:
		e.hint = HintTooHigh
	}
	return nil
}

// Snapshot is the read-only view of a session
type Snapshot struct {
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"max_attempts"`
	Hint        string `json:"hint,omitempty"`
	State       State  `json:"state"`
	Target      int    `json:"target,omitempty"` // revealed only once the game is over
}

// Snapshot returns the current session view. The target stays hidden until
// the session reaches a terminal state.
func (e *Engine) Snapshot() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Attempts:    e.attempts,
		MaxAttempts: MaxAttempts,
		Hint:        e.hint,
		State:       e.state,
	}
	if e.state != StatePlaying {
		snap.Target = e.target
	}
	return snap
}

// Reset rolls a fresh target and clears the attempt counter
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.target = e.rollTarget()
	e.attempts = 0
	e.hint = ""
	e.state = StatePlaying
	e.reporter.Rearm()
}

// Close disposes the engine
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}
