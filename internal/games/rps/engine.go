package rps

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tcullen/arcadehub/internal/dependencies/random"
	"github.com/tcullen/arcadehub/internal/dependencies/timer"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
)

// GameID is the catalog id for rock paper scissors
const GameID = model.GameID("rock-paper-scissors")

// GameName is the display name used on score records
const GameName = "Rock Paper Scissors"

const (
	// MaxRounds is the match length
	MaxRounds = 5

	thinkBaseMs   = 300
	thinkSpreadMs = 500 // AI "thinks" for 300-799 ms

	finishDelay = 2000 * time.Millisecond

	pointsPerWin = 50
)

// Choice is one of the three throws
type Choice string

const (
	ChoiceRock     Choice = "rock"
	ChoicePaper    Choice = "paper"
	ChoiceScissors Choice = "scissors"
)

var choices = [...]Choice{ChoiceRock, ChoicePaper, ChoiceScissors}

// counterOf maps a throw to the throw that beats it
var counterOf = map[Choice]Choice{
	ChoiceRock:     ChoicePaper,
	ChoicePaper:    ChoiceScissors,
	ChoiceScissors: ChoiceRock,
}

// ParseChoice normalises player input to a throw
func ParseChoice(text string) (Choice, bool) {
	switch Choice(strings.ToLower(strings.TrimSpace(text))) {
	case ChoiceRock:
		return ChoiceRock, true
	case ChoicePaper:
		return ChoicePaper, true
	case ChoiceScissors:
		return ChoiceScissors, true
	default:
		return "", false
	}
}

// RoundResult is the outcome of a resolved round
type RoundResult string

const (
	ResultWin  RoundResult = "win"
	ResultLose RoundResult = "lose"
	ResultDraw RoundResult = "draw"
)

// State is the lifecycle phase of a match
type State string

const (
	StateChoosing State = "choosing" // waiting for the player's throw
	StateThinking State = "thinking" // AI delay armed
	StateRevealed State = "revealed" // round resolved, both throws visible
	StateFinished State = "finished"
)

// Strategy labels shown to the player. Purely cosmetic; the actual pick
// mixes all of them every round.
var strategyLabels = [...]string{"random", "counter", "mirror", "weighted"}

// Engine plays a best-of-five rock paper scissors match against an AI
// opponent. The AI mixes four pick strategies per round: pure random,
// countering the player's previous throw, mirroring the current throw, and
// a fixed weighting. Each won round is worth 50 points.
type Engine struct {
	mu sync.Mutex

	state            State
	round            int // completed rounds
	wins             int
	losses           int
	draws            int
	playerChoice     Choice
	aiChoice         Choice
	lastResult       RoundResult
	lastPlayerChoice Choice
	strategy         string
	closed           bool

	gen     int
	pending timer.Handle

	rnd       random.Random
	scheduler timer.Scheduler
	reporter  *games.Reporter
	logger    *slog.Logger
}

// Ensure Engine implements the engine interface
var _ games.Engine = (*Engine)(nil)

// New creates an engine waiting on the first throw
func New(rnd random.Random, scheduler timer.Scheduler, reporter *games.Reporter, logger *slog.Logger) *Engine {
	return &Engine{
		state:     StateChoosing,
		strategy:  strategyLabels[rnd.Intn(len(strategyLabels))],
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
	case "choose":
		return e.Choose(input.Text)
	case "next_round":
		return e.NextRound()
	default:
		return games.ErrUnknownAction
	}
}

// Choose locks in the player's throw and arms the AI thinking delay.
// Throwing outside the choosing phase is a silent no-op.
func (e *Engine) Choose(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	choice, ok := ParseChoice(text)
	if !ok {
		return games.ErrInvalidInput
	}
	if e.closed || e.state != StateChoosing {
		return nil
	}

	e.playerChoice = choice
	e.state = StateThinking
	delay := time.Duration(thinkBaseMs+e.rnd.Intn(thinkSpreadMs)) * time.Millisecond
	gen := e.gen
	e.pending = e.scheduler.AfterFunc(delay, func() {
		e.reveal(gen)
	})
	return nil
}

// reveal picks the AI throw and resolves the round
func (e *Engine) reveal(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || e.closed || e.state != StateThinking {
		return
	}

	// Cosmetic label refresh every other round
	if e.round > 0 && e.round%2 == 0 {
		e.strategy = strategyLabels[e.rnd.Intn(len(strategyLabels))]
	}

	e.aiChoice = e.pickAIChoice(e.playerChoice)
	switch {
	case e.aiChoice == e.playerChoice:
		e.draws++
		e.lastResult = ResultDraw
	case counterOf[e.aiChoice] == e.playerChoice:
		e.wins++
		e.lastResult = ResultWin
	default:
		e.losses++
		e.lastResult = ResultLose
	}

	e.round++
	e.lastPlayerChoice = e.playerChoice
	e.state = StateRevealed
	e.pending = nil

	if e.round >= MaxRounds {
		finishGen := e.gen
		e.pending = e.scheduler.AfterFunc(finishDelay, func() {
			e.finish(finishGen)
		})
	}
}

// pickAIChoice mixes the four strategies on a single roll. A counter pick
// needs a previous player throw; on the first round that band falls through
// to the mirror strategy. Caller must hold the lock.
func (e *Engine) pickAIChoice(player Choice) Choice {
	r := e.rnd.Float64()
	switch {
	case r < 0.4:
		return e.randomChoice()
	case r < 0.7 && e.lastPlayerChoice != "":
		return counterOf[e.lastPlayerChoice]
	case r < 0.85:
		if e.rnd.Float64() > 0.5 {
			return player
		}
		return e.randomChoice()
	default:
		w := e.rnd.Float64()
		switch {
		case w < 0.35:
			return ChoiceRock
		case w < 0.70:
			return ChoicePaper
		default:
			return ChoiceScissors
		}
	}
}

func (e *Engine) randomChoice() Choice {
	return choices[e.rnd.Intn(len(choices))]
}

// finish ends the match and submits the score
func (e *Engine) finish(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || e.closed || e.state != StateRevealed {
		return
	}
	e.state = StateFinished
	e.pending = nil
	e.reporter.Report(e.wins * pointsPerWin)
}

// NextRound clears the reveal and opens the next round for a throw. Only
// valid between resolved rounds.
func (e *Engine) NextRound() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state != StateRevealed || e.round >= MaxRounds {
		return nil
	}
	e.playerChoice = ""
	e.aiChoice = ""
	e.lastResult = ""
	e.state = StateChoosing
	return nil
}

// Snapshot is the read-only view of a match
type Snapshot struct {
	State        State       `json:"state"`
	Round        int         `json:"round"` // completed rounds
	MaxRounds    int         `json:"max_rounds"`
	Wins         int         `json:"wins"`
	Losses       int         `json:"losses"`
	Draws        int         `json:"draws"`
	PlayerChoice Choice      `json:"player_choice,omitempty"`
	AIChoice     Choice      `json:"ai_choice,omitempty"`
	LastResult   RoundResult `json:"last_result,omitempty"`
	Strategy     string      `json:"strategy"`
}

// Snapshot returns the current match view. The AI throw is only visible
// once the round has resolved.
func (e *Engine) Snapshot() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:      e.state,
		Round:      e.round,
		MaxRounds:  MaxRounds,
		Wins:       e.wins,
		Losses:     e.losses,
		Draws:      e.draws,
		LastResult: e.lastResult,
		Strategy:   e.strategy,
	}
	if e.state == StateRevealed || e.state == StateFinished {
		snap.PlayerChoice = e.playerChoice
		snap.AIChoice = e.aiChoice
	}
	return snap
}

// Reset cancels any pending resolution and starts a fresh match
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.round = 0
	e.wins = 0
	e.losses = 0
	e.draws = 0
	e.playerChoice = ""
	e.aiChoice = ""
	e.lastResult = ""
	e.lastPlayerChoice = ""
	e.state = StateChoosing
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
