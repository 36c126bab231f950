package wordscramble

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

// GameID is the catalog id for word scramble
const GameID = model.GameID("word-scramble")

// GameName is the display name used on score records
const GameName = "Word Scramble"

const (
	// RoundSeconds is the session countdown
	RoundSeconds = 60

	tickInterval = time.Second

	letterPoints    = 10
	perWordEndBonus = 50
)

// Entry pairs a word with its hint
type Entry struct {
	Word string
	Hint string
}

// The word corpus. Scrambles are uniform permutations, so a scramble can
// coincide with the original word; that is accepted rather than re-rolled.
var words = [...]Entry{
	{Word: "JAVASCRIPT", Hint: "A popular programming language"},
	{Word: "REACT", Hint: "A JavaScript library for building UIs"},
	{Word: "GAMING", Hint: "Playing video games"},
	{Word: "PUZZLE", Hint: "A game that tests ingenuity"},
	{Word: "CHALLENGE", Hint: "A call to take part in a contest"},
	{Word: "VICTORY", Hint: "Success in a struggle"},
	{Word: "STRATEGY", Hint: "A plan of action"},
	{Word: "ADVENTURE", Hint: "An exciting experience"},
	{Word: "CHAMPION", Hint: "A person who wins first place"},
	{Word: "LEADERBOARD", Hint: "A board showing rankings"},
}

// State is the lifecycle phase of a session
type State string

const (
	StatePlaying  State = "playing"
	StateFinished State = "finished"
)

// GuessResult is the outcome of the last guess, surfaced on the snapshot
type GuessResult string

const (
	GuessNone      GuessResult = ""
	GuessCorrect   GuessResult = "correct"
	GuessIncorrect GuessResult = "incorrect"
)

// Engine plays word scramble: unscramble as many words as possible inside a
// 60 second countdown. Correct guesses score 10 points per letter; the end
// of the round adds 50 per solved word.
type Engine struct {
	mu sync.Mutex

	word       string
	scrambled  string
	hint       string
	score      int
	correct    int
	timeLeft   int
	lastResult GuessResult
	state      State
	closed     bool

	gen     int
	pending timer.Handle

	rnd       random.Random
	scheduler timer.Scheduler
	reporter  *games.Reporter
	logger    *slog.Logger
}

// Ensure Engine implements the engine interface
var _ games.Engine = (*Engine)(nil)

// New creates an engine with the countdown running and a first word dealt
func New(rnd random.Random, scheduler timer.Scheduler, reporter *games.Reporter, logger *slog.Logger) *Engine {
	e := &Engine{
		timeLeft:  RoundSeconds,
		state:     StatePlaying,
		rnd:       rnd,
		scheduler: scheduler,
		reporter:  reporter,
		logger:    logger.With(slog.String("game", string(GameID))),
	}
	e.mu.Lock()
	e.nextWord()
	e.scheduleTick()
	e.mu.Unlock()
	return e
}

// nextWord deals a random corpus entry and scrambles it. Caller must hold
// the lock.
func (e *Engine) nextWord() {
	entry := words[e.rnd.Intn(len(words))]
	e.word = entry.Word
	e.hint = entry.Hint
	e.scrambled = e.scramble(entry.Word)
}

// scramble is a Fisher-Yates permutation of the word's letters
func (e *Engine) scramble(word string) string {
	letters := []rune(word)
	for i := len(letters) - 1; i > 0; i-- {
		j := e.rnd.Intn(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// scheduleTick arms the next countdown second. Caller must hold the lock.
func (e *Engine) scheduleTick() {
	gen := e.gen
	e.pending = e.scheduler.AfterFunc(tickInterval, func() {
		e.tick(gen)
	})
}

// tick burns one countdown second and finishes the session at zero
func (e *Engine) tick(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || e.closed || e.state != StatePlaying {
		return
	}
	e.timeLeft--
	if e.timeLeft <= 0 {
		e.timeLeft = 0
		e.state = StateFinished
		e.reporter.Report(e.score + e.correct*perWordEndBonus)
		return
	}
	e.scheduleTick()
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
	case "skip":
		return e.Skip()
	default:
		return games.ErrUnknownAction
	}
}

// Guess checks text against the current word, case-insensitively. A correct
// guess scores and deals the next word; a wrong guess just surfaces the
// incorrect result. Empty guesses are rejected.
func (e *Engine) Guess(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state != StatePlaying {
		return nil
	}

	guess := strings.TrimSpace(text)
	if guess == "" {
		return games.ErrInvalidInput
	}

	if strings.EqualFold(guess, e.word) {
		e.score += len(e.word) * letterPoints
		e.correct++
		e.lastResult = GuessCorrect
		e.nextWord()
	} else {
		e.lastResult = GuessIncorrect
	}
	return nil
}

// Skip deals a new word without penalty
func (e *Engine) Skip() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state != StatePlaying {
		return nil
	}
	e.lastResult = GuessNone
	e.nextWord()
	return nil
}

// Snapshot is the read-only view of a session
type Snapshot struct {
	Scrambled  string      `json:"scrambled"`
	Hint       string      `json:"hint"`
	Score      int         `json:"score"`
	Correct    int         `json:"correct"`
	TimeLeft   int         `json:"time_left"`
	LastResult GuessResult `json:"last_result,omitempty"`
	State      State       `json:"state"`
}

// Snapshot returns the current session view. The unscrambled word is never
// exposed while the session is live.
func (e *Engine) Snapshot() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Scrambled:  e.scrambled,
		Hint:       e.hint,
		Score:      e.score,
		Correct:    e.correct,
		TimeLeft:   e.timeLeft,
		LastResult: e.lastResult,
		State:      e.state,
	}
}

// Reset cancels the countdown and starts a fresh round
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.score = 0
	e.correct = 0
	e.timeLeft = RoundSeconds
	e.lastResult = GuessNone
	e.state = StatePlaying
	e.nextWord()
	e.scheduleTick()
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
