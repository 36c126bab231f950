package memorymatch

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tcullen/arcadehub/internal/dependencies/random"
	"github.com/tcullen/arcadehub/internal/dependencies/timer"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
)

// GameID is the catalog id for memory match
const GameID = model.GameID("memory-game")

// GameName is the display name used on score records
const GameName = "Memory Game"

const (
	pairCount     = 8
	cardCount     = pairCount * 2
	flipBackDelay = 1000 * time.Millisecond

	baseScore    = 500
	moveBonusCap = 100
	movePenalty  = 5
)

// The eight card symbols; each appears twice on the board
var symbols = [pairCount]string{"🎮", "🎯", "🎲", "🎨", "🎪", "🎭", "🎬", "🎤"}

// State is the lifecycle phase of a session
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
)

// Engine plays memory match: find all eight symbol pairs in as few flips
// as possible. A mismatched pair stays face-up for one second, then flips
// back; further flips are ignored while the pair is showing.
type Engine struct {
	mu sync.Mutex

	cards        [cardCount]string
	flipped      []int // 0..2 currently face-up, unmatched cards
	matched      [cardCount]bool
	matchedPairs int
	moves        int
	state        State
	closed       bool

	gen     int
	pending timer.Handle

	rnd       random.Random
	scheduler timer.Scheduler
	reporter  *games.Reporter
	logger    *slog.Logger
}

// Ensure Engine implements the engine interface
var _ games.Engine = (*Engine)(nil)

// New creates an engine with a freshly shuffled board
func New(rnd random.Random, scheduler timer.Scheduler, reporter *games.Reporter, logger *slog.Logger) *Engine {
	e := &Engine{
		state:     StatePlaying,
		rnd:       rnd,
		scheduler: scheduler,
		reporter:  reporter,
		logger:    logger.With(slog.String("game", string(GameID))),
	}
	e.deal()
	return e
}

// deal lays out both copies of every symbol and shuffles them.
// Caller must hold the lock (or be the constructor).
func (e *Engine) deal() {
	for i := 0; i < pairCount; i++ {
		e.cards[2*i] = symbols[i]
		e.cards[2*i+1] = symbols[i]
	}
	// Fisher-Yates
	for i := cardCount - 1; i > 0; i-- {
		j := e.rnd.Intn(i + 1)
		e.cards[i], e.cards[j] = e.cards[j], e.cards[i]
	}
}

// GameID returns the catalog id
func (e *Engine) GameID() model.GameID {
	return GameID
}

// Apply routes a generic input
func (e *Engine) Apply(input games.Input) error {
	switch input.Action {
	case "flip":
		return e.Flip(input.Index)
	default:
		return games.ErrUnknownAction
	}
}

// Flip turns the card at index face-up. Flipping a matched card, an
// already face-up card, or any card while a mismatched pair is showing is
// a silent no-op. Every counted flip increments the move counter.
func (e *Engine) Flip(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= cardCount {
		return games.ErrInvalidInput
	}
	if e.closed || e.state != StatePlaying || len(e.flipped) == 2 || e.matched[index] {
		return nil
	}
	for _, f := range e.flipped {
		if f == index {
			return nil
		}
	}

	e.flipped = append(e.flipped, index)
	e.moves++

	if len(e.flipped) < 2 {
		return nil
	}

	first, second := e.flipped[0], e.flipped[1]
	if e.cards[first] == e.cards[second] {
		e.matched[first] = true
		e.matched[second] = true
		e.matchedPairs++
		e.flipped = nil
		if e.matchedPairs == pairCount {
			e.state = StateWon
			e.reporter.Report(e.score())
		}
		return nil
	}

	// Mismatch: leave both showing, flip back after the delay
	gen := e.gen
	e.pending = e.scheduler.AfterFunc(flipBackDelay, func() {
		e.flipBack(gen)
	})
	return nil
}

// flipBack hides a mismatched pair. No-op if the session was reset while
// the flip-back was pending.
func (e *Engine) flipBack(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen {
		return
	}
	e.flipped = nil
}

// score is 500 plus a bonus that shrinks with every flip. Caller must hold
// the lock.
func (e *Engine) score() int {
	bonus := moveBonusCap - e.moves*movePenalty
	if bonus < 0 {
		bonus = 0
	}
	return baseScore + bonus
}

// Card is the view of a single board position
type Card struct {
	Symbol  string `json:"symbol,omitempty"` // only revealed while face-up or matched
	FaceUp  bool   `json:"face_up"`
	Matched bool   `json:"matched"`
}

// Snapshot is the read-only view of a session
type Snapshot struct {
	Cards        []Card `json:"cards"`
	Moves        int    `json:"moves"`
	MatchedPairs int    `json:"matched_pairs"`
	State        State  `json:"state"`
}

// Snapshot returns the current session view. Face-down card symbols are
// not included.
func (e *Engine) Snapshot() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Cards:        make([]Card, cardCount),
		Moves:        e.moves,
		MatchedPairs: e.matchedPairs,
		State:        e.state,
	}
	for i := range e.cards {
		card := Card{Matched: e.matched[i]}
		if e.matched[i] {
			card.FaceUp = true
			card.Symbol = e.cards[i]
		}
		snap.Cards[i] = card
	}
	for _, f := range e.flipped {
		snap.Cards[f].FaceUp = true
		snap.Cards[f].Symbol = e.cards[f]
	}
	return snap
}

// Reset cancels any pending flip-back and deals a fresh board
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.flipped = nil
	e.matched = [cardCount]bool{}
	e.matchedPairs = 0
	e.moves = 0
	e.state = StatePlaying
	e.deal()
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
