package quiz

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tcullen/arcadehub/internal/dependencies/random"
	"github.com/tcullen/arcadehub/internal/dependencies/timer"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
)

// GameID is the catalog id for the quiz
const GameID = model.GameID("quiz-game")

// GameName is the display name used on score records
const GameName = "Quiz Game"

const (
	// QuestionsPerSession is the quiz length
	QuestionsPerSession = 10

	advanceDelay = 2000 * time.Millisecond

	pointsPerCorrect = 100

	highBonusThreshold = 500
	highBonus          = 200
	midBonusThreshold  = 300
	midBonus           = 100
)

// Question is a single multiple-choice entry
type Question struct {
	Prompt  string
	Options [4]string
	Correct int
}

// The question bank. Draws never repeat within a session until the bank is
// exhausted.
var bank = [...]Question{
	{
		Prompt:  "What is the capital of France?",
		Options: [4]string{"London", "Berlin", "Paris", "Madrid"},
		Correct: 2,
	},
	{
		Prompt:  "Which planet is known as the Red Planet?",
		Options: [4]string{"Venus", "Mars", "Jupiter", "Saturn"},
		Correct: 1,
	},
	{
		Prompt:  "What is 2 + 2?",
		Options: [4]string{"3", "4", "5", "6"},
		Correct: 1,
	},
	{
		Prompt:  "Which language runs in a web browser?",
		Options: [4]string{"Java", "JavaScript", "Python", "C++"},
		Correct: 1,
	},
	{
		Prompt:  "What is the largest ocean on Earth?",
		Options: [4]string{"Atlantic", "Indian", "Arctic", "Pacific"},
		Correct: 3,
	},
	{
		Prompt:  "How many continents are there?",
		Options: [4]string{"5", "6", "7", "8"},
		Correct: 2,
	},
	{
		Prompt:  "What is the chemical symbol for gold?",
		Options: [4]string{"Go", "Gd", "Au", "Ag"},
		Correct: 2,
	},
	{
		Prompt:  "In which year did World War II end?",
		Options: [4]string{"1943", "1944", "1945", "1946"},
		Correct: 2,
	},
	{
		Prompt:  "How many moons does Mars have?",
		Options: [4]string{"0", "1", "2", "4"},
		Correct: 2,
	},
	{
		Prompt:  "Which animal is known as the King of the Jungle?",
		Options: [4]string{"Tiger", "Lion", "Elephant", "Bear"},
		Correct: 1,
	},
}

// State is the lifecycle phase of a session
type State string

const (
	StatePlaying  State = "playing"
	StateFinished State = "finished"
)

// Engine plays a ten-question quiz. Answers lock immediately; the next
// question appears after a two second reveal. Each correct answer scores
// 100, with an end bonus of 200 above 500 points or 100 above 300.
type Engine struct {
	mu sync.Mutex

	used        map[int]bool
	current     int // index into bank
	questionNum int // 0-based count of questions asked
	score       int
	correct     int
	answered    bool
	selected    int
	state       State
	closed      bool

	gen     int
	pending timer.Handle

	rnd       random.Random
	scheduler timer.Scheduler
	reporter  *games.Reporter
	logger    *slog.Logger
}

// Ensure Engine implements the engine interface
var _ games.Engine = (*Engine)(nil)

// New creates an engine with the first question dealt
func New(rnd random.Random, scheduler timer.Scheduler, reporter *games.Reporter, logger *slog.Logger) *Engine {
	e := &Engine{
		used:      make(map[int]bool),
		selected:  -1,
		state:     StatePlaying,
		rnd:       rnd,
		scheduler: scheduler,
		reporter:  reporter,
		logger:    logger.With(slog.String("game", string(GameID))),
	}
	e.mu.Lock()
	e.dealQuestion()
	e.mu.Unlock()
	return e
}

// dealQuestion draws a random unused question, recycling the bank if every
// question has been seen. Caller must hold the lock.
func (e *Engine) dealQuestion() {
	available := make([]int, 0, len(bank))
	for i := range bank {
		if !e.used[i] {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		e.used = make(map[int]bool)
		for i := range bank {
			available = append(available, i)
		}
	}
	e.current = available[e.rnd.Intn(len(available))]
	e.used[e.current] = true
	e.answered = false
	e.selected = -1
}

// GameID returns the catalog id
func (e *Engine) GameID() model.GameID {
	return GameID
}

// Apply routes a generic input
func (e *Engine) Apply(input games.Input) error {
	switch input.Action {
	case "answer":
		return e.Answer(input.Index)
	default:
		return games.ErrUnknownAction
	}
}

// Answer locks in an option for the current question. Answering twice or
// after the quiz finished is a silent no-op.
func (e *Engine) Answer(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(bank[0].Options) {
		return games.ErrInvalidInput
	}
	if e.closed || e.state != StatePlaying || e.answered {
		return nil
	}

	e.answered = true
	e.selected = index
	if index == bank[e.current].Correct {
		e.score += pointsPerCorrect
		e.correct++
	}

	gen := e.gen
	e.pending = e.scheduler.AfterFunc(advanceDelay, func() {
		e.advance(gen)
	})
	return nil
}

// advance moves to the next question, or finishes the quiz after the last
// one
func (e *Engine) advance(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || e.closed || e.state != StatePlaying {
		return
	}

	if e.questionNum < QuestionsPerSession-1 {
		e.questionNum++
		e.dealQuestion()
		return
	}

	e.state = StateFinished
	e.reporter.Report(e.score + e.bonus())
}

// bonus is the end-of-quiz score bonus. Caller must hold the lock.
func (e *Engine) bonus() int {
	switch {
	case e.score > highBonusThreshold:
		return highBonus
	case e.score > midBonusThreshold:
		return midBonus
	default:
		return 0
	}
}

// Snapshot is the read-only view of a session
type Snapshot struct {
	QuestionNumber int       `json:"question_number"` // 1-based
	TotalQuestions int       `json:"total_questions"`
	Prompt         string    `json:"prompt"`
	Options        [4]string `json:"options"`
	Score          int       `json:"score"`
	Correct        int       `json:"correct"`
	Answered       bool      `json:"answered"`
	Selected       int       `json:"selected"`
	CorrectIndex   int       `json:"correct_index"` // -1 until answered
	State          State     `json:"state"`
}

// Snapshot returns the current session view. The correct option index is
// only revealed once the question has been answered.
func (e *Engine) Snapshot() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := bank[e.current]
	snap := Snapshot{
		QuestionNumber: e.questionNum + 1,
		TotalQuestions: QuestionsPerSession,
		Prompt:         q.Prompt,
		Options:        q.Options,
		Score:          e.score,
		Correct:        e.correct,
		Answered:       e.answered,
		Selected:       e.selected,
		CorrectIndex:   -1,
		State:          e.state,
	}
	if e.answered {
		snap.CorrectIndex = q.Correct
	}
	return snap
}

// Reset cancels any pending advance and starts a fresh quiz
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.used = make(map[int]bool)
	e.questionNum = 0
	e.score = 0
	e.correct = 0
	e.state = StatePlaying
	e.dealQuestion()
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
