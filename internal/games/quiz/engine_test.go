package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tcullen/arcadehub/internal/dependencies/mocks"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
	"github.com/tcullen/arcadehub/internal/testutil"
)

type recordingSink struct {
	points []int
}

func (s *recordingSink) Submit(ctx context.Context, playerID model.PlayerID, gameID model.GameID, gameName string, points int) int {
	s.points = append(s.points, points)
	return points
}

type EngineSuite struct {
	suite.Suite
	scheduler *mocks.MockScheduler
	rnd       *mocks.MockRandom
	sink      *recordingSink
	engine    *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.scheduler = mocks.NewMockScheduler()
	// With no queued draws the mock picks index 0, so questions arrive in
	// bank order
	s.rnd = mocks.NewMockRandom()
	s.sink = &recordingSink{}
	reporter := games.NewReporter(s.sink, "player-1", GameID, GameName)
	s.engine = New(s.rnd, s.scheduler, reporter, testutil.NopLogger())
}

func (s *EngineSuite) snapshot() Snapshot {
	return s.engine.Snapshot().(Snapshot)
}

// answerAndAdvance locks in an option and fires the reveal timer
func (s *EngineSuite) answerAndAdvance(index int) {
	s.Require().NoError(s.engine.Answer(index))
	s.scheduler.FireNext()
}

func (s *EngineSuite) TestFirstQuestionDealt() {
	snap := s.snapshot()
	s.Equal(1, snap.QuestionNumber)
	s.Equal(QuestionsPerSession, snap.TotalQuestions)
	s.Equal("What is the capital of France?", snap.Prompt)
	s.False(snap.Answered)
	s.Equal(-1, snap.CorrectIndex, "answer hidden until locked in")
}

func (s *EngineSuite) TestCorrectAnswerScoresAndReveals() {
	s.Require().NoError(s.engine.Answer(2)) // Paris

	snap := s.snapshot()
	s.Equal(100, snap.Score)
	s.Equal(1, snap.Correct)
	s.True(snap.Answered)
	s.Equal(2, snap.Selected)
	s.Equal(2, snap.CorrectIndex)
	s.Equal(1, snap.QuestionNumber, "advance waits for the reveal timer")
}

func (s *EngineSuite) TestWrongAnswerLocksWithoutScoring() {
	s.Require().NoError(s.engine.Answer(0)) // London

	snap := s.snapshot()
	s.Equal(0, snap.Score)
	s.Equal(0, snap.Correct)
	s.Equal(0, snap.Selected)
	s.Equal(2, snap.CorrectIndex, "reveal shows the right option")
}

func (s *EngineSuite) TestAnswerIsLockedUntilAdvance() {
	s.Require().NoError(s.engine.Answer(0))
	s.Require().NoError(s.engine.Answer(2)) // ignored

	snap := s.snapshot()
	s.Equal(0, snap.Score)
	s.Equal(0, snap.Selected)
}

func (s *EngineSuite) TestRevealTimerDealsNextQuestion() {
	s.answerAndAdvance(2)

	snap := s.snapshot()
	s.Equal(2, snap.QuestionNumber)
	s.Equal("Which planet is known as the Red Planet?", snap.Prompt)
	s.False(snap.Answered)
}

func (s *EngineSuite) TestOutOfRangeAnswerRejected() {
	s.ErrorIs(s.engine.Answer(4), games.ErrInvalidInput)
	s.ErrorIs(s.engine.Answer(-1), games.ErrInvalidInput)
}

func (s *EngineSuite) TestQuestionsNeverRepeatWithinSession() {
	seen := map[string]bool{s.snapshot().Prompt: true}
	for i := 0; i < QuestionsPerSession-1; i++ {
		s.answerAndAdvance(0)
		prompt := s.snapshot().Prompt
		s.False(seen[prompt], "question repeated: %s", prompt)
		seen[prompt] = true
	}
	s.Len(seen, QuestionsPerSession)
}

func (s *EngineSuite) TestPerfectRunEarnsHighBonus() {
	for _, correct := range []int{2, 1, 1, 1, 3, 2, 2, 2, 2, 1} {
		s.answerAndAdvance(correct)
	}

	snap := s.snapshot()
	s.Equal(StateFinished, snap.State)
	s.Equal(1000, snap.Score)
	s.Equal([]int{1200}, s.sink.points, "1000 plus the 200 bonus")
}

func (s *EngineSuite) TestMidScoreEarnsSmallBonus() {
	// Four correct answers, six deliberate misses -> 400 points
	answers := []int{2, 1, 1, 1, 0, 0, 0, 0, 0, 0}
	for _, a := range answers {
		s.answerAndAdvance(a)
	}

	s.Equal([]int{500}, s.sink.points, "400 plus the 100 bonus")
}

func (s *EngineSuite) TestLowScoreEarnsNoBonus() {
	// No question keys its answer on option 0, so this misses everything
	for i := 0; i < QuestionsPerSession; i++ {
		s.answerAndAdvance(0)
	}

	s.Equal([]int{0}, s.sink.points)
}

func (s *EngineSuite) TestAnswerAfterFinishIsSilentNoOp() {
	for i := 0; i < QuestionsPerSession; i++ {
		s.answerAndAdvance(0)
	}
	s.Require().Equal(StateFinished, s.snapshot().State)

	s.Require().NoError(s.engine.Answer(2))
	s.Len(s.sink.points, 1)
}

func (s *EngineSuite) TestStaleAdvanceAfterResetIsNoOp() {
	s.Require().NoError(s.engine.Answer(2))
	tasks := s.scheduler.Tasks()
	s.Require().Len(tasks, 1)

	s.engine.Reset()
	tasks[0].ForceFire()

	snap := s.snapshot()
	s.Equal(1, snap.QuestionNumber)
	s.False(snap.Answered)
}

func (s *EngineSuite) TestResetRearmsScoring() {
	for i := 0; i < QuestionsPerSession; i++ {
		s.answerAndAdvance(0)
	}
	s.Require().Len(s.sink.points, 1)

	s.engine.Reset()
	for _, correct := range []int{2, 1, 1, 1, 3, 2, 2, 2, 2, 1} {
		s.answerAndAdvance(correct)
	}

	s.Len(s.sink.points, 2)
	s.Equal(1200, s.sink.points[1])
}

func (s *EngineSuite) TestApplyRoutesActions() {
	s.Require().NoError(s.engine.Apply(games.Input{Action: "answer", Index: 2}))
	s.Equal(100, s.snapshot().Score)
	s.ErrorIs(s.engine.Apply(games.Input{Action: "guess"}), games.ErrUnknownAction)
}