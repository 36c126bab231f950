package rps

import (
	"context"
	"testing"
	"time"

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
	// With no queued rolls the mock's Float64 returns 0, landing every pick
	// in the pure random band, and Intn returns 0, making that pick rock
	s.rnd = mocks.NewMockRandom()
	s.sink = &recordingSink{}
	reporter := games.NewReporter(s.sink, "player-1", GameID, GameName)
	s.engine = New(s.rnd, s.scheduler, reporter, testutil.NopLogger())
}

func (s *EngineSuite) snapshot() Snapshot {
	return s.engine.Snapshot().(Snapshot)
}

// playRound throws for the player, resolves the AI pick and, if rounds
// remain, opens the next round
func (s *EngineSuite) playRound(choice string) {
	s.Require().NoError(s.engine.Choose(choice))
	s.scheduler.FireNext()
	s.Require().NoError(s.engine.NextRound())
}

func (s *EngineSuite) TestInvalidThrowRejected() {
	s.ErrorIs(s.engine.Choose("lizard"), games.ErrInvalidInput)
}

func (s *EngineSuite) TestThinkingDelayIsScripted() {
	s.rnd.QueueIntn(150) // 300 + 150 ms

	s.Require().NoError(s.engine.Choose("rock"))

	s.Equal(StateThinking, s.snapshot().State)
	tasks := s.scheduler.Tasks()
	s.Require().Len(tasks, 1)
	s.Equal(450*time.Millisecond, tasks[0].Delay)
}

func (s *EngineSuite) TestPaperBeatsDefaultRockPick() {
	s.Require().NoError(s.engine.Choose("paper"))
	s.scheduler.FireNext()

	snap := s.snapshot()
	s.Equal(StateRevealed, snap.State)
	s.Equal(ChoicePaper, snap.PlayerChoice)
	s.Equal(ChoiceRock, snap.AIChoice)
	s.Equal(ResultWin, snap.LastResult)
	s.Equal(1, snap.Wins)
	s.Equal(1, snap.Round)
}

func (s *EngineSuite) TestDrawAndLossTallies() {
	s.playRound("rock")     // rock vs rock
	s.playRound("scissors") // scissors vs rock

	snap := s.snapshot()
	s.Equal(1, snap.Draws)
	s.Equal(1, snap.Losses)
	s.Equal(0, snap.Wins)
}

func (s *EngineSuite) TestAIThrowHiddenWhileThinking() {
	s.Require().NoError(s.engine.Choose("rock"))
	snap := s.snapshot()
	s.Empty(snap.PlayerChoice)
	s.Empty(snap.AIChoice)
}

func (s *EngineSuite) TestCounterBandBeatsPreviousThrow() {
	s.playRound("rock")

	s.rnd.QueueFloat64(0.5) // counter band, previous throw was rock
	s.Require().NoError(s.engine.Choose("scissors"))
	s.scheduler.FireNext()

	snap := s.snapshot()
	s.Equal(ChoicePaper, snap.AIChoice, "counters the previous rock")
	s.Equal(ResultWin, snap.LastResult, "scissors cut the countering paper")
}

func (s *EngineSuite) TestCounterBandFallsToMirrorOnFirstRound() {
	// No previous throw, so 0.5 slides into the mirror band; the 0.6 coin
	// copies the player's current throw
	s.rnd.QueueFloat64(0.5, 0.6)

	s.Require().NoError(s.engine.Choose("scissors"))
	s.scheduler.FireNext()

	snap := s.snapshot()
	s.Equal(ChoiceScissors, snap.AIChoice)
	s.Equal(ResultDraw, snap.LastResult)
}

func (s *EngineSuite) TestMirrorBandCoinFlipFallsBackToRandom() {
	s.rnd.QueueFloat64(0.75, 0.3) // mirror band, coin under 0.5

	s.Require().NoError(s.engine.Choose("paper"))
	s.scheduler.FireNext()

	s.Equal(ChoiceRock, s.snapshot().AIChoice)
}

func (s *EngineSuite) TestWeightedBandPicksByFixedWeights() {
	s.rnd.QueueFloat64(0.9, 0.5) // weighted band, 0.5 lands on paper

	s.Require().NoError(s.engine.Choose("rock"))
	s.scheduler.FireNext()

	snap := s.snapshot()
	s.Equal(ChoicePaper, snap.AIChoice)
	s.Equal(ResultLose, snap.LastResult)
}

func (s *EngineSuite) TestChooseWhileThinkingIsSilentNoOp() {
	s.Require().NoError(s.engine.Choose("rock"))
	s.Require().NoError(s.engine.Choose("paper")) // ignored
	s.Equal(1, s.scheduler.PendingCount())

	s.scheduler.FireNext()
	s.Equal(ChoiceRock, s.snapshot().PlayerChoice)
}

func (s *EngineSuite) TestStrategyLabelRefreshesEveryOtherRound() {
	s.playRound("rock")
	s.playRound("rock")
	s.Require().Equal("random", s.snapshot().Strategy)

	// Third round: first queued value feeds the thinking delay, second the
	// label refresh
	s.rnd.QueueIntn(0, 2)
	s.Require().NoError(s.engine.Choose("rock"))
	s.scheduler.FireNext()

	s.Equal("mirror", s.snapshot().Strategy)
}

func (s *EngineSuite) TestMatchFinishesAfterFiveRoundsAndSubmits() {
	for i := 0; i < MaxRounds; i++ {
		s.playRound("paper") // beats the default rock pick every time
	}

	snap := s.snapshot()
	s.Require().Equal(StateRevealed, snap.State)
	s.Equal(MaxRounds, snap.Round)
	s.Equal(MaxRounds, snap.Wins)

	tasks := s.scheduler.Tasks()
	s.Require().NotEmpty(tasks)
	s.Equal(2*time.Second, tasks[len(tasks)-1].Delay)

	s.scheduler.FireNext()
	s.Equal(StateFinished, s.snapshot().State)
	s.Equal([]int{250}, s.sink.points)
}

func (s *EngineSuite) TestNextRoundBlockedDuringFinishDelay() {
	for i := 0; i < MaxRounds; i++ {
		s.playRound("paper")
	}

	s.Require().NoError(s.engine.NextRound())
	s.Equal(StateRevealed, s.snapshot().State)
	s.Equal(1, s.scheduler.PendingCount())
}

func (s *EngineSuite) TestChooseAfterFinishIsSilentNoOp() {
	for i := 0; i < MaxRounds; i++ {
		s.playRound("paper")
	}
	s.scheduler.FireNext()
	s.Require().Equal(StateFinished, s.snapshot().State)

	s.Require().NoError(s.engine.Choose("rock"))
	s.Equal(0, s.scheduler.PendingCount())
	s.Len(s.sink.points, 1)
}

func (s *EngineSuite) TestStaleRevealAfterResetIsNoOp() {
	s.Require().NoError(s.engine.Choose("rock"))
	tasks := s.scheduler.Tasks()
	s.Require().Len(tasks, 1)

	s.engine.Reset()
	tasks[0].ForceFire()

	snap := s.snapshot()
	s.Equal(StateChoosing, snap.State)
	s.Equal(0, snap.Round)
}

func (s *EngineSuite) TestResetRearmsScoring() {
	for i := 0; i < MaxRounds; i++ {
		s.playRound("paper")
	}
	s.scheduler.FireNext()
	s.Require().Len(s.sink.points, 1)

	s.engine.Reset()
	for i := 0; i < MaxRounds; i++ {
		s.playRound("rock") // all draws
	}
	s.scheduler.FireNext()

	s.Equal([]int{250, 0}, s.sink.points)
}

func (s *EngineSuite) TestApplyRoutesActions() {
	s.Require().NoError(s.engine.Apply(games.Input{Action: "choose", Text: "rock"}))
	s.Equal(StateThinking, s.snapshot().State)
	s.ErrorIs(s.engine.Apply(games.Input{Action: "flip"}), games.ErrUnknownAction)
}