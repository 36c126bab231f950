package reaction

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
	clk       *mocks.MockClock
	scheduler *mocks.MockScheduler
	rnd       *mocks.MockRandom
	sink      *recordingSink
	engine    *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.clk = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.scheduler = mocks.NewMockScheduler()
	s.rnd = mocks.NewMockRandom()
	s.sink = &recordingSink{}
	reporter := games.NewReporter(s.sink, "player-1", GameID, GameName)
	s.engine = New(s.clk, s.rnd, s.scheduler, reporter, testutil.NopLogger())
}

func (s *EngineSuite) snapshot() Snapshot {
	return s.engine.Snapshot().(Snapshot)
}

// playRound runs one full round with the given reaction latency
func (s *EngineSuite) playRound(latency time.Duration) {
	s.Require().NoError(s.engine.StartRound())
	s.scheduler.FireNext() // show the stimulus
	s.clk.Advance(latency)
	s.Require().NoError(s.engine.Click())
}

func (s *EngineSuite) TestStartArmsStimulusWithScriptedDelay() {
	s.rnd.QueueIntn(1000) // wait = 3000ms

	s.Require().NoError(s.engine.StartRound())

	s.Equal(StateWaiting, s.snapshot().State)
	tasks := s.scheduler.Tasks()
	s.Require().Len(tasks, 1)
	s.Equal(3*time.Second, tasks[0].Delay)
}

func (s *EngineSuite) TestLatencyIsMeasuredFromStimulus() {
	s.playRound(234 * time.Millisecond)

	snap := s.snapshot()
	s.Equal(StateIdle, snap.State)
	s.Equal([]int{234}, snap.Latencies)
	s.Equal(1, snap.Round)
}

func (s *EngineSuite) TestFalseStartCancelsWithoutConsumingRound() {
	s.Require().NoError(s.engine.StartRound())
	s.Require().Equal(StateWaiting, s.snapshot().State)

	s.Require().NoError(s.engine.Click()) // too early

	snap := s.snapshot()
	s.Equal(StateIdle, snap.State)
	s.Equal(0, snap.Round)
	s.Equal(1, snap.FalseStarts)
	s.Equal(0, s.scheduler.PendingCount(), "armed stimulus cancelled")
}

func (s *EngineSuite) TestStaleStimulusAfterFalseStartIsNoOp() {
	s.Require().NoError(s.engine.StartRound())
	tasks := s.scheduler.Tasks()
	s.Require().Len(tasks, 1)

	s.Require().NoError(s.engine.Click())
	tasks[0].ForceFire()

	s.Equal(StateIdle, s.snapshot().State, "cancelled stimulus must not show")
}

func (s *EngineSuite) TestClickWhileIdleIsSilentNoOp() {
	s.Require().NoError(s.engine.Click())
	s.Equal(StateIdle, s.snapshot().State)
	s.Equal(0, s.snapshot().FalseStarts)
}

func (s *EngineSuite) TestFiveRoundsFinishAndScore() {
	// Latencies 200, 250, 300, 150, 100 -> avg 200 -> (500-200)*2 = 600
	for _, latency := range []time.Duration{200, 250, 300, 150, 100} {
		s.playRound(latency * time.Millisecond)
	}

	snap := s.snapshot()
	s.Equal(StateDone, snap.State)
	s.Equal(MaxRounds, snap.Round)
	s.Equal([]int{600}, s.sink.points)
}

func (s *EngineSuite) TestSlowReactionsFloorAtZero() {
	for i := 0; i < MaxRounds; i++ {
		s.playRound(900 * time.Millisecond)
	}

	s.Equal([]int{0}, s.sink.points)
}

func (s *EngineSuite) TestStartAfterDoneIsSilentNoOp() {
	for i := 0; i < MaxRounds; i++ {
		s.playRound(200 * time.Millisecond)
	}
	s.Require().Equal(StateDone, s.snapshot().State)

	s.Require().NoError(s.engine.StartRound())
	s.Equal(StateDone, s.snapshot().State)
	s.Len(s.sink.points, 1)
}

func (s *EngineSuite) TestResetClearsMeasurements() {
	s.playRound(200 * time.Millisecond)
	s.Require().NoError(s.engine.StartRound())

	s.engine.Reset()

	snap := s.snapshot()
	s.Equal(StateIdle, snap.State)
	s.Equal(0, snap.Round)
	s.Equal(0, snap.FalseStarts)
	s.Equal(0, s.scheduler.PendingCount())
}

func (s *EngineSuite) TestResetRearmsScoring() {
	for i := 0; i < MaxRounds; i++ {
		s.playRound(200 * time.Millisecond)
	}
	s.Require().Len(s.sink.points, 1)

	s.engine.Reset()
	for i := 0; i < MaxRounds; i++ {
		s.playRound(100 * time.Millisecond)
	}

	s.Equal([]int{600, 800}, s.sink.points)
}

func (s *EngineSuite) TestApplyRoutesActions() {
	s.Require().NoError(s.engine.Apply(games.Input{Action: "start"}))
	s.Equal(StateWaiting, s.snapshot().State)
	s.ErrorIs(s.engine.Apply(games.Input{Action: "guess"}), games.ErrUnknownAction)
}
