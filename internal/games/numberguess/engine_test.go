package numberguess

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
	rnd    *mocks.MockRandom
	sink   *recordingSink
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.rnd = mocks.NewMockRandom()
	s.rnd.QueueIntn(41) // target = 42
	s.sink = &recordingSink{}
	reporter := games.NewReporter(s.sink, "player-1", GameID, GameName)
	s.engine = New(s.rnd, reporter, testutil.NopLogger())
}

func (s *EngineSuite) snapshot() Snapshot {
	return s.engine.Snapshot().(Snapshot)
}

func (s *EngineSuite) TestHintsSteerTowardTarget() {
	s.Require().NoError(s.engine.Guess("10"))
	s.Equal(HintTooLow, s.snapshot().Hint)

	s.Require().NoError(s.engine.Guess("90"))
	s.Equal(HintTooHigh, s.snapshot().Hint)

	s.Equal(2, s.snapshot().Attempts)
}

func (s *EngineSuite) TestCorrectGuessWinsAndScores() {
	s.Require().NoError(s.engine.Guess("50"))
	s.Require().NoError(s.engine.Guess("42"))

	snap := s.snapshot()
	s.Equal(StateWon, snap.State)
	s.Equal(2, snap.Attempts)
	s.Equal(42, snap.Target)

	// 300 + (7-2)*50 = 550
	s.Equal([]int{550}, s.sink.points)
}

func (s *EngineSuite) TestFirstGuessWinMaxScore() {
	s.Require().NoError(s.engine.Guess("42"))
	s.Equal([]int{600}, s.sink.points)
}

func (s *EngineSuite) TestInvalidInputConsumesNoAttempt() {
	s.ErrorIs(s.engine.Guess("abc"), games.ErrInvalidInput)
	s.ErrorIs(s.engine.Guess(""), games.ErrInvalidInput)
	s.ErrorIs(s.engine.Guess("0"), games.ErrInvalidInput)
	s.ErrorIs(s.engine.Guess("101"), games.ErrInvalidInput)

	s.Equal(0, s.snapshot().Attempts)
}

func (s *EngineSuite) TestWhitespaceIsTolerated() {
	s.Require().NoError(s.engine.Guess("  42 "))
	s.Equal(StateWon, s.snapshot().State)
}

func (s *EngineSuite) TestExhaustingAttemptsLosesWithoutSubmitting() {
	for _, guess := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		s.Require().NoError(s.engine.Guess(guess))
	}

	snap := s.snapshot()
	s.Equal(StateLost, snap.State)
	s.Equal(MaxAttempts, snap.Attempts)
	s.Equal(42, snap.Target, "loss reveals the target")
	s.Empty(s.sink.points, "losses submit nothing")
}

func (s *EngineSuite) TestGuessAfterTerminalIsSilentNoOp() {
	s.Require().NoError(s.engine.Guess("42"))

	s.Require().NoError(s.engine.Guess("10"))
	s.Equal(1, s.snapshot().Attempts)
	s.Len(s.sink.points, 1)
}

func (s *EngineSuite) TestTargetHiddenWhilePlaying() {
	s.Require().NoError(s.engine.Guess("10"))
	s.Equal(0, s.snapshot().Target)
}

func (s *EngineSuite) TestResetRollsFreshTarget() {
	s.Require().NoError(s.engine.Guess("42"))
	s.Require().Len(s.sink.points, 1)

	s.rnd.QueueIntn(9) // next target = 10
	s.engine.Reset()

	snap := s.snapshot()
	s.Equal(StatePlaying, snap.State)
	s.Equal(0, snap.Attempts)

	s.Require().NoError(s.engine.Guess("10"))
	s.Equal(StateWon, s.snapshot().State)
	s.Len(s.sink.points, 2)
}

func (s *EngineSuite) TestApplyRoutesGuess() {
	s.Require().NoError(s.engine.Apply(games.Input{Action: "guess", Text: "42"}))
	s.Equal(StateWon, s.snapshot().State)

	s.ErrorIs(s.engine.Apply(games.Input{Action: "place"}), games.ErrUnknownAction)
}
