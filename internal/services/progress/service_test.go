package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/tcullen/arcadehub/internal/model"
	"github.com/tcullen/arcadehub/internal/storage/memory"
	"github.com/tcullen/arcadehub/internal/testutil"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		level  string
		nextAt int
	}{
		{0, "Bronze", 100},
		{99, "Bronze", 100},
		{100, "Silver", 500},
		{500, "Gold", 1000},
		{1000, "Platinum", 2500},
		{2500, "Diamond", 5000},
		{5000, "Master", 10000},
		{10000, "Legend", 0},
		{250000, "Legend", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.points), func(t *testing.T) {
			level, nextAt := levelFor(tt.points)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.nextAt, nextAt)
		})
	}
}

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Storage
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.service = New(s.store, testutil.NopLogger())

	err := s.store.SavePlayer(s.ctx, &model.Player{
		ID:          "player-1",
		DisplayName: "Player One",
		CreatedAt:   time.Now(),
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) record(gameID model.GameID, points int) {
	err := s.store.SaveScore(s.ctx, &model.ScoreRecord{
		PlayerID: "player-1",
		GameID:   gameID,
		GameName: string(gameID),
		Points:   points,
		EarnedAt: time.Now(),
	})
	s.Require().NoError(err)
	_, err = s.store.IncrementTotalPoints(s.ctx, "player-1", points)
	s.Require().NoError(err)
}

func (s *ServiceSuite) achievement(p *Progress, id string) Achievement {
	for _, a := range p.Achievements {
		if a.ID == id {
			return a
		}
	}
	s.FailNow("unknown achievement " + id)
	return Achievement{}
}

func (s *ServiceSuite) TestFreshPlayerStartsAtBronze() {
	progress, err := s.service.ForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	s.Equal("Bronze", progress.Level)
	s.Equal(100, progress.NextLevelAt)
	s.Equal(0, progress.GamesPlayed)
	s.Equal(0, progress.Wins)
	s.Len(progress.Achievements, 8)
	for _, a := range progress.Achievements {
		s.False(a.Earned, "achievement %s earned too early", a.ID)
	}
}

func (s *ServiceSuite) TestWinsCountScoringSessions() {
	s.record("snake-game", 80)
	s.record("snake-game", 0) // death with no food is not a win
	s.record("quiz-game", 500)

	progress, err := s.service.ForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	s.Equal(3, progress.GamesPlayed)
	s.Equal(2, progress.Wins)
	s.Equal(580, progress.TotalPoints)
	s.Equal("Gold", progress.Level)
}

func (s *ServiceSuite) TestFirstWinAchievement() {
	s.record("snake-game", 0)
	progress, err := s.service.ForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.False(s.achievement(progress, "first-win").Earned)

	s.record("snake-game", 10)
	progress, err = s.service.ForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.True(s.achievement(progress, "first-win").Earned)
}

func (s *ServiceSuite) TestPlayCountAchievements() {
	for i := 0; i < 10; i++ {
		s.record("snake-game", 10)
	}

	progress, err := s.service.ForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	s.True(s.achievement(progress, "ten-games").Earned)
	s.False(s.achievement(progress, "fifty-games").Earned)
}

func (s *ServiceSuite) TestVarietyAchievements() {
	gameIDs := []model.GameID{
		"tic-tac-toe", "memory-game", "number-guesser", "snake-game",
		"word-scramble", "reaction-time", "quiz-game", "rock-paper-scissors",
	}
	for i, id := range gameIDs {
		s.record(id, 10)
		if i == 4 {
			progress, err := s.service.ForPlayer(s.ctx, "player-1")
			s.Require().NoError(err)
			s.True(s.achievement(progress, "explorer").Earned)
			s.False(s.achievement(progress, "completionist").Earned)
		}
	}

	progress, err := s.service.ForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.True(s.achievement(progress, "completionist").Earned)
}

func (s *ServiceSuite) TestHighRollerNeedsSingleBigSession() {
	s.record("snake-game", 300)
	s.record("snake-game", 300)
	progress, err := s.service.ForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.False(s.achievement(progress, "high-roller").Earned, "600 across two sessions does not count")

	s.record("quiz-game", 500)
	progress, err = s.service.ForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.True(s.achievement(progress, "high-roller").Earned)
}

func (s *ServiceSuite) TestUnknownPlayer() {
	_, err := s.service.ForPlayer(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}