package progress

import (
	"context"
	"log/slog"

	"github.com/tcullen/arcadehub/internal/model"
	"github.com/tcullen/arcadehub/internal/storage"
)

// TotalGames is the catalog size, used by the completionist achievement
const TotalGames = 8

// Level thresholds, lowest first
var levels = []struct {
	Name string
	Min  int
}{
	{"Bronze", 0},
	{"Silver", 100},
	{"Gold", 500},
	{"Platinum", 1000},
	{"Diamond", 2500},
	{"Master", 5000},
	{"Legend", 10000},
}

// Achievement is a single earnable badge
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// Progress is a player's derived standing: level, play stats and badges
type Progress struct {
	TotalPoints  int           `json:"total_points"`
	Level        string        `json:"level"`
	NextLevelAt  int           `json:"next_level_at"` // 0 once at the top level
	GamesPlayed  int           `json:"games_played"`
	Wins         int           `json:"wins"`
	Achievements []Achievement `json:"achievements"`
}

// Service derives player progress from score history and totals
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new progress service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("service", "progress")),
	}
}

// ForPlayer computes the player's progress from their stored history
func (s *Service) ForPlayer(ctx context.Context, playerID model.PlayerID) (*Progress, error) {
	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	total, err := s.storage.GetTotalPoints(ctx, playerID)
	if err != nil {
		return nil, err
	}
	records, err := s.storage.GetScoresForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	wins := 0
	bestSession := 0
	distinct := make(map[model.GameID]bool)
	for _, r := range records {
		if r.Points > 0 {
			wins++
		}
		if r.Points > bestSession {
			bestSession = r.Points
		}
		distinct[r.GameID] = true
	}

	level, nextAt := levelFor(total)
	return &Progress{
		TotalPoints:  total,
		Level:        level,
		NextLevelAt:  nextAt,
		GamesPlayed:  len(records),
		Wins:         wins,
		Achievements: achievements(len(records), wins, bestSession, len(distinct)),
	}, nil
}

// levelFor returns the level name for a point total and the threshold of
// the next level
func levelFor(points int) (string, int) {
	current := levels[0]
	for _, l := range levels {
		if points >= l.Min {
			current = l
		} else {
			return current.Name, l.Min
		}
	}
	return current.Name, 0
}

func achievements(played, wins, bestSession, distinctGames int) []Achievement {
	// Per-round stats are not recorded, so the speed and perfection badges
	// stay locked
	return []Achievement{
		{
			ID:          "first-win",
			Title:       "On the Board",
			Description: "Score points in any game",
			Earned:      wins >= 1,
		},
		{
			ID:          "ten-games",
			Title:       "Regular",
			Description: "Play 10 games",
			Earned:      played >= 10,
		},
		{
			ID:          "fifty-games",
			Title:       "Arcade Rat",
			Description: "Play 50 games",
			Earned:      played >= 50,
		},
		{
			ID:          "explorer",
			Title:       "Explorer",
			Description: "Play 5 different games",
			Earned:      distinctGames >= 5,
		},
		{
			ID:          "completionist",
			Title:       "Completionist",
			Description: "Play every game in the arcade",
			Earned:      distinctGames >= TotalGames,
		},
		{
			ID:          "high-roller",
			Title:       "High Roller",
			Description: "Score 500 or more in a single session",
			Earned:      bestSession >= 500,
		},
		{
			ID:          "speed-demon",
			Title:       "Speed Demon",
			Description: "Average under 150ms in the reaction test",
			Earned:      false,
		},
		{
			ID:          "perfectionist",
			Title:       "Perfectionist",
			Description: "Answer every quiz question correctly",
			Earned:      false,
		},
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	ForPlayer(ctx context.Context, playerID model.PlayerID) (*Progress, error)
}

var _ ServiceInterface = (*Service)(nil)
