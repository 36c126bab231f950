package scoring

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tcullen/arcadehub/internal/dependencies/clock"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
	"github.com/tcullen/arcadehub/internal/storage"
)

// Publisher broadcasts totals-changed events to listening clients
type Publisher interface {
	PublishTotalsChanged(event model.TotalsChangedEvent)
}

// Service is the score pipeline: it persists score records, maintains
// running totals and publishes a totals-changed event for every submission.
// Persistence is best-effort; when storage fails, totals accumulate in an
// in-process overlay so a flaky backend never loses points for the lifetime
// of the process.
type Service struct {
	storage   storage.Storage
	publisher Publisher
	clk       clock.Clock
	logger    *slog.Logger

	mu          sync.Mutex
	localTotals map[model.PlayerID]int
}

// New creates a new scoring service
func New(storage storage.Storage, publisher Publisher, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:     storage,
		publisher:   publisher,
		clk:         clk,
		logger:      logger.With(slog.String("service", "scoring")),
		localTotals: make(map[model.PlayerID]int),
	}
}

// Submit records a finished session's score and returns the player's new
// running total. The event is published regardless of storage health.
func (s *Service) Submit(ctx context.Context, playerID model.PlayerID, gameID model.GameID, gameName string, points int) int {
	now := s.clk.Now()
	record := &model.ScoreRecord{
		PlayerID: playerID,
		GameID:   gameID,
		GameName: gameName,
		Points:   points,
		EarnedAt: now,
	}
	if err := s.storage.SaveScore(ctx, record); err != nil {
		s.logger.Warn("failed to persist score record",
			slog.String("player_id", string(playerID)),
			slog.String("game_id", string(gameID)),
			slog.Any("error", err))
	}

	total, err := s.storage.IncrementTotalPoints(ctx, playerID, points)
	if err != nil {
		s.logger.Warn("failed to increment stored total, using local overlay",
			slog.String("player_id", string(playerID)),
			slog.Any("error", err))
		s.mu.Lock()
		s.localTotals[playerID] += points
		total = s.localTotals[playerID]
		s.mu.Unlock()
	}

	s.publisher.PublishTotalsChanged(model.TotalsChangedEvent{
		PlayerID: playerID,
		GameID:   gameID,
		GameName: gameName,
		Delta:    points,
		Total:    total,
		At:       now,
	})

	s.logger.Info("score submitted",
		slog.String("player_id", string(playerID)),
		slog.String("game_id", string(gameID)),
		slog.Int("points", points),
		slog.Int("total", total))
	return total
}

// TotalPoints returns the player's running total: the stored total plus any
// points the overlay is holding for them
func (s *Service) TotalPoints(ctx context.Context, playerID model.PlayerID) (int, error) {
	stored, err := s.storage.GetTotalPoints(ctx, playerID)
	if err != nil {
		s.logger.Warn("failed to read stored total, serving local overlay",
			slog.String("player_id", string(playerID)),
			slog.Any("error", err))
		stored = 0
	}
	s.mu.Lock()
	overlay := s.localTotals[playerID]
	s.mu.Unlock()
	return stored + overlay, nil
}

// History returns the player's score records in submission order
func (s *Service) History(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreRecord, error) {
	return s.storage.GetScoresForPlayer(ctx, playerID)
}

// Interface for dependency injection
type ServiceInterface interface {
	games.ScoreSink
	TotalPoints(ctx context.Context, playerID model.PlayerID) (int, error)
	History(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreRecord, error)
}

var _ ServiceInterface = (*Service)(nil)
