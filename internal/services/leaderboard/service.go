package leaderboard

import (
	"context"
	"log/slog"

	"github.com/tcullen/arcadehub/internal/model"
	"github.com/tcullen/arcadehub/internal/storage"
)

const (
	// DefaultLimit is used when the caller does not ask for a size
	DefaultLimit = 10

	// MaxLimit caps how many entries a single request can pull
	MaxLimit = 100
)

// Service serves the global leaderboard
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("service", "leaderboard")),
	}
}

// Top returns the highest-scoring players, ranked. A non-positive limit
// falls back to the default and oversized limits are clamped.
func (s *Service) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return s.storage.TopPlayers(ctx, limit)
}

// Interface for dependency injection
type ServiceInterface interface {
	Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

var _ ServiceInterface = (*Service)(nil)
