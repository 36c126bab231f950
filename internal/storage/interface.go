package storage

import (
	"context"

	"github.com/tcullen/arcadehub/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Score operations
	SaveScore(ctx context.Context, record *model.ScoreRecord) error
	GetScoresForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreRecord, error)

	// Totals / leaderboard operations
	IncrementTotalPoints(ctx context.Context, playerID model.PlayerID, delta int) (int, error)
	GetTotalPoints(ctx context.Context, playerID model.PlayerID) (int, error)
	TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}
