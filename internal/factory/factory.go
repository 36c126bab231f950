package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tcullen/arcadehub/internal/dependencies/clock"
	"github.com/tcullen/arcadehub/internal/dependencies/random"
	"github.com/tcullen/arcadehub/internal/dependencies/timer"
	"github.com/tcullen/arcadehub/internal/events"
	"github.com/tcullen/arcadehub/internal/services/arcade"
	"github.com/tcullen/arcadehub/internal/services/auth"
	"github.com/tcullen/arcadehub/internal/services/catalog"
	"github.com/tcullen/arcadehub/internal/services/leaderboard"
	"github.com/tcullen/arcadehub/internal/services/progress"
	"github.com/tcullen/arcadehub/internal/services/scoring"
	"github.com/tcullen/arcadehub/internal/storage"
	"github.com/tcullen/arcadehub/internal/storage/memory"
	redisstorage "github.com/tcullen/arcadehub/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Scheduler timer.Scheduler

	// Services
	AuthService        *auth.Service
	CatalogService     *catalog.Service
	ScoringService     *scoring.Service
	LeaderboardService *leaderboard.Service
	ProgressService    *progress.Service
	SessionManager     *arcade.Manager
	EventHub           *events.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()
	scheduler := timer.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, scheduler, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	scheduler timer.Scheduler,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	// Create services
	eventHub := events.NewHub(logger)
	authService := auth.New(store, clk, authCfg)
	catalogService := catalog.New()
	scoringService := scoring.New(store, eventHub, clk, logger)
	leaderboardService := leaderboard.New(store, logger)
	progressService := progress.New(store, logger)
	sessionManager := arcade.NewManager(catalogService, scoringService, clk, rnd, scheduler, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Scheduler:          scheduler,
		AuthService:        authService,
		CatalogService:     catalogService,
		ScoringService:     scoringService,
		LeaderboardService: leaderboardService,
		ProgressService:    progressService,
		SessionManager:     sessionManager,
		EventHub:           eventHub,
	}
}
