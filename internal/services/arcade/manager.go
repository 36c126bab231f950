package arcade

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tcullen/arcadehub/internal/dependencies/clock"
	"github.com/tcullen/arcadehub/internal/dependencies/random"
	"github.com/tcullen/arcadehub/internal/dependencies/timer"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/games/memorymatch"
	"github.com/tcullen/arcadehub/internal/games/numberguess"
	"github.com/tcullen/arcadehub/internal/games/quiz"
	"github.com/tcullen/arcadehub/internal/games/reaction"
	"github.com/tcullen/arcadehub/internal/games/rps"
	"github.com/tcullen/arcadehub/internal/games/snake"
	"github.com/tcullen/arcadehub/internal/games/tictactoe"
	"github.com/tcullen/arcadehub/internal/games/wordscramble"
	"github.com/tcullen/arcadehub/internal/model"
	"github.com/tcullen/arcadehub/internal/services/catalog"
)

const sessionIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

const sessionIDLength = 20

// Session is one live play of a game, owned by the player who created it.
// An empty owner means an anonymous session that never scores.
type Session struct {
	ID        model.SessionID
	PlayerID  model.PlayerID
	GameID    model.GameID
	Engine    games.Engine
	CreatedAt time.Time
}

// Manager creates and tracks play sessions. Sessions are private: every
// lookup is scoped to the owning player, and a wrong owner is
// indistinguishable from a missing session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*Session

	catalog   catalog.ServiceInterface
	sink      games.ScoreSink
	clk       clock.Clock
	rnd       random.Random
	scheduler timer.Scheduler
	logger    *slog.Logger
}

// NewManager creates a session manager
func NewManager(
	catalogService catalog.ServiceInterface,
	sink games.ScoreSink,
	clk clock.Clock,
	rnd random.Random,
	scheduler timer.Scheduler,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		sessions:  make(map[model.SessionID]*Session),
		catalog:   catalogService,
		sink:      sink,
		clk:       clk,
		rnd:       rnd,
		scheduler: scheduler,
		logger:    logger.With(slog.String("service", "arcade")),
	}
}

// CreateSession starts a new play of the given game for the given player
func (m *Manager) CreateSession(playerID model.PlayerID, gameID model.GameID) (*Session, error) {
	if _, err := m.catalog.Get(gameID); err != nil {
		return nil, err
	}

	engine, err := m.buildEngine(playerID, gameID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        model.SessionID(m.rnd.String(sessionIDLength, sessionIDAlphabet)),
		PlayerID:  playerID,
		GameID:    gameID,
		Engine:    engine,
		CreatedAt: m.clk.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("game_id", string(gameID)))
	return session, nil
}

func (m *Manager) buildEngine(playerID model.PlayerID, gameID model.GameID) (games.Engine, error) {
	switch gameID {
	case tictactoe.GameID:
		reporter := games.NewReporter(m.sink, playerID, tictactoe.GameID, tictactoe.GameName)
		return tictactoe.New(m.scheduler, reporter, m.logger), nil
	case memorymatch.GameID:
		reporter := games.NewReporter(m.sink, playerID, memorymatch.GameID, memorymatch.GameName)
		return memorymatch.New(m.rnd, m.scheduler, reporter, m.logger), nil
	case numberguess.GameID:
		reporter := games.NewReporter(m.sink, playerID, numberguess.GameID, numberguess.GameName)
		return numberguess.New(m.rnd, reporter, m.logger), nil
	case snake.GameID:
		reporter := games.NewReporter(m.sink, playerID, snake.GameID, snake.GameName)
		return snake.New(m.rnd, m.scheduler, reporter, m.logger), nil
	case wordscramble.GameID:
		reporter := games.NewReporter(m.sink, playerID, wordscramble.GameID, wordscramble.GameName)
		return wordscramble.New(m.rnd, m.scheduler, reporter, m.logger), nil
	case reaction.GameID:
		reporter := games.NewReporter(m.sink, playerID, reaction.GameID, reaction.GameName)
		return reaction.New(m.clk, m.rnd, m.scheduler, reporter, m.logger), nil
	case quiz.GameID:
		reporter := games.NewReporter(m.sink, playerID, quiz.GameID, quiz.GameName)
		return quiz.New(m.rnd, m.scheduler, reporter, m.logger), nil
	case rps.GameID:
		reporter := games.NewReporter(m.sink, playerID, rps.GameID, rps.GameName)
		return rps.New(m.rnd, m.scheduler, reporter, m.logger), nil
	default:
		return nil, model.ErrGameNotFound
	}
}

// Get returns the session if it exists and the player owns it
func (m *Manager) Get(sessionID model.SessionID, playerID model.PlayerID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok || session.PlayerID != playerID {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

// Apply routes an input to the session's engine
func (m *Manager) Apply(sessionID model.SessionID, playerID model.PlayerID, input games.Input) error {
	session, err := m.Get(sessionID, playerID)
	if err != nil {
		return err
	}
	return session.Engine.Apply(input)
}

// Snapshot returns the session's current game view
func (m *Manager) Snapshot(sessionID model.SessionID, playerID model.PlayerID) (any, error) {
	session, err := m.Get(sessionID, playerID)
	if err != nil {
		return nil, err
	}
	return session.Engine.Snapshot(), nil
}

// Reset restarts the session's game in place
func (m *Manager) Reset(sessionID model.SessionID, playerID model.PlayerID) error {
	session, err := m.Get(sessionID, playerID)
	if err != nil {
		return err
	}
	session.Engine.Reset()
	return nil
}

// Dispose closes the session's engine and forgets the session
func (m *Manager) Dispose(sessionID model.SessionID, playerID model.PlayerID) error {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if !ok || session.PlayerID != playerID {
		m.mu.Unlock()
		return model.ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	session.Engine.Close()
	m.logger.Info("session disposed",
		slog.String("session_id", string(sessionID)),
		slog.String("player_id", string(playerID)))
	return nil
}

// SessionCount returns the number of live sessions
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll disposes every live session, for shutdown
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.sessions = make(map[model.SessionID]*Session)
	m.mu.Unlock()

	for _, session := range sessions {
		session.Engine.Close()
	}
}

// Interface for dependency injection
type ManagerInterface interface {
	CreateSession(playerID model.PlayerID, gameID model.GameID) (*Session, error)
	Get(sessionID model.SessionID, playerID model.PlayerID) (*Session, error)
	Apply(sessionID model.SessionID, playerID model.PlayerID, input games.Input) error
	Snapshot(sessionID model.SessionID, playerID model.PlayerID) (any, error)
	Reset(sessionID model.SessionID, playerID model.PlayerID) error
	Dispose(sessionID model.SessionID, playerID model.PlayerID) error
}

var _ ManagerInterface = (*Manager)(nil)
