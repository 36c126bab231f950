package games

import (
	"context"
	"sync"

	"github.com/tcullen/arcadehub/internal/model"
)

// ScoreSink receives score submissions from game engines. It never fails
// from the engine's point of view; persistence problems are the sink's to
// absorb. It returns the player's new running total.
type ScoreSink interface {
	Submit(ctx context.Context, playerID model.PlayerID, gameID model.GameID, gameName string, points int) int
}

// Reporter guards score submission for a single play session: the first
// Report wins and every later call is a no-op, including calls from stale
// timer callbacks racing a reset. An empty player id disables scoring
// entirely, which is how anonymous sessions play unscored.
type Reporter struct {
	mu       sync.Mutex
	sink     ScoreSink
	playerID model.PlayerID
	gameID   model.GameID
	gameName string

	submitted bool
}

// NewReporter creates a Reporter for one session of the given game
func NewReporter(sink ScoreSink, playerID model.PlayerID, gameID model.GameID, gameName string) *Reporter {
	return &Reporter{
		sink:     sink,
		playerID: playerID,
		gameID:   gameID,
		gameName: gameName,
	}
}

// Report submits the session's final score. Only the first call per session
// has any effect.
func (r *Reporter) Report(points int) {
	r.mu.Lock()
	if r.submitted {
		r.mu.Unlock()
		return
	}
	r.submitted = true
	r.mu.Unlock()

	if r.playerID == "" || r.sink == nil {
		return
	}
	r.sink.Submit(context.Background(), r.playerID, r.gameID, r.gameName, points)
}

// Submitted reports whether this session has already submitted a score
func (r *Reporter) Submitted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submitted
}

// Rearm re-enables submission for the next session after an engine reset
func (r *Reporter) Rearm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted = false
}
