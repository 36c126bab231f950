package games

import "github.com/tcullen/arcadehub/internal/model"

// Input is the generic input envelope routed from the API to an engine.
// Action selects the engine operation; Index and Text carry its argument
// (which one is meaningful depends on the action).
type Input struct {
	Action string `json:"action"`
	Index  int    `json:"index"`
	Text   string `json:"text"`
}

// Engine is a single-player game state machine bound to one play session.
//
// Engines are safe for concurrent use. Moves that are merely illegal in the
// current state (occupied cell, wrong phase, already-matched card) are silent
// no-ops; inputs that are malformed (out-of-range index, unknown action,
// unparseable text) return ErrInvalidInput or ErrUnknownAction and mutate
// nothing.
type Engine interface {
	// GameID returns the catalog id of the game this engine plays
	GameID() model.GameID

	// Apply routes a generic input to the engine
	Apply(input Input) error

	// Snapshot returns a read-only view of the current session state
	Snapshot() any

	// Reset cancels all outstanding timers and starts a fresh session
	Reset()

	// Close cancels all outstanding timers and disposes the engine
	Close()
}
