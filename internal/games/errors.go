package games

import "errors"

// Errors shared by all game engines
var (
	// ErrInvalidInput indicates a malformed input that was not consumed
	// (out-of-range index, unparseable text). Illegal-but-well-formed moves
	// are silent no-ops instead.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownAction indicates an action string the engine does not handle
	ErrUnknownAction = errors.New("unknown input action")
)
