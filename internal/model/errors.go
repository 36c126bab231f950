package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Catalog errors
	ErrGameNotFound = errors.New("game not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
