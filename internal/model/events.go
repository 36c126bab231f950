package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// EventTotalsChanged is broadcast whenever a score submission lands
	EventTotalsChanged EventType = "totals_changed"
)

// TotalsChangedEvent is the payload broadcast to leaderboard listeners
// after a score submission. Delta is the points awarded by the submission;
// Total is the player's running total after applying it.
type TotalsChangedEvent struct {
	PlayerID PlayerID  `json:"player_id"`
	GameID   GameID    `json:"game_id"`
	GameName string    `json:"game_name"`
	Delta    int       `json:"delta"`
	Total    int       `json:"total"`
	At       time.Time `json:"at"`
}
