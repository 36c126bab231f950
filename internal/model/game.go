package model

// GameID uniquely identifies a game in the catalog
type GameID string

// GameInfo describes a catalog entry for one of the arcade games
type GameInfo struct {
	ID          GameID
	Title       string
	Description string
	Category    string
	Difficulty  string
}
