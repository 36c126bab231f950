package model

import "time"

// ScoreRecord is a single score submission from a completed game session
type ScoreRecord struct {
	PlayerID PlayerID
	GameID   GameID
	GameName string
	Points   int
	EarnedAt time.Time
}

// LeaderboardEntry is one row of the global totals leaderboard
type LeaderboardEntry struct {
	Rank        int
	PlayerID    PlayerID
	DisplayName string
	TotalPoints int
}
