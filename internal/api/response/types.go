package response

import (
	"time"

	"github.com/tcullen/arcadehub/internal/model"
	"github.com/tcullen/arcadehub/internal/services/arcade"
	"github.com/tcullen/arcadehub/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Avatar:      p.Avatar,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// GameInfo represents a catalog entry
type GameInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
}

// GameInfoFromModel converts model.GameInfo
func GameInfoFromModel(g model.GameInfo) GameInfo {
	return GameInfo{
		ID:          string(g.ID),
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		Difficulty:  g.Difficulty,
	}
}

// GameList is the catalog listing response
type GameList struct {
	Games []GameInfo `json:"games"`
}

// GameListFromModel converts a catalog listing
func GameListFromModel(games []model.GameInfo) GameList {
	out := make([]GameInfo, len(games))
	for i, g := range games {
		out[i] = GameInfoFromModel(g)
	}
	return GameList{Games: out}
}

// PlaySession represents a live play session. State carries the game's own
// snapshot shape, which differs per game.
type PlaySession struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
	State     any       `json:"state"`
}

// PlaySessionFromModel converts an arcade session and its snapshot
func PlaySessionFromModel(s *arcade.Session, state any) PlaySession {
	return PlaySession{
		ID:        string(s.ID),
		GameID:    string(s.GameID),
		CreatedAt: s.CreatedAt,
		State:     state,
	}
}

// ScoreRecord represents one scored session in a player's history
type ScoreRecord struct {
	GameID   string    `json:"game_id"`
	GameName string    `json:"game_name"`
	Points   int       `json:"points"`
	EarnedAt time.Time `json:"earned_at"`
}

// ScoreHistory is a player's score history plus their running total
type ScoreHistory struct {
	Scores      []ScoreRecord `json:"scores"`
	TotalPoints int           `json:"total_points"`
}

// ScoreHistoryFromModel converts score records and a total
func ScoreHistoryFromModel(records []*model.ScoreRecord, total int) ScoreHistory {
	scores := make([]ScoreRecord, len(records))
	for i, r := range records {
		scores[i] = ScoreRecord{
			GameID:   string(r.GameID),
			GameName: r.GameName,
			Points:   r.Points,
			EarnedAt: r.EarnedAt,
		}
	}
	return ScoreHistory{Scores: scores, TotalPoints: total}
}

// LeaderboardEntry represents one ranked row
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	TotalPoints int    `json:"total_points"`
}

// Leaderboard is the ranked listing response
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts leaderboard entries
func LeaderboardFromModel(entries []model.LeaderboardEntry) Leaderboard {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			Rank:        e.Rank,
			PlayerID:    string(e.PlayerID),
			DisplayName: e.DisplayName,
			TotalPoints: e.TotalPoints,
		}
	}
	return Leaderboard{Entries: out}
}
