package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameInfo:
		o.printGameInfo(v)
	case GameList:
		o.printGameList(v)
	case PlaySession:
		o.printPlaySession(v)
	case ScoreHistory:
		o.printScoreHistory(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case Progress:
		o.printProgress(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// GameInfo response type
type GameInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
}

// GameList response type
type GameList struct {
	Games []GameInfo `json:"games"`
}

// PlaySession response type. State is game-specific, so it stays generic.
type PlaySession struct {
	ID        string         `json:"id"`
	GameID    string         `json:"game_id"`
	CreatedAt time.Time      `json:"created_at"`
	State     map[string]any `json:"state"`
}

// ScoreRecord response type
type ScoreRecord struct {
	GameID   string    `json:"game_id"`
	GameName string    `json:"game_name"`
	Points   int       `json:"points"`
	EarnedAt time.Time `json:"earned_at"`
}

// ScoreHistory response type
type ScoreHistory struct {
	Scores      []ScoreRecord `json:"scores"`
	TotalPoints int           `json:"total_points"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	TotalPoints int    `json:"total_points"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// Achievement response type
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// Progress response type
type Progress struct {
	TotalPoints  int           `json:"total_points"`
	Level        string        `json:"level"`
	NextLevelAt  int           `json:"next_level_at"`
	GamesPlayed  int           `json:"games_played"`
	Wins         int           `json:"wins"`
	Achievements []Achievement `json:"achievements"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	if p.Avatar != "" {
		fmt.Printf("Avatar: %s\n", p.Avatar)
	}
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameInfo(g GameInfo) {
	fmt.Printf("Game: %s (%s)\n", g.Title, g.ID)
	fmt.Printf("Category: %s\n", g.Category)
	fmt.Printf("Difficulty: %s\n", g.Difficulty)
	fmt.Printf("%s\n", g.Description)
}

func (o *Output) printGameList(l GameList) {
	fmt.Printf("Games (%d):\n", len(l.Games))
	for _, g := range l.Games {
		fmt.Printf("  %-20s %-10s %-8s %s\n", g.ID, g.Category, g.Difficulty, g.Title)
	}
}

func (o *Output) printPlaySession(s PlaySession) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Game: %s\n", s.GameID)

	if len(s.State) == 0 {
		return
	}
	fmt.Println("State:")
	// Game snapshots differ per game; render them as indented JSON
	data, err := json.MarshalIndent(s.State, "  ", "  ")
	if err != nil {
		return
	}
	fmt.Printf("  %s\n", string(data))
}

func (o *Output) printScoreHistory(h ScoreHistory) {
	fmt.Printf("Total Points: %d\n", h.TotalPoints)
	fmt.Printf("Sessions (%d):\n", len(h.Scores))
	for _, s := range h.Scores {
		fmt.Printf("  [%s] %-20s %d pts\n", s.EarnedAt.Format("2006-01-02 15:04"), s.GameName, s.Points)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%d):\n", len(l.Entries))
	for _, e := range l.Entries {
		fmt.Printf("  %2d. %-24s %d pts\n", e.Rank, e.DisplayName, e.TotalPoints)
	}
}

func (o *Output) printProgress(p Progress) {
	fmt.Printf("Level: %s\n", p.Level)
	fmt.Printf("Total Points: %d\n", p.TotalPoints)
	if p.NextLevelAt > 0 {
		fmt.Printf("Next Level At: %d pts\n", p.NextLevelAt)
	}
	fmt.Printf("Games Played: %d\n", p.GamesPlayed)
	fmt.Printf("Wins: %d\n", p.Wins)

	fmt.Println("Achievements:")
	for _, a := range p.Achievements {
		marker := " "
		if a.Earned {
			marker = "x"
		}
		fmt.Printf("  [%s] %s - %s\n", marker, a.Title, a.Description)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
