package redis

import (
	"fmt"

	"github.com/tcullen/arcadehub/internal/model"
)

// Key prefix for all arcade data
const keyPrefix = "arcade"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// scoresKey returns the Redis key for a player's score history LIST
func scoresKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:scores:%s", keyPrefix, playerID)
}

// leaderboardKey returns the Redis key for the totals sorted set
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}
