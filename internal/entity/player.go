package entity

import (
	"strings"
	"time"
)

// Player is the identity record behind a session id.
type Player struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidPlayerID reports whether id can key a player entry in a stored game.
// Ids become field path segments, so they may not be empty or contain dots.
func ValidPlayerID(id string) bool {
	return id != "" && !strings.Contains(id, ".")
}
