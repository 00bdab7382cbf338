package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/session"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameJoin  = "game:join"
	actionGameCall  = "game:call"
	actionGameMark  = "game:mark"
	actionGameState = "game:state"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *GameRequest   `json:"game,omitempty"`
	Cell   *CellRequest   `json:"cell,omitempty"`
	View   *session.View  `json:"view,omitempty"`
	Number int            `json:"number,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type GameRequest struct {
	ID string `json:"id"`
}

type CellRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
