package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

const (
	actionState   = "game:state"
	actionIllegal = "game:illegal"
	actionError   = "error"

	actionClick = "game:click"
	actionMove  = "game:move"
	actionReset = "game:reset"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type clickPayload struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type movePayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type statePayload struct {
	Game   gomoku.Snapshot `json:"game"`
	Status string          `json:"status"`
}

type illegalPayload struct {
	Result gomoku.MoveResult `json:"result"`
	Reason string            `json:"reason"`
}

type errorPayload struct {
	Error string `json:"error"`
}

func newMessage(action string, payload any) (Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return Message{Action: action, Payload: body}, nil
}
