package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

// Inbound actions.
const (
	actionJoinRoom  = "joinRoom"
	actionMakeMove  = "makeMove"
	actionResetGame = "resetGame"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinRoomPayload struct {
	RoomID       string `json:"roomId"`
	PlayerName   string `json:"playerName"`
	PlayerSymbol string `json:"playerSymbol"`
}

type MakeMovePayload struct {
	RoomID string `json:"roomId"`
	Index  *int   `json:"index"`
}

type ResetGamePayload struct {
	RoomID string `json:"roomId"`
}

// encodeNotification renders a notification as a wire message. A nil payload is omitted.
func encodeNotification(notification usecase.Notification) ([]byte, error) {
	message := Message{
		Action: notification.Event,
	}

	if notification.Payload != nil {
		payload, err := json.Marshal(notification.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}

		message.Payload = payload
	}

	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}

func decodePayload(message *Message, payload any) error {
	if len(message.Payload) == 0 {
		return fmt.Errorf("%w: %s", errPayloadMissing, message.Action)
	}

	if err := json.Unmarshal(message.Payload, payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}
