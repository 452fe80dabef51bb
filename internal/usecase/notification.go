package usecase

import "github.com/rocketscienceinc/tictactoe-rooms/internal/entity"

// Outbound events.
const (
	EventInvalidJoin        = "invalidJoin"
	EventPlayerJoined       = "playerJoined"
	EventRoomFull           = "roomFull"
	EventUpdatePlayers      = "updatePlayers"
	EventStartGame          = "startGame"
	EventUpdateGame         = "updateGame"
	EventGameOver           = "gameOver"
	EventPlayerDisconnected = "playerDisconnected"
)

// Notification is one outbound event addressed to a set of connections.
type Notification struct {
	Recipients []string
	Event      string
	Payload    any
}

type PlayerJoinedPayload struct {
	PlayerID string `json:"playerId"`
}

type GameOverPayload struct {
	Winner *entity.Player `json:"winner"`
}

type PlayerDisconnectedPayload struct {
	Message string `json:"message"`
}

func toConnection(connectionID, event string, payload any) Notification {
	return Notification{
		Recipients: []string{connectionID},
		Event:      event,
		Payload:    payload,
	}
}

func toMembers(members []string, event string, payload any) Notification {
	return Notification{
		Recipients: members,
		Event:      event,
		Payload:    payload,
	}
}
