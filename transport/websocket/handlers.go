package websocket

import (
	"errors"
	"fmt"
)

var (
	errPayloadMissing = errors.New("payload is missing")
	errIndexMissing   = errors.New("index is missing")
)

func (that *Server) handleJoinRoom(connectionID string, message *Message) error {
	var payload JoinRoomPayload
	if err := decodePayload(message, &payload); err != nil {
		return err
	}

	that.coordinator.Join(connectionID, payload.RoomID, payload.PlayerName, payload.PlayerSymbol)

	return nil
}

func (that *Server) handleMakeMove(connectionID string, message *Message) error {
	var payload MakeMovePayload
	if err := decodePayload(message, &payload); err != nil {
		return err
	}

	if payload.Index == nil {
		return fmt.Errorf("%w: room %s", errIndexMissing, payload.RoomID)
	}

	that.coordinator.MakeMove(connectionID, payload.RoomID, *payload.Index)

	return nil
}

func (that *Server) handleResetGame(_ string, message *Message) error {
	var payload ResetGamePayload
	if err := decodePayload(message, &payload); err != nil {
		return err
	}

	that.coordinator.Reset(payload.RoomID)

	return nil
}
