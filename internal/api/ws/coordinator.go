package ws

import (
	"chessrooms/internal/engine"
	"chessrooms/internal/room"
)

// Coordinator is the session core the hub dispatches inbound events to.
type Coordinator interface {
	Join(connID, roomID string) room.Role
	SubmitMove(connID string, intent engine.Intent)
	Reset(connID string)
	Disconnect(connID string)
}
