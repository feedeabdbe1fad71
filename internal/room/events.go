package room

import "chessrooms/internal/engine"

// Outbound event names. Every room mutation fans out through exactly one of
// Broadcaster.Send or Broadcaster.Broadcast with one of these actions.
const (
	EventRoleAssigned     = "roleAssigned"
	EventObserverAssigned = "observerAssigned"
	EventObserverJoined   = "observerJoined"
	EventSnapshot         = "snapshot"
	EventMoveApplied      = "moveApplied"
	EventMoveRejected     = "moveRejected"
)

// Role is the tag a joining connection is given: a seat in arrival order, or
// observer once both seats are taken.
type Role string

const (
	RoleFirst    Role = "first"
	RoleSecond   Role = "second"
	RoleObserver Role = "observer"
)

// RolePayload accompanies roleAssigned. Seat carries the domain color so a
// chess client knows which pieces it owns.
type RolePayload struct {
	Role Role        `json:"role"`
	Seat engine.Seat `json:"seat"`
}

// SnapshotPayload resynchronizes a connection: full serialized state plus the
// committed history that reproduces it.
type SnapshotPayload struct {
	FEN     string        `json:"fen"`
	History []engine.Move `json:"history"`
}

// MoveAppliedPayload carries a committed move, the resulting state, and the
// terminal verdict when the move ended the game.
type MoveAppliedPayload struct {
	Move     engine.Move      `json:"move"`
	FEN      string           `json:"fen"`
	Terminal *engine.Terminal `json:"terminal,omitempty"`
}

// MoveRejectedPayload echoes the rejected intent back to the submitter.
type MoveRejectedPayload struct {
	Intent engine.Intent `json:"intent"`
}
