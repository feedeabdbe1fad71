// Package engine defines the rule-validation boundary consumed by the room
// layer. An Engine is a pure function over an explicit serialized state: it
// never mutates state in place, so callers can reconstruct any position by
// replaying committed moves from InitialState.
package engine

import "errors"

// ErrIllegalMove is returned by ApplyMove when the intent is not a legal
// transition from the given state.
var ErrIllegalMove = errors.New("illegal move")

// Seat identifies one of the two player slots in a game.
type Seat string

const (
	SeatWhite Seat = "w"
	SeatBlack Seat = "b"
)

// Intent is a participant's proposed move, prior to validation.
type Intent struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// Move is a committed move: the validated intent plus the result details and
// the serialized state after the move was applied.
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	SAN       string `json:"san"`
	Color     Seat   `json:"color"`
	Capture   bool   `json:"capture"`
	FEN       string `json:"fen"`
}

// Terminal describes a finished game. Winner is empty for draws.
type Terminal struct {
	Reason string `json:"reason"`
	Winner Seat   `json:"winner,omitempty"`
}

// Engine validates proposed transitions against a serialized state. The state
// is opaque to the room layer beyond what these methods expose.
type Engine interface {
	// InitialState returns the serialized starting position.
	InitialState() string

	// TurnOwner reports which seat moves next in the given state.
	TurnOwner(state string) (Seat, error)

	// ApplyMove validates intent against state and returns the committed
	// move together with the resulting state. Returns ErrIllegalMove when
	// the intent is not a legal transition; state is never modified.
	ApplyMove(state string, intent Intent) (Move, string, error)

	// Terminal reports whether the state ends the game, and why.
	Terminal(state string) (Terminal, bool)
}
