package room

import (
	"fmt"
	"log"
	"sync"

	"chessrooms/internal/engine"
)

// Room owns one authoritative game state, the two-seat role assignment, and
// the observer set for a single session. All mutations hold r.mu from the
// turn check through commit and broadcast, so two near-simultaneous moves can
// never both pass the turn check.
type Room struct {
	id  string
	eng engine.Engine
	bc  Broadcaster

	mu        sync.Mutex
	state     string
	history   []engine.Move
	white     string // connection id, empty when vacant
	black     string
	observers map[string]struct{}
}

func New(id string, eng engine.Engine, bc Broadcaster) *Room {
	return &Room{
		id:        id,
		eng:       eng,
		bc:        bc,
		state:     eng.InitialState(),
		observers: make(map[string]struct{}),
	}
}

func (r *Room) ID() string {
	return r.id
}

// Join assigns the connection a seat in arrival order, or the observer role
// once both seats are taken. The joiner always receives a full snapshot; when
// the join fills the second seat the snapshot is broadcast to the whole room
// instead, resynchronizing the player who joined while alone.
func (r *Room) Join(connID string) Role {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A repeated join from a current member just resends its assignment.
	if role, ok := r.roleOf(connID); ok {
		r.sendAssignment(connID, role)
		r.bc.Send(connID, EventSnapshot, r.snapshot())
		return role
	}

	var role Role
	switch {
	case r.white == "":
		r.white = connID
		role = RoleFirst
	case r.black == "":
		r.black = connID
		role = RoleSecond
	default:
		r.observers[connID] = struct{}{}
		role = RoleObserver
	}
	r.sendAssignment(connID, role)

	if role == RoleObserver {
		for _, member := range r.members() {
			if member != connID {
				r.bc.Send(member, EventObserverJoined, nil)
			}
		}
		r.bc.Send(connID, EventSnapshot, r.snapshot())
		return role
	}

	if r.white != "" && r.black != "" {
		// Second seat just filled: resync everyone, not only the joiner.
		r.bc.Broadcast(r.id, EventSnapshot, r.snapshot())
	} else {
		r.bc.Send(connID, EventSnapshot, r.snapshot())
	}
	return role
}

// SubmitMove validates and commits a move intent. Submissions from observers,
// stale connections, or the seat not on turn are discarded without
// notification. Engine rejections go back to the submitter only.
func (r *Room) SubmitMove(connID string, intent engine.Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.seatOf(connID)
	if !ok {
		return
	}

	owner, err := r.eng.TurnOwner(r.state)
	if err != nil {
		log.Printf("room %s: turn owner: %v", r.id, err)
		return
	}
	if seat != owner {
		return
	}

	committed, next, err := r.applyMove(intent)
	if err != nil {
		r.bc.Send(connID, EventMoveRejected, MoveRejectedPayload{Intent: intent})
		return
	}

	r.state = next
	r.history = append(r.history, committed)

	payload := MoveAppliedPayload{Move: committed, FEN: next}
	if term, over := r.eng.Terminal(next); over {
		payload.Terminal = &term
	}
	r.bc.Broadcast(r.id, EventMoveApplied, payload)
}

// applyMove calls the engine, converting a panic into an error so a faulty
// engine surfaces as a rejection rather than crashing the room.
func (r *Room) applyMove(intent engine.Intent) (committed engine.Move, next string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("engine panic: %v", p)
			log.Printf("room %s: %v", r.id, err)
		}
	}()
	return r.eng.ApplyMove(r.state, intent)
}

// Reset replaces the state with a fresh initial position, clears the history,
// and broadcasts the reset snapshot. Any current member may reset; requests
// from non-members are discarded.
func (r *Room) Reset(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roleOf(connID); !ok {
		return
	}
	r.state = r.eng.InitialState()
	r.history = nil
	r.bc.Broadcast(r.id, EventSnapshot, r.snapshot())
}

// Leave removes the connection from whichever slot holds it and reports
// whether both seats are now vacant, meaning the room should be destroyed.
// Leaving is silent and idempotent.
func (r *Room) Leave(connID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch connID {
	case r.white:
		r.white = ""
	case r.black:
		r.black = ""
	default:
		delete(r.observers, connID)
	}
	return r.white == "" && r.black == ""
}

// State returns the current serialized state.
func (r *Room) State() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// History returns a copy of the committed moves.
func (r *Room) History() []engine.Move {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]engine.Move(nil), r.history...)
}

// Stats summarizes occupancy for the HTTP surface.
type Stats struct {
	Seats     int
	Observers int
	Moves     int
}

func (r *Room) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	seats := 0
	if r.white != "" {
		seats++
	}
	if r.black != "" {
		seats++
	}
	return Stats{Seats: seats, Observers: len(r.observers), Moves: len(r.history)}
}

func (r *Room) sendAssignment(connID string, role Role) {
	switch role {
	case RoleFirst:
		r.bc.Send(connID, EventRoleAssigned, RolePayload{Role: role, Seat: engine.SeatWhite})
	case RoleSecond:
		r.bc.Send(connID, EventRoleAssigned, RolePayload{Role: role, Seat: engine.SeatBlack})
	default:
		r.bc.Send(connID, EventObserverAssigned, nil)
	}
}

func (r *Room) snapshot() SnapshotPayload {
	history := make([]engine.Move, len(r.history))
	copy(history, r.history)
	return SnapshotPayload{FEN: r.state, History: history}
}

func (r *Room) seatOf(connID string) (engine.Seat, bool) {
	if connID == "" {
		return "", false
	}
	switch connID {
	case r.white:
		return engine.SeatWhite, true
	case r.black:
		return engine.SeatBlack, true
	}
	return "", false
}

func (r *Room) roleOf(connID string) (Role, bool) {
	if connID == "" {
		return "", false
	}
	switch connID {
	case r.white:
		return RoleFirst, true
	case r.black:
		return RoleSecond, true
	}
	if _, ok := r.observers[connID]; ok {
		return RoleObserver, true
	}
	return "", false
}

func (r *Room) members() []string {
	out := make([]string, 0, 2+len(r.observers))
	if r.white != "" {
		out = append(out, r.white)
	}
	if r.black != "" {
		out = append(out, r.black)
	}
	for id := range r.observers {
		out = append(out, id)
	}
	return out
}
