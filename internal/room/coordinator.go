package room

import (
	"sync"

	"chessrooms/internal/engine"
)

// Coordinator routes connection events to rooms. It maintains the
// connection → room index incrementally at join and leave, so dispatching an
// intent is a single map lookup rather than a scan over every room.
//
// Join and Disconnect hold the write lock for the whole operation, which
// scopes each room's create/destroy decision to one execution context.
type Coordinator struct {
	registry *Registry

	mu     sync.RWMutex
	byConn map[string]string // connection id -> room id
}

func NewCoordinator(registry *Registry) *Coordinator {
	return &Coordinator{
		registry: registry,
		byConn:   make(map[string]string),
	}
}

// Join places the connection in the given room and returns its role. A
// connection occupies at most one room: joining a new room first vacates the
// old one, destroying it if that empties both seats.
func (c *Coordinator) Join(connID, roomID string) Role {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.byConn[connID]; ok && prev != roomID {
		c.vacate(connID, prev)
	}

	r := c.registry.GetOrCreate(roomID)
	role := r.Join(connID)
	c.byConn[connID] = roomID
	return role
}

// SubmitMove forwards a move intent to the connection's current room.
// Intents from connections without a room are discarded.
func (c *Coordinator) SubmitMove(connID string, intent engine.Intent) {
	if r, ok := c.roomOf(connID); ok {
		r.SubmitMove(connID, intent)
	}
}

// Reset forwards a new-game request to the connection's current room.
func (c *Coordinator) Reset(connID string) {
	if r, ok := c.roomOf(connID); ok {
		r.Reset(connID)
	}
}

// Disconnect removes the connection from its room, destroying the room when
// both seats become vacant. Safe to call repeatedly: a second delivery finds
// no index entry and does nothing.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	roomID, ok := c.byConn[connID]
	if !ok {
		return
	}
	c.vacate(connID, roomID)
}

// RoomOf reports the room the connection currently occupies.
func (c *Coordinator) RoomOf(connID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byConn[connID]
	return id, ok
}

// vacate requires c.mu to be held for writing.
func (c *Coordinator) vacate(connID, roomID string) {
	delete(c.byConn, connID)
	r, ok := c.registry.Lookup(roomID)
	if !ok {
		return
	}
	if r.Leave(connID) {
		c.registry.Destroy(roomID)
	}
}

func (c *Coordinator) roomOf(connID string) (*Room, bool) {
	c.mu.RLock()
	roomID, ok := c.byConn[connID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return c.registry.Lookup(roomID)
}
