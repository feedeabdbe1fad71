package room

import (
	"log"
	"sync"

	"chessrooms/internal/engine"
)

// Registry exclusively owns the id → Room map. Rooms are created on first
// join of an unknown id and destroyed by the coordinator once both seats are
// vacant; no other component keeps long-lived Room references.
type Registry struct {
	eng engine.Engine
	bc  Broadcaster

	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry(eng engine.Engine, bc Broadcaster) *Registry {
	return &Registry{
		eng:   eng,
		bc:    bc,
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room for id, creating it with a fresh initial
// state when absent. Idempotent with respect to id.
func (g *Registry) GetOrCreate(id string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.rooms[id]; ok {
		return r
	}
	r := New(id, g.eng, g.bc)
	g.rooms[id] = r
	log.Printf("room %s created", id)
	return r
}

// Lookup returns the room for id, if present.
func (g *Registry) Lookup(id string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[id]
	return r, ok
}

// Destroy removes the room; no-op when absent.
func (g *Registry) Destroy(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.rooms[id]; !ok {
		return
	}
	delete(g.rooms, id)
	log.Printf("room %s destroyed", id)
}

// Count reports the number of live rooms.
func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
