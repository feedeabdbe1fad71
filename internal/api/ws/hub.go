package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chessrooms/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Hub is the messaging substrate: it assigns each websocket connection an
// ephemeral id, tracks which room channel each connection is subscribed to,
// and provides the room-broadcast and direct-send primitives the session core
// fans out through. Hub implements room.Broadcaster.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]*client
	rooms  map[string]map[string]*client // room id -> conn id -> client
	byConn map[string]string             // conn id -> room id

	coordinator Coordinator
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[string]*client),
		rooms:  make(map[string]map[string]*client),
		byConn: make(map[string]string),
	}
}

// SetCoordinator completes wiring; the coordinator is constructed after the
// hub because it broadcasts through it.
func (h *Hub) SetCoordinator(c Coordinator) {
	h.coordinator = c
}

// HandleWS upgrades the request and runs the connection's read loop,
// dispatching inbound events to the coordinator until the socket closes.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}

	cl := &client{id: uuid.NewString(), conn: conn, send: make(chan envelope, sendBuffer)}
	h.register(cl)
	go cl.writePump()
	log.Printf("conn %s connected", cl.id)

	defer func() {
		h.unregister(cl)
		h.coordinator.Disconnect(cl.id)
		log.Printf("conn %s disconnected", cl.id)
	}()

	for {
		var msg struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("conn %s: read: %v", cl.id, err)
			}
			return
		}

		switch msg.Action {
		case "joinRoom":
			roomID := decodeRoomID(msg.Data)
			if roomID == "" {
				log.Printf("conn %s: joinRoom without room id", cl.id)
				continue
			}
			h.subscribe(cl, roomID)
			h.coordinator.Join(cl.id, roomID)
		case "move":
			var intent engine.Intent
			if err := json.Unmarshal(msg.Data, &intent); err != nil {
				log.Printf("conn %s: bad move payload: %v", cl.id, err)
				continue
			}
			h.coordinator.SubmitMove(cl.id, intent)
		case "newGame":
			h.coordinator.Reset(cl.id)
		default:
			log.Printf("conn %s: unknown action %q", cl.id, msg.Action)
		}
	}
}

// Broadcast sends an event to every connection subscribed to the room.
func (h *Hub) Broadcast(roomID string, action string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, cl := range h.rooms[roomID] {
		h.push(cl, action, data)
	}
}

// Send delivers an event to a single connection.
func (h *Hub) Send(connID string, action string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if cl, ok := h.conns[connID]; ok {
		h.push(cl, action, data)
	}
}

// push never blocks: a connection that cannot drain its queue is closed, and
// cleanup flows through its read loop.
func (h *Hub) push(cl *client, action string, data interface{}) {
	select {
	case cl.send <- envelope{Action: action, Data: data}:
	default:
		log.Printf("conn %s: send queue full, closing", cl.id)
		_ = cl.conn.Close()
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[cl.id] = cl
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[cl.id]; !ok {
		return
	}
	delete(h.conns, cl.id)
	h.dropFromRoom(cl)
	close(cl.send)
}

// subscribe moves the connection onto the room's channel, leaving any
// previous one.
func (h *Hub) subscribe(cl *client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropFromRoom(cl)
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*client)
	}
	h.rooms[roomID][cl.id] = cl
	h.byConn[cl.id] = roomID
}

// dropFromRoom requires h.mu to be held for writing.
func (h *Hub) dropFromRoom(cl *client) {
	roomID, ok := h.byConn[cl.id]
	if !ok {
		return
	}
	delete(h.byConn, cl.id)
	if members, ok := h.rooms[roomID]; ok {
		delete(members, cl.id)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// decodeRoomID accepts either a bare JSON string or {"roomId": "..."}.
func decodeRoomID(data json.RawMessage) string {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		return id
	}
	var obj struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return obj.RoomID
	}
	return ""
}
