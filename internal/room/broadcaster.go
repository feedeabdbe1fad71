package room

// Broadcaster is the messaging substrate's addressing surface: a room-wide
// fan-out plus a direct send to one connection. Delivery is fire-and-forget.
type Broadcaster interface {
	Broadcast(roomID string, action string, data interface{})
	Send(connID string, action string, data interface{})
}
