package http

// RoomSummary describes a room's occupancy for GET /rooms/:id.
type RoomSummary struct {
	ID        string `json:"id"`
	Seats     int    `json:"seats"`
	Observers int    `json:"observers"`
	Moves     int    `json:"moves"`
	FEN       string `json:"fen"`
}
