package http

import (
	"github.com/gin-gonic/gin"

	"chessrooms/internal/api/ws"
	"chessrooms/internal/config"
	"chessrooms/internal/room"
)

func NewRouter(cfg config.Config, hub *ws.Hub, registry *room.Registry, version string) *gin.Engine {
	r := gin.Default()

	// WebSocket endpoint for the session protocol
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.GET("/rooms/:id", RoomInfoHandler(registry))
	r.GET("/rooms/:id/qr", RoomQRHandler(cfg))

	// --- SERVICE ENDPOINTS ---
	r.GET("/healthz", HealthHandler(registry))
	r.GET("/version", VersionHandler(version))

	return r
}
