package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"chessrooms/internal/config"
	"chessrooms/internal/room"
)

func HealthHandler(registry *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"rooms":  registry.Count(),
		})
	}
}

func VersionHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "chessrooms v%s\n", version)
	}
}

func RoomInfoHandler(registry *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		r, ok := registry.Lookup(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		stats := r.Stats()
		c.JSON(http.StatusOK, RoomSummary{
			ID:        id,
			Seats:     stats.Seats,
			Observers: stats.Observers,
			Moves:     stats.Moves,
			FEN:       r.State(),
		})
	}
}

// RoomQRHandler renders the room's join link as a QR code. Room ids are
// caller-supplied and rooms are created on first join, so no existence check.
func RoomQRHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		png, err := qrcode.Encode(cfg.JoinURL(id), qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate qr code"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
