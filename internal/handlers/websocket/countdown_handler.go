// internal/handlers/websocket/countdown_handler.go
package websocket

import (
	"net/http"

	"fotolio-service/internal/pkg/response"
	ws "fotolio-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Countdown frames are public data; any origin may subscribe
	CheckOrigin: func(r *http.Request) bool { return true },
}

type CountdownHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewCountdownHandler(hub *ws.Hub, logger *zap.Logger) *CountdownHandler {
	return &CountdownHandler{
		hub:    hub,
		logger: logger,
	}
}

// Subscribe upgrades the connection and streams countdown frames for
// the campaign slug in the path.
func (h *CountdownHandler) Subscribe(c *gin.Context) {
	slug := c.Param("slug")
	if !h.hub.KnownSlug(c.Request.Context(), slug) {
		response.NotFound(c, "campaign not found")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(h.hub, conn, slug)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
