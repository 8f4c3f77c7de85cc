package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Aryanbansal-05/Relayy-backend/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the connection surface. Authentication
// happens inside the handler during the handshake, not as route middleware.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
