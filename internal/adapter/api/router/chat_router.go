package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Aryanbansal-05/Relayy-backend/internal/adapter/api/handler"
	"github.com/Aryanbansal-05/Relayy-backend/internal/adapter/api/middleware"
)

// SetupChatRouter registers the REST chat surface.
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("", chatHandler.CreateChat)
	chatGroup.GET("", chatHandler.GetUserChats)
	chatGroup.GET("/:id", chatHandler.GetChatByID)
	chatGroup.PUT("/:id/read", chatHandler.MarkChatAsRead)
	chatGroup.DELETE("/:id", chatHandler.DeleteChat)

	chatGroup.POST("/:id/messages", chatHandler.SendMessage)
	chatGroup.GET("/:id/messages", chatHandler.GetChatMessages)
	chatGroup.DELETE("/:id/messages/:messageId", chatHandler.DeleteMessage)
}
