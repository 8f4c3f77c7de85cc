package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Aryanbansal-05/Relayy-backend/internal/infrastructure/firebase"
	ws "github.com/Aryanbansal-05/Relayy-backend/internal/infrastructure/websocket"
	"github.com/Aryanbansal-05/Relayy-backend/internal/usecase"
	"github.com/Aryanbansal-05/Relayy-backend/pkg/errors"
	"github.com/Aryanbansal-05/Relayy-backend/pkg/logger"
)

// WebSocketHandler authenticates the handshake, upgrades the connection, and
// dispatches inbound events to the same use case methods the REST surface
// uses. Failed events answer with chat-error to the originating connection
// only; the connection itself stays open.
type WebSocketHandler struct {
	wsManager   *ws.Manager
	authClient  *firebase.AuthClient
	chatUseCase *usecase.ChatUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to the deployed frontend origins
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, authClient *firebase.AuthClient, chatUseCase *usecase.ChatUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		authClient:  authClient,
		chatUseCase: chatUseCase,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		authHeader := c.Request().Header.Get("Authorization")
		if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}

	userID, err := h.authClient.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.Reason(err))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := ws.NewClient(userID, conn)
	h.wsManager.Register(client)

	go client.WritePump()
	go client.ReadPump(h.wsManager, h.dispatchEvent)

	return nil
}

func (h *WebSocketHandler) dispatchEvent(client *ws.Client, raw []byte) {
	var event ws.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		h.sendError(client, "Invalid event format")
		return
	}

	ctx := context.Background()

	switch event.Event {
	case ws.EventJoinChat:
		var data ws.JoinChatData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ChatID == "" {
			h.sendError(client, "Invalid join-chat data")
			return
		}
		h.wsManager.JoinRoom(client, data.ChatID)

	case ws.EventLeaveChat:
		var data ws.JoinChatData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ChatID == "" {
			h.sendError(client, "Invalid leave-chat data")
			return
		}
		h.wsManager.LeaveRoom(client, data.ChatID)

	case ws.EventSendMessage:
		var data ws.SendMessageData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ChatID == "" {
			h.sendError(client, "Invalid send-message data")
			return
		}
		if _, err := h.chatUseCase.SendMessage(ctx, client.UserID, data.ChatID, data.Text); err != nil {
			h.sendError(client, errors.Reason(err))
		}

	case ws.EventDeleteMessage:
		var data ws.DeleteMessageData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ChatID == "" || data.MessageID == "" {
			h.sendError(client, "Invalid delete-message data")
			return
		}
		if err := h.chatUseCase.DeleteMessage(ctx, client.UserID, data.ChatID, data.MessageID); err != nil {
			h.sendError(client, errors.Reason(err))
		}

	case ws.EventDeleteChat:
		var data ws.DeleteChatData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ChatID == "" {
			h.sendError(client, "Invalid delete-chat data")
			return
		}
		if err := h.chatUseCase.DeleteChat(ctx, client.UserID, data.ChatID); err != nil {
			h.sendError(client, errors.Reason(err))
		}

	default:
		h.sendError(client, "Unknown event type")
	}
}

func (h *WebSocketHandler) sendError(client *ws.Client, reason string) {
	payload, err := ws.MarshalEvent(ws.EventChatError, ws.ChatErrorPayload{Message: reason})
	if err != nil {
		logger.Log.Error("failed to marshal chat-error event", zap.Error(err))
		return
	}
	h.wsManager.SendToClient(client, payload)
}
