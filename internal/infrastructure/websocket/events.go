package websocket

import (
	"encoding/json"

	"github.com/Aryanbansal-05/Relayy-backend/internal/domain/entity"
)

// Inbound event names.
const (
	EventJoinChat      = "join-chat"
	EventLeaveChat     = "leave-chat"
	EventSendMessage   = "send-message"
	EventDeleteMessage = "delete-message"
	EventDeleteChat    = "delete-chat"
)

// Outbound event names.
const (
	EventReceiveMessage         = "receive-message"
	EventNewMessageNotification = "new-message-notification"
	EventMessageDeleted         = "message-deleted"
	EventChatDeleted            = "chat-deleted"
	EventChatError              = "chat-error"
)

// Event is the wire envelope for both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound payloads.

type JoinChatData struct {
	ChatID string `json:"chat_id"`
}

type SendMessageData struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
	// Accepted for wire compatibility; the recipient is derived server-side
	// from the chat's participants.
	CounterpartID string `json:"counterpart_id,omitempty"`
}

type DeleteMessageData struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
}

type DeleteChatData struct {
	ChatID string `json:"chat_id"`
}

// Outbound payloads.

type ReceiveMessagePayload struct {
	ChatID  string          `json:"chat_id"`
	Message *entity.Message `json:"message"`
}

type NotificationPayload struct {
	ChatID     string `json:"chat_id"`
	SenderName string `json:"sender_name"`
	Text       string `json:"text"`
}

type MessageDeletedPayload struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
}

type ChatDeletedPayload struct {
	ChatID string `json:"chat_id"`
}

type ChatErrorPayload struct {
	Message string `json:"message"`
}

// MarshalEvent builds a wire frame for an outbound event.
func MarshalEvent(name string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: name, Data: raw})
}
