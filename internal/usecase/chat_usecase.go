package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aryanbansal-05/Relayy-backend/internal/domain/entity"
	"github.com/Aryanbansal-05/Relayy-backend/internal/domain/repository"
	"github.com/Aryanbansal-05/Relayy-backend/internal/infrastructure/ratelimit"
	ws "github.com/Aryanbansal-05/Relayy-backend/internal/infrastructure/websocket"
	"github.com/Aryanbansal-05/Relayy-backend/pkg/errors"
	"github.com/Aryanbansal-05/Relayy-backend/pkg/logger"
)

// ChatUseCase implements conversation resolution, the message pipeline, and
// moderation. Both the REST handlers and the WebSocket dispatcher call these
// methods, so the two surfaces share one set of semantics, including the
// broadcasts that follow each successful mutation.
type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

type CreateChatInput struct {
	CounterpartID  string
	ProductID      string
	InitialMessage string
}

// ChatResponse is a chat with its references resolved to display fields.
type ChatResponse struct {
	*entity.Chat
	Buyer   *entity.User    `json:"buyer,omitempty"`
	Seller  *entity.User    `json:"seller,omitempty"`
	Product *entity.Product `json:"product,omitempty"`
}

// CreateChat finds or creates the single chat for (unordered user pair,
// product bucket). Repeated calls with the same key, from either direction,
// always resolve to the same chat.
func (uc *ChatUseCase) CreateChat(ctx context.Context, userID string, input CreateChatInput) (*ChatResponse, error) {
	if allowed, _ := uc.rateLimiter.Allow(userID, "create_chat"); !allowed {
		return nil, errors.TooManyRequests("Too many chat creations, slow down")
	}

	if userID == input.CounterpartID {
		return nil, errors.BadRequest("You cannot create a chat with yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, input.CounterpartID); err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.NotFound("Counterpart", err)
		}
		return nil, err
	}

	if input.ProductID != "" {
		if _, err := uc.productRepo.GetByID(ctx, input.ProductID); err != nil {
			return nil, err
		}
	}

	chat, err := uc.chatRepo.FindByParticipants(ctx, userID, input.CounterpartID, input.ProductID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		chat = &entity.Chat{
			Participants: []string{userID, input.CounterpartID},
			BuyerID:      userID,
			SellerID:     input.CounterpartID,
			ProductID:    input.ProductID,
			Messages:     []entity.Message{},
		}
		if err := uc.chatRepo.Create(ctx, chat); err != nil {
			return nil, err
		}
	}

	if input.InitialMessage != "" {
		if _, err := uc.SendMessage(ctx, userID, chat.ID, input.InitialMessage); err != nil {
			return nil, err
		}
		// Re-read so the response carries the appended message.
		chat, err = uc.chatRepo.GetByID(ctx, chat.ID)
		if err != nil {
			return nil, err
		}
	}

	return uc.buildChatResponse(ctx, chat), nil
}

// GetUserChats lists the user's chats, most recently updated first.
func (uc *ChatUseCase) GetUserChats(ctx context.Context, userID string) ([]*ChatResponse, error) {
	chats, err := uc.chatRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ChatResponse, 0, len(chats))
	for _, chat := range chats {
		responses = append(responses, uc.buildChatResponse(ctx, chat))
	}
	return responses, nil
}

func (uc *ChatUseCase) GetChatByID(ctx context.Context, userID, chatID string) (*ChatResponse, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	return uc.buildChatResponse(ctx, chat), nil
}

// GetChatMessages returns the chat's messages in insertion order.
func (uc *ChatUseCase) GetChatMessages(ctx context.Context, userID, chatID string) ([]entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	if chat.Messages == nil {
		return []entity.Message{}, nil
	}
	return chat.Messages, nil
}

// SendMessage validates, persists, and only then broadcasts. A persistence
// failure aborts before any broadcast, so other participants never observe a
// message that was not durably stored.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, chatID, text string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}

	if allowed, _ := uc.rateLimiter.Allow(senderID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("Too many messages, slow down")
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	message := entity.Message{
		ID:        uuid.New().String(),
		SenderID:  senderID,
		Text:      text,
		Read:      false,
		CreatedAt: time.Now(),
	}

	chat.Messages = append(chat.Messages, message)
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return nil, err
	}

	uc.fanOutMessage(ctx, chat, &message)

	return &message, nil
}

// fanOutMessage delivers a persisted message: a room broadcast for everyone
// viewing the chat, plus an out-of-room notification for the counterpart when
// they are connected but not viewing it. An offline counterpart gets nothing;
// there is no store-and-forward.
func (uc *ChatUseCase) fanOutMessage(ctx context.Context, chat *entity.Chat, message *entity.Message) {
	payload, err := ws.MarshalEvent(ws.EventReceiveMessage, ws.ReceiveMessagePayload{
		ChatID:  chat.ID,
		Message: message,
	})
	if err != nil {
		logger.Log.Error("failed to marshal receive-message event", zap.Error(err))
		return
	}
	uc.wsManager.BroadcastToRoom(chat.ID, payload)

	counterpart := chat.OtherParticipant(message.SenderID)
	if counterpart == "" {
		return
	}
	if !uc.wsManager.IsOnline(counterpart) || uc.wsManager.UserInRoom(counterpart, chat.ID) {
		return
	}

	senderName := message.SenderID
	if sender, err := uc.userRepo.GetByID(ctx, message.SenderID); err == nil {
		senderName = sender.Username
	} else {
		logger.Log.Warn("failed to resolve sender for notification",
			zap.String("senderID", message.SenderID), zap.Error(err))
	}

	notification, err := ws.MarshalEvent(ws.EventNewMessageNotification, ws.NotificationPayload{
		ChatID:     chat.ID,
		SenderName: senderName,
		Text:       message.Text,
	})
	if err != nil {
		logger.Log.Error("failed to marshal notification event", zap.Error(err))
		return
	}
	uc.wsManager.SendToUser(counterpart, notification)
}

// DeleteMessage removes a single message. Only its author may delete it;
// being a participant is not enough.
func (uc *ChatUseCase) DeleteMessage(ctx context.Context, requesterID, chatID, messageID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !chat.HasParticipant(requesterID) {
		return errors.Forbidden("You are not a participant in this chat", nil)
	}

	idx := chat.MessageIndex(messageID)
	if idx < 0 {
		return errors.NotFound("Message", nil)
	}

	if chat.Messages[idx].SenderID != requesterID {
		return errors.Forbidden("You can only delete your own messages", nil)
	}

	chat.Messages = append(chat.Messages[:idx], chat.Messages[idx+1:]...)
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return err
	}

	payload, err := ws.MarshalEvent(ws.EventMessageDeleted, ws.MessageDeletedPayload{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		logger.Log.Error("failed to marshal message-deleted event", zap.Error(err))
		return nil
	}
	uc.wsManager.BroadcastToRoom(chatID, payload)

	return nil
}

// DeleteChat hard-deletes the chat and its messages. The deletion event goes
// to the room and, unlike message notifications, also directly to every
// participant's registered connection: the room is about to become
// meaningless, so everyone involved is told regardless of membership.
func (uc *ChatUseCase) DeleteChat(ctx context.Context, requesterID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !chat.HasParticipant(requesterID) {
		return errors.Forbidden("You are not a participant in this chat", nil)
	}

	if err := uc.chatRepo.Delete(ctx, chatID); err != nil {
		return err
	}

	payload, err := ws.MarshalEvent(ws.EventChatDeleted, ws.ChatDeletedPayload{ChatID: chatID})
	if err != nil {
		logger.Log.Error("failed to marshal chat-deleted event", zap.Error(err))
		return nil
	}

	uc.wsManager.BroadcastToRoom(chatID, payload)
	for _, participant := range chat.Participants {
		uc.wsManager.SendToUser(participant, payload)
	}

	return nil
}

// MarkChatAsRead flips read on every unread message authored by the other
// participant. The write is skipped entirely when nothing changed.
func (uc *ChatUseCase) MarkChatAsRead(ctx context.Context, requesterID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !chat.HasParticipant(requesterID) {
		return errors.Forbidden("You are not a participant in this chat", nil)
	}

	changed := false
	for i := range chat.Messages {
		msg := &chat.Messages[i]
		if msg.SenderID != requesterID && !msg.Read {
			msg.Read = true
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return uc.chatRepo.Update(ctx, chat)
}

func (uc *ChatUseCase) buildChatResponse(ctx context.Context, chat *entity.Chat) *ChatResponse {
	resp := &ChatResponse{Chat: chat}

	if buyer, err := uc.userRepo.GetByID(ctx, chat.BuyerID); err == nil {
		resp.Buyer = buyer
	} else {
		logger.Log.Warn("failed to resolve buyer",
			zap.String("chatID", chat.ID), zap.String("buyerID", chat.BuyerID), zap.Error(err))
	}

	if seller, err := uc.userRepo.GetByID(ctx, chat.SellerID); err == nil {
		resp.Seller = seller
	} else {
		logger.Log.Warn("failed to resolve seller",
			zap.String("chatID", chat.ID), zap.String("sellerID", chat.SellerID), zap.Error(err))
	}

	if chat.ProductID != "" {
		if product, err := uc.productRepo.GetByID(ctx, chat.ProductID); err == nil {
			resp.Product = product
		} else {
			logger.Log.Warn("failed to resolve product",
				zap.String("chatID", chat.ID), zap.String("productID", chat.ProductID), zap.Error(err))
		}
	}

	return resp
}
