package repository

import (
	"context"

	"github.com/Aryanbansal-05/Relayy-backend/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)

	// FindByParticipants matches on the unordered user pair plus the product
	// bucket (productID == "" is the general-conversation bucket). Returns a
	// NOT_FOUND error when no such chat exists.
	FindByParticipants(ctx context.Context, userA, userB, productID string) (*entity.Chat, error)

	// ListByUserID returns the user's chats, most recently updated first.
	ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error)

	Update(ctx context.Context, chat *entity.Chat) error
	Delete(ctx context.Context, id string) error
}
