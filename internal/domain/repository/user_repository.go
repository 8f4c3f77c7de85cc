package repository

import (
	"context"

	"github.com/Aryanbansal-05/Relayy-backend/internal/domain/entity"
)

// UserRepository is a read-only view of the identity subsystem's user store.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
