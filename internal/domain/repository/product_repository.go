package repository

import (
	"context"

	"github.com/Aryanbansal-05/Relayy-backend/internal/domain/entity"
)

// ProductRepository is a read-only view of the catalog subsystem's products.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
