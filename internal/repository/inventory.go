package repository

import (
	"context"

	"github.com/osse101/BrandishShop/internal/domain"
)

// Inventory is the persistence boundary for owned-item counts.
type Inventory interface {
	Increment(ctx context.Context, userID, itemName string) (int, error)
	Decrement(ctx context.Context, userID, itemName string) (int, error)
	GetOwned(ctx context.Context, userID, itemName string) (int, error)
	ListRecords(ctx context.Context, userID string) ([]domain.InventoryRecord, error)
}
