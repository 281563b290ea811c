package repository

import (
	"context"

	"github.com/osse101/BrandishShop/internal/domain"
)

// User provisions and reads shop accounts. Only tooling and tests create
// users; the shop itself assumes they already exist.
type User interface {
	CreateUser(ctx context.Context, gold int64, holdings map[string]int) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
