package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishShop/internal/database/postgres"
	"github.com/osse101/BrandishShop/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	User      repository.User
	Ledger    repository.Ledger
	Inventory repository.Inventory
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:      postgres.NewUserRepository(dbPool),
		Ledger:    postgres.NewLedgerRepository(dbPool),
		Inventory: postgres.NewInventoryRepository(dbPool),
	}
}
