package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/logger"
)

const (
	queryInsertUser = `
		INSERT INTO users (user_id, gold) VALUES ($1, $2)
		RETURNING created_at, updated_at`

	queryInsertHolding = `
		INSERT INTO inventory_records (user_id, item_name, owned) VALUES ($1, $2, $3)`

	queryGetUser = `SELECT gold, created_at, updated_at FROM users WHERE user_id = $1`
)

// UserRepository provisions shop accounts for tooling and tests.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a user with a starting balance and optional starting
// holdings in one transaction.
func (r *UserRepository) CreateUser(ctx context.Context, gold int64, holdings map[string]int) (*domain.User, error) {
	if gold < 0 {
		return nil, fmt.Errorf(ErrMsgNegativeStartingGold, gold, domain.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, classify(err, nil))
	}
	defer SafeRollback(ctx, tx)

	id := uuid.New()
	user := &domain.User{ID: id.String(), Gold: gold}
	if err := tx.QueryRow(ctx, queryInsertUser, id, gold).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateUserFailed, classify(err, nil))
	}

	for itemName, owned := range holdings {
		if _, err := tx.Exec(ctx, queryInsertHolding, id, itemName, owned); err != nil {
			return nil, fmt.Errorf(ErrMsgCreateUserFailed, classify(err, domain.ErrInvalidInput))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, classify(err, nil))
	}

	logger.FromContext(ctx).Info(LogMsgUserCreated, "user_id", user.ID, "gold", gold, "holdings", len(holdings))
	return user, nil
}

// GetUser returns the user or ErrUserNotFound.
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	user := &domain.User{ID: id.String()}
	err = r.db.QueryRow(ctx, queryGetUser, id).Scan(&user.Gold, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, userID, domain.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, userID, classify(err, nil))
	}
	return user, nil
}
