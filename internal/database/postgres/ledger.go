package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishShop/internal/domain"
)

const (
	queryGetBalance = `SELECT gold FROM users WHERE user_id = $1`

	// The balance guard lives in the WHERE clause so two concurrent debits
	// cannot both pass it.
	queryDebit = `
		UPDATE users SET gold = gold - $2, updated_at = NOW()
		WHERE user_id = $1 AND gold >= $2
		RETURNING gold`

	queryCredit = `
		UPDATE users SET gold = gold + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING gold`

	queryUserExists = `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`
)

// LedgerRepository stores gold balances in the users table.
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetBalance returns the user's gold.
func (r *LedgerRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var gold int64
	err = r.db.QueryRow(ctx, queryGetBalance, id).Scan(&gold)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf(ErrMsgGetBalanceFailed, userID, domain.ErrUserNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetBalanceFailed, userID, classify(err, nil))
	}
	return gold, nil
}

// Debit subtracts amount only if the balance covers it. When no row is
// updated a follow-up probe tells a missing user apart from a short balance.
func (r *LedgerRepository) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var gold int64
	err = r.db.QueryRow(ctx, queryDebit, id, amount).Scan(&gold)
	if errors.Is(err, pgx.ErrNoRows) {
		exists, probeErr := r.userExists(ctx, id)
		if probeErr != nil {
			return 0, fmt.Errorf(ErrMsgCheckUserFailed, userID, classify(probeErr, nil))
		}
		if !exists {
			return 0, fmt.Errorf(ErrMsgDebitFailed, userID, domain.ErrUserNotFound)
		}
		return 0, fmt.Errorf(ErrMsgDebitFailed, userID, domain.ErrInsufficientFunds)
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgDebitFailed, userID, classify(err, domain.ErrInsufficientFunds))
	}
	return gold, nil
}

// Credit adds amount to the balance.
func (r *LedgerRepository) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var gold int64
	err = r.db.QueryRow(ctx, queryCredit, id, amount).Scan(&gold)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf(ErrMsgCreditFailed, userID, domain.ErrUserNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCreditFailed, userID, classify(err, nil))
	}
	return gold, nil
}

func (r *LedgerRepository) userExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, queryUserExists, id).Scan(&exists)
	return exists, err
}
