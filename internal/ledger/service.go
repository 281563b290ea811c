// Package ledger owns user gold balances. Balances never go negative:
// debits are conditional and refused with domain.ErrInsufficientFunds.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/logger"
	"github.com/osse101/BrandishShop/internal/repository"
)

// Service defines the interface for gold balance operations
type Service interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	Debit(ctx context.Context, userID string, amount int64) (int64, error)
	Credit(ctx context.Context, userID string, amount int64) (int64, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

func (s *service) GetBalance(ctx context.Context, userID string) (int64, error) {
	if err := validateUserID(userID); err != nil {
		return 0, err
	}

	gold, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetBalanceFmt, err)
	}
	return gold, nil
}

// Debit persists balance -= amount before returning, or refuses without
// changing anything.
func (s *service) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	if err := validate(userID, amount); err != nil {
		return 0, err
	}
	log := logger.FromContext(ctx)

	gold, err := s.repo.Debit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			log.Info(LogMsgRefused, "user_id", userID, "amount", amount)
		}
		return 0, fmt.Errorf(ErrMsgDebitFmt, amount, err)
	}

	log.Debug(LogMsgDebited, "user_id", userID, "amount", amount, "gold", gold)
	return gold, nil
}

func (s *service) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	if err := validate(userID, amount); err != nil {
		return 0, err
	}

	gold, err := s.repo.Credit(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCreditFmt, amount, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCredited, "user_id", userID, "amount", amount, "gold", gold)
	return gold, nil
}

func validate(userID string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf(ErrMsgInvalidAmountFmt, amount, domain.ErrInvalidInput)
	}
	return validateUserID(userID)
}

func validateUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf(ErrMsgInvalidUserIDFmt, userID, domain.ErrInvalidInput)
	}
	return nil
}
