// Package inventory owns per-user owned-item counts.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/logger"
	"github.com/osse101/BrandishShop/internal/repository"
)

// Service defines the interface for inventory operations
type Service interface {
	Increment(ctx context.Context, userID, itemName string) (int, error)
	Decrement(ctx context.Context, userID, itemName string) (int, error)
	GetOwned(ctx context.Context, userID, itemName string) (int, error)
	List(ctx context.Context, userID string) ([]domain.InventoryRecord, error)
}

type service struct {
	repo repository.Inventory
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

func (s *service) Increment(ctx context.Context, userID, itemName string) (int, error) {
	name, err := normalize(userID, itemName)
	if err != nil {
		return 0, err
	}

	owned, err := s.repo.Increment(ctx, userID, name)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgIncrementFmt, name, err)
	}

	logger.FromContext(ctx).Debug(LogMsgIncremented, "user_id", userID, "item", name, "owned", owned)
	return owned, nil
}

// Decrement fails with domain.ErrNothingOwned when the count is already zero.
func (s *service) Decrement(ctx context.Context, userID, itemName string) (int, error) {
	name, err := normalize(userID, itemName)
	if err != nil {
		return 0, err
	}

	owned, err := s.repo.Decrement(ctx, userID, name)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgDecrementFmt, name, err)
	}

	logger.FromContext(ctx).Debug(LogMsgDecremented, "user_id", userID, "item", name, "owned", owned)
	return owned, nil
}

// GetOwned reports zero for items the user never bought.
func (s *service) GetOwned(ctx context.Context, userID, itemName string) (int, error) {
	name, err := normalize(userID, itemName)
	if err != nil {
		return 0, err
	}

	owned, err := s.repo.GetOwned(ctx, userID, name)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetOwnedFmt, name, err)
	}
	return owned, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.InventoryRecord, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListInventoryFmt, err)
	}
	return records, nil
}

// NormalizeItemName trims the name and checks its length. Records are keyed
// by the normalized form.
func NormalizeItemName(itemName string) (string, error) {
	name := strings.TrimSpace(itemName)
	if name == "" {
		return "", fmt.Errorf(ErrMsgItemNameEmpty, domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > MaxItemNameLength {
		return "", fmt.Errorf(ErrMsgItemNameTooLong, MaxItemNameLength, domain.ErrInvalidInput)
	}
	return name, nil
}

func normalize(userID, itemName string) (string, error) {
	if err := validateUserID(userID); err != nil {
		return "", err
	}
	return NormalizeItemName(itemName)
}

func validateUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf(ErrMsgInvalidUserIDFmt, userID, domain.ErrInvalidInput)
	}
	return nil
}
