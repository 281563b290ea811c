package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishShop/internal/domain"
)

// MockEconomyService implements economy.Service for testing
type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) Buy(ctx context.Context, userID, itemIndex, itemName string) (*domain.Receipt, error) {
	args := m.Called(ctx, userID, itemIndex, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockEconomyService) Sell(ctx context.Context, userID, itemName string, cost int64) (*domain.Receipt, error) {
	args := m.Called(ctx, userID, itemName, cost)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockEconomyService) SellIndexed(ctx context.Context, userID, itemIndex, itemName string) (*domain.Receipt, error) {
	args := m.Called(ctx, userID, itemIndex, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockEconomyService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockGoldReader implements GoldReader for testing
type MockGoldReader struct {
	mock.Mock
}

func (m *MockGoldReader) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockInventoryLister implements InventoryLister for testing
type MockInventoryLister struct {
	mock.Mock
}

func (m *MockInventoryLister) List(ctx context.Context, userID string) ([]domain.InventoryRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryRecord), args.Error(1)
}

// mockPool implements database.Pool for testing
type mockPool struct {
	pingErr error
}

func (p *mockPool) Ping(ctx context.Context) error { return p.pingErr }
func (p *mockPool) Close()                         {}
