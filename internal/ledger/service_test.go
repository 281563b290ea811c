package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishShop/internal/domain"
)

const testUserID = "0b8e4a52-1f53-4c8e-9d8e-2a0f3c7d9b61"

// MockRepository implements repository.Ledger for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func TestDebit(t *testing.T) {
	t.Run("success returns new balance", func(t *testing.T) {
		// ARRANGE
		repo := new(MockRepository)
		repo.On("Debit", mock.Anything, testUserID, int64(50)).Return(int64(50), nil)
		svc := NewService(repo)

		// ACT
		gold, err := svc.Debit(context.Background(), testUserID, 50)

		// ASSERT
		require.NoError(t, err)
		assert.Equal(t, int64(50), gold)
		repo.AssertExpectations(t)
	})

	t.Run("insufficient funds propagates", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Debit", mock.Anything, testUserID, int64(50)).Return(int64(0), domain.ErrInsufficientFunds)
		svc := NewService(repo)

		_, err := svc.Debit(context.Background(), testUserID, 50)

		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("non-positive amount never reaches storage", func(t *testing.T) {
		for _, amount := range []int64{0, -10} {
			repo := new(MockRepository)
			svc := NewService(repo)

			_, err := svc.Debit(context.Background(), testUserID, amount)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			repo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("malformed user id", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Debit(context.Background(), "user-123", 10)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCredit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Credit", mock.Anything, testUserID, int64(50)).Return(int64(70), nil)
		svc := NewService(repo)

		gold, err := svc.Credit(context.Background(), testUserID, 50)

		require.NoError(t, err)
		assert.Equal(t, int64(70), gold)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Credit", mock.Anything, testUserID, int64(5)).
			Return(int64(0), errors.Join(domain.ErrUnavailable, errors.New("conn refused")))
		svc := NewService(repo)

		_, err := svc.Credit(context.Background(), testUserID, 5)

		assert.ErrorIs(t, err, domain.ErrUnavailable)
		assert.Contains(t, err.Error(), "failed to credit 5 gold")
	})

	t.Run("zero amount", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.Credit(context.Background(), testUserID, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGetBalance(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetBalance", mock.Anything, testUserID).Return(int64(0), domain.ErrUserNotFound)
	svc := NewService(repo)

	_, err := svc.GetBalance(context.Background(), testUserID)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
