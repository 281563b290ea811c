package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishShop/internal/domain"
)

const testUserID = "7b0c2f8e-3d0a-4b8e-9a51-2f4c1d6e8a90"

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestHandleBuy(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockEconomyService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: BuyRequest{UserID: testUserID, EquipmentName: "Longsword", EquipmentIndex: "longsword", Cost: 50},
			setupMock: func(m *MockEconomyService) {
				m.On("Buy", mock.Anything, testUserID, "longsword", "Longsword").
					Return(&domain.Receipt{ItemName: "Longsword", Cost: 15, Gold: 85, Owned: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Bought Longsword for 15 gold","gold":85,"owned":1}`,
		},
		{
			name:           "Missing index",
			body:           BuyRequest{UserID: testUserID, EquipmentName: "Longsword"},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"equipmentIndex":"This field is required"`,
		},
		{
			name:           "Bad user id",
			body:           BuyRequest{UserID: "alice", EquipmentIndex: "longsword"},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"userId":"Must be a UUID"`,
		},
		{
			name:           "Malformed JSON",
			body:           `{"userId":`,
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Insufficient funds",
			body: BuyRequest{UserID: testUserID, EquipmentIndex: "plate-armor"},
			setupMock: func(m *MockEconomyService) {
				m.On("Buy", mock.Anything, testUserID, "plate-armor", "").
					Return(nil, fmt.Errorf("debit: %w", domain.ErrInsufficientFunds))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughGoldError,
		},
		{
			name: "Unknown user is a bad request",
			body: BuyRequest{UserID: testUserID, EquipmentIndex: "longsword"},
			setupMock: func(m *MockEconomyService) {
				m.On("Buy", mock.Anything, testUserID, "longsword", "").Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name: "Item not found",
			body: BuyRequest{UserID: testUserID, EquipmentIndex: "vorpal-spoon"},
			setupMock: func(m *MockEconomyService) {
				m.On("Buy", mock.Anything, testUserID, "vorpal-spoon", "").Return(nil, domain.ErrItemNotFound)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgItemNotFoundError,
		},
		{
			name: "Catalog unavailable",
			body: BuyRequest{UserID: testUserID, EquipmentIndex: "longsword"},
			setupMock: func(m *MockEconomyService) {
				m.On("Buy", mock.Anything, testUserID, "longsword", "").Return(nil, domain.ErrUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgUnavailableError,
		},
		{
			name: "Transaction failed hides the cause",
			body: BuyRequest{UserID: testUserID, EquipmentIndex: "longsword"},
			setupMock: func(m *MockEconomyService) {
				m.On("Buy", mock.Anything, testUserID, "longsword", "").
					Return(nil, fmt.Errorf("buy saga failed: %w (cause: %v)", domain.ErrTransactionFailed, errors.New("pq: secret table")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgTransactionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// ARRANGE
			svc := &MockEconomyService{}
			tt.setupMock(svc)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/shop/buy", jsonBody(t, tt.body))
			rec := httptest.NewRecorder()

			// ACT
			HandleBuy(svc).ServeHTTP(rec, req)

			// ASSERT
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			assert.NotContains(t, rec.Body.String(), "secret table")
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleSell(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockEconomyService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Sell at client cost",
			body: SellRequest{UserID: testUserID, EquipmentName: "Longsword", Cost: 50},
			setupMock: func(m *MockEconomyService) {
				m.On("Sell", mock.Anything, testUserID, "Longsword", int64(50)).
					Return(&domain.Receipt{ItemName: "Longsword", Cost: 50, Gold: 70, Owned: 0}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Sold Longsword for 50 gold","gold":70,"owned":0}`,
		},
		{
			name: "Sell at catalog price when index given",
			body: SellRequest{UserID: testUserID, EquipmentName: "Longsword", EquipmentIndex: "longsword"},
			setupMock: func(m *MockEconomyService) {
				m.On("SellIndexed", mock.Anything, testUserID, "longsword", "Longsword").
					Return(&domain.Receipt{ItemName: "Longsword", Cost: 15, Gold: 35, Owned: 2}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"gold":35`,
		},
		{
			name:           "Cost required without index",
			body:           SellRequest{UserID: testUserID, EquipmentName: "Longsword"},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"cost"`,
		},
		{
			name:           "Negative cost",
			body:           SellRequest{UserID: testUserID, EquipmentName: "Longsword", Cost: -1},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"cost":"Must be greater than 0"`,
		},
		{
			name:           "Blank name",
			body:           SellRequest{UserID: testUserID, EquipmentName: "   ", Cost: 5},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"equipmentName":"This field is required"`,
		},
		{
			name:           "Name too long",
			body:           SellRequest{UserID: testUserID, EquipmentName: strings.Repeat("x", 101), Cost: 5},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"equipmentName":"Must be at most 100 characters"`,
		},
		{
			name: "Nothing owned",
			body: SellRequest{UserID: testUserID, EquipmentName: "Longsword", Cost: 50},
			setupMock: func(m *MockEconomyService) {
				m.On("Sell", mock.Anything, testUserID, "Longsword", int64(50)).Return(nil, domain.ErrNothingOwned)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNothingOwnedError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockEconomyService{}
			tt.setupMock(svc)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/shop/sell", jsonBody(t, tt.body))
			rec := httptest.NewRecorder()

			HandleSell(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGetGold(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockGoldReader)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "Success",
			query: "?userId=" + testUserID,
			setupMock: func(m *MockGoldReader) {
				m.On("GetBalance", mock.Anything, testUserID).Return(int64(42), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"gold":42}`,
		},
		{
			name:           "Missing userId",
			query:          "",
			setupMock:      func(m *MockGoldReader) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"userId":"This field is required"`,
		},
		{
			name:  "Unknown user",
			query: "?userId=" + testUserID,
			setupMock: func(m *MockGoldReader) {
				m.On("GetBalance", mock.Anything, testUserID).Return(int64(0), fmt.Errorf("get balance: %w", domain.ErrUserNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name:  "Invalid user id",
			query: "?userId=bob",
			setupMock: func(m *MockGoldReader) {
				m.On("GetBalance", mock.Anything, "bob").Return(int64(0), domain.ErrInvalidInput)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidInputError,
		},
		{
			name:  "Storage down",
			query: "?userId=" + testUserID,
			setupMock: func(m *MockGoldReader) {
				m.On("GetBalance", mock.Anything, testUserID).Return(int64(0), domain.ErrUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgUnavailableError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &MockGoldReader{}
			tt.setupMock(ledger)
			rec := httptest.NewRecorder()

			HandleGetGold(ledger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shop/gold"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			ledger.AssertExpectations(t)
		})
	}
}

func TestHandleGetInventory(t *testing.T) {
	t.Run("Lists records including zero counts", func(t *testing.T) {
		// ARRANGE
		inv := &MockInventoryLister{}
		inv.On("List", mock.Anything, testUserID).Return([]domain.InventoryRecord{
			{UserID: testUserID, ItemName: "Arrow", Owned: 20},
			{UserID: testUserID, ItemName: "Longsword", Owned: 0},
		}, nil)
		rec := httptest.NewRecorder()

		// ACT
		HandleGetInventory(inv).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shop/inventory?userId="+testUserID, nil))

		// ASSERT
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[{"itemName":"Arrow","owned":20},{"itemName":"Longsword","owned":0}]}`, rec.Body.String())
	})

	t.Run("Empty inventory is an empty array", func(t *testing.T) {
		inv := &MockInventoryLister{}
		inv.On("List", mock.Anything, testUserID).Return([]domain.InventoryRecord{}, nil)
		rec := httptest.NewRecorder()

		HandleGetInventory(inv).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shop/inventory?userId="+testUserID, nil))

		assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
	})

	t.Run("Unknown user", func(t *testing.T) {
		inv := &MockInventoryLister{}
		inv.On("List", mock.Anything, testUserID).Return(nil, domain.ErrUserNotFound)
		rec := httptest.NewRecorder()

		HandleGetInventory(inv).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shop/inventory?userId="+testUserID, nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{nil, http.StatusInternalServerError},
		{domain.ErrInsufficientFunds, http.StatusBadRequest},
		{domain.ErrNothingOwned, http.StatusBadRequest},
		{domain.ErrItemNotFound, http.StatusBadRequest},
		{domain.ErrUserNotFound, http.StatusBadRequest},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrUnavailable, http.StatusServiceUnavailable},
		{domain.ErrTransactionFailed, http.StatusInternalServerError},
		{errors.New("something odd"), http.StatusInternalServerError},
		{fmt.Errorf("a: %w", fmt.Errorf("b: %w", domain.ErrNothingOwned)), http.StatusBadRequest},
	}
	for _, tt := range tests {
		status, msg := mapServiceErrorToUserMessage(tt.err)
		assert.Equal(t, tt.wantStatus, status, "%v", tt.err)
		assert.NotEmpty(t, msg)
	}
}
