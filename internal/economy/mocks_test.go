package economy

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/event"
	"github.com/osse101/BrandishShop/internal/reconcile"
)

// MockLedger implements Ledger for testing
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockInventory implements Inventory for testing
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) Increment(ctx context.Context, userID, itemName string) (int, error) {
	args := m.Called(ctx, userID, itemName)
	return args.Int(0), args.Error(1)
}

func (m *MockInventory) Decrement(ctx context.Context, userID, itemName string) (int, error) {
	args := m.Called(ctx, userID, itemName)
	return args.Int(0), args.Error(1)
}

// MockCatalog implements Catalog for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Lookup(ctx context.Context, index string) (domain.Item, error) {
	args := m.Called(ctx, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Item), args.Error(1)
}

// MockJournal implements Journal for testing
type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Record(ctx context.Context, entry reconcile.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// recordingBus captures published events
type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (b *recordingBus) Publish(ctx context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return b.err
}

func (b *recordingBus) Subscribe(event.Type, event.Handler) {}

func (b *recordingBus) Types() []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]event.Type, 0, len(b.events))
	for _, e := range b.events {
		types = append(types, e.Type)
	}
	return types
}

// memoryStore is an in-memory Ledger and Inventory with the same
// conditional semantics as the SQL: a debit never takes gold below zero and
// a decrement never takes owned below zero.
type memoryStore struct {
	mu    sync.Mutex
	gold  map[string]int64
	owned map[string]map[string]int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{gold: map[string]int64{}, owned: map[string]map[string]int{}}
}

func (s *memoryStore) addUser(userID string, gold int64, holdings map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gold[userID] = gold
	s.owned[userID] = map[string]int{}
	for item, n := range holdings {
		s.owned[userID][item] = n
	}
}

func (s *memoryStore) Debit(ctx context.Context, userID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gold, ok := s.gold[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if gold < amount {
		return 0, domain.ErrInsufficientFunds
	}
	s.gold[userID] = gold - amount
	return s.gold[userID], nil
}

func (s *memoryStore) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gold[userID]; !ok {
		return 0, domain.ErrUserNotFound
	}
	s.gold[userID] += amount
	return s.gold[userID], nil
}

func (s *memoryStore) Increment(ctx context.Context, userID, itemName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.owned[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	items[itemName]++
	return items[itemName], nil
}

func (s *memoryStore) Decrement(ctx context.Context, userID, itemName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.owned[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if items[itemName] <= 0 {
		return 0, domain.ErrNothingOwned
	}
	items[itemName]--
	return items[itemName], nil
}

func (s *memoryStore) balance(userID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gold[userID]
}

func (s *memoryStore) count(userID, itemName string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.owned[userID][itemName]
	return n, ok
}
