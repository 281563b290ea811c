package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/BrandishShop/internal/domain"
)

// Type represents the type of an event
type Type string

// Shop event types
const (
	ItemBought      Type = domain.EventTypeItemBought
	ItemSold        Type = domain.EventTypeItemSold
	SagaCompensated Type = domain.EventTypeSagaCompensated
)

// Event represents a generic event in the system
type Event struct {
	Version   string      `json:"version"`
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// TradePayloadV1 describes a committed buy or sell
type TradePayloadV1 struct {
	UserID   string `json:"user_id"`
	ItemName string `json:"item_name"`
	Cost     int64  `json:"cost"`
	Gold     int64  `json:"gold"`
	Owned    int    `json:"owned"`
}

// SagaCompensatedPayloadV1 describes a saga whose second step failed
type SagaCompensatedPayloadV1 struct {
	Operation  string `json:"operation"`
	UserID     string `json:"user_id"`
	ItemName   string `json:"item_name"`
	Cost       int64  `json:"cost"`
	FailedStep string `json:"failed_step"`
	Recovered  bool   `json:"recovered"`
}

// NewTradeEvent creates an item.bought or item.sold event from a receipt
func NewTradeEvent(eventType Type, userID string, receipt domain.Receipt) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: TradePayloadV1{
			UserID:   userID,
			ItemName: receipt.ItemName,
			Cost:     receipt.Cost,
			Gold:     receipt.Gold,
			Owned:    receipt.Owned,
		},
		Timestamp: time.Now().Unix(),
	}
}

// NewSagaCompensatedEvent creates a saga.compensated event
func NewSagaCompensatedEvent(payload SagaCompensatedPayloadV1) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      SagaCompensated,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus.
// Handlers run synchronously in subscription order.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Every handler runs even
// when an earlier one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(ErrMsgHandlerErrorFormat, len(errs), event.Type, errors.Join(errs...))
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
