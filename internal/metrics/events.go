package metrics

import (
	"context"

	"github.com/osse101/BrandishShop/internal/event"
	"github.com/osse101/BrandishShop/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all shop events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{event.ItemBought, event.ItemSold, event.SagaCompensated} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates metrics for one event. It never fails so a metrics
// problem cannot push an event into the retry path.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ItemBought, event.ItemSold:
		payload, err := event.DecodePayload[event.TradePayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		if evt.Type == event.ItemBought {
			ItemsBought.WithLabelValues(payload.ItemName).Inc()
			GoldVolume.WithLabelValues(DirectionSpent).Add(float64(payload.Cost))
		} else {
			ItemsSold.WithLabelValues(payload.ItemName).Inc()
			GoldVolume.WithLabelValues(DirectionEarned).Add(float64(payload.Cost))
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
