package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/event"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	// ARRANGE
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/users/{userID}/gold", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/users/{userID}/gold", "418")
	before := testutil.ToFloat64(counter)

	// ACT
	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+id+"/gold", nil))
	}

	// ASSERT
	assert.Equal(t, before+3, testutil.ToFloat64(counter))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedRoute, "200")
	before := testutil.ToFloat64(counter)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/whatever", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestEventMetricsCollector(t *testing.T) {
	// ARRANGE
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	bought := ItemsBought.WithLabelValues("Metrics Test Sword")
	sold := ItemsSold.WithLabelValues("Metrics Test Sword")
	spent := GoldVolume.WithLabelValues(DirectionSpent)
	earned := GoldVolume.WithLabelValues(DirectionEarned)
	compensated := EventsPublished.WithLabelValues(string(event.SagaCompensated))
	boughtBefore, soldBefore := testutil.ToFloat64(bought), testutil.ToFloat64(sold)
	spentBefore, earnedBefore := testutil.ToFloat64(spent), testutil.ToFloat64(earned)
	compensatedBefore := testutil.ToFloat64(compensated)
	receipt := domain.Receipt{ItemName: "Metrics Test Sword", Cost: 15, Gold: 85, Owned: 1}
	ctx := context.Background()

	// ACT
	assert.NoError(t, bus.Publish(ctx, event.NewTradeEvent(event.ItemBought, "u1", receipt)))
	assert.NoError(t, bus.Publish(ctx, event.NewTradeEvent(event.ItemSold, "u1", receipt)))
	assert.NoError(t, bus.Publish(ctx, event.NewSagaCompensatedEvent(event.SagaCompensatedPayloadV1{Operation: OperationBuy})))

	// ASSERT
	assert.Equal(t, boughtBefore+1, testutil.ToFloat64(bought))
	assert.Equal(t, soldBefore+1, testutil.ToFloat64(sold))
	assert.Equal(t, spentBefore+15, testutil.ToFloat64(spent))
	assert.Equal(t, earnedBefore+15, testutil.ToFloat64(earned))
	assert.Equal(t, compensatedBefore+1, testutil.ToFloat64(compensated))
}

func TestEventMetricsCollector_BadPayloadIsIgnored(t *testing.T) {
	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.ItemBought,
		Payload: map[string]interface{}{"cost": "not a number"},
	})
	assert.NoError(t, err)
}
