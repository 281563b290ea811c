package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Shop Metrics
var (
	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelItem},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	GoldVolume = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoldVolume,
			Help: HelpTextGoldVolume,
		},
		[]string{LabelDirection},
	)

	SagaOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSagaOutcomes,
			Help: HelpTextSagaOutcomes,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	// SagaCompensations counts compensating actions. outcome is recovered
	// when the compensation applied and failed when the user is left
	// inconsistent and a reconciliation entry was written.
	SagaCompensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSagaCompensations,
			Help: HelpTextSagaCompensations,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	CatalogLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogLookups,
			Help: HelpTextCatalogLookups,
		},
		[]string{LabelResult},
	)
)
