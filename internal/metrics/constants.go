package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Shop metric names
const (
	MetricNameItemsSold         = "shop_items_sold_total"
	MetricNameItemsBought       = "shop_items_bought_total"
	MetricNameGoldVolume        = "shop_gold_volume_total"
	MetricNameSagaOutcomes      = "shop_saga_outcomes_total"
	MetricNameSagaCompensations = "shop_saga_compensations_total"
	MetricNameCatalogLookups    = "shop_catalog_lookups_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

const (
	HelpTextEventsPublished   = "Total number of events published"
	HelpTextItemsSold         = "Total number of items sold"
	HelpTextItemsBought       = "Total number of items bought"
	HelpTextGoldVolume        = "Total gold moved by committed trades"
	HelpTextSagaOutcomes      = "Buy and sell saga results by operation and outcome"
	HelpTextSagaCompensations = "Compensating actions by operation and outcome"
	HelpTextCatalogLookups    = "Catalog lookups by result"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelItem      = "item"
	LabelDirection = "direction"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
	LabelResult    = "result"
)

// Label values
const (
	DirectionSpent  = "spent"
	DirectionEarned = "earned"

	OperationBuy  = "buy"
	OperationSell = "sell"

	OutcomeCommitted = "committed"
	OutcomeRefused   = "refused"
	OutcomeFailed    = "failed"
	OutcomeRecovered = "recovered"

	CatalogResultHit         = "cache_hit"
	CatalogResultEquipment   = "equipment"
	CatalogResultMagicItem   = "magic_item"
	CatalogResultNotFound    = "not_found"
	CatalogResultUnavailable = "unavailable"

	// UnmatchedRoute labels requests chi could not route, keeping path cardinality bounded
	UnmatchedRoute = "unmatched"
)

// HTTPLatencyBuckets covers 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
