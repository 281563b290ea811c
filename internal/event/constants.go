package event

import "time"

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Retry configuration defaults
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// DeadLetterFilePermissions is the file permission mode for dead-letter files
const DeadLetterFilePermissions = 0644

// Log message constants
const (
	LogMsgEventPublishFailed    = "Event publish failed, scheduling retry"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventRetryFailed      = "Event retry failed"
	LogMsgEventDeadLettered     = "Event written to dead letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventDroppedShutdown  = "Publisher shutting down, dead-lettering pending event"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	// Error format for handler errors
	ErrMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %w"
)

// CalculateRetryDelay returns the exponential backoff delay for a retry
// attempt: base, 2*base, 4*base, ...
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
