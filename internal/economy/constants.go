package economy

import "time"

// DefaultCompensationTimeout bounds a compensating action when the service
// is configured without one
const DefaultCompensationTimeout = 5 * time.Second

// Operation names, also used as metric and journal labels
const (
	OperationBuy  = "buy"
	OperationSell = "sell"
)

// ==================== Error Messages ====================

const (
	ErrMsgInvalidUserIDFmt = "user id %q is not a uuid: %w"
	ErrMsgInvalidCostFmt   = "cost %d must be positive: %w"
	ErrMsgLookupFailedFmt  = "failed to look up item %s: %w"
	ErrMsgPriceFailedFmt   = "failed to price item %s: %w"
	ErrMsgDebitFailedFmt   = "failed to debit %d gold for %s: %w"
	ErrMsgDecrementFmt     = "failed to take %s from inventory: %w"
	ErrMsgSagaFailedFmt    = "%s saga failed at %s: %w (cause: %v)"
	ErrMsgShuttingDown     = "economy service is shutting down"
	ErrMsgShutdownTimedOut = "shutdown timed out: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgBuyCalled           = "Buy called"
	LogMsgSellCalled          = "Sell called"
	LogMsgItemPurchased       = "Item purchased"
	LogMsgItemSold            = "Item sold"
	LogMsgSagaTransition      = "Saga state transition"
	LogMsgSagaIllegalState    = "Saga illegal state transition"
	LogMsgStepRefused         = "Saga step refused"
	LogMsgStepFailed          = "Saga step failed"
	LogMsgCompensated         = "Saga compensated"
	LogMsgCompensationFailed  = "Saga compensation failed, manual reconciliation required"
	LogMsgJournalWriteFailed  = "Failed to write reconciliation entry"
	LogMsgEventPublishFailed  = "Failed to publish event"
	LogMsgEconomyShuttingDown = "Economy service shutting down, waiting for in-flight sagas..."
	LogMsgEconomyShutdownDone = "Economy service shutdown complete"
)

// Correction templates written to the reconciliation journal
const (
	CorrectionCreditFmt  = "credit %d gold to user %s"
	CorrectionRestoreFmt = "restore 1 %q to user %s"
)
