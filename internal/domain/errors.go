package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Tests match on these with assert.ErrorIs or assert.Contains.
const (
	ErrMsgUserNotFound       = "user not found"
	ErrMsgItemNotFound       = "item not found"
	ErrMsgInsufficientFunds  = "insufficient funds"
	ErrMsgNothingOwned       = "nothing owned"
	ErrMsgUnavailable        = "service unavailable"
	ErrMsgTransactionFailed  = "transaction failed"
	ErrMsgInvalidInput       = "invalid input"
	ErrMsgItemUnpriced       = "item has no shop price"
	ErrMsgInvalidItemVariant = "unknown item variant"
)

// Shop errors. Business refusals (insufficient funds, nothing owned, item not
// found) are expected outcomes; Unavailable and TransactionFailed are
// infrastructure failures.
//
// Wrap with fmt.Errorf("...: %w", domain.ErrXxx) to add context.
var (
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrNothingOwned      = errors.New(ErrMsgNothingOwned)
	ErrUnavailable       = errors.New(ErrMsgUnavailable)
	ErrTransactionFailed = errors.New(ErrMsgTransactionFailed)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
)
