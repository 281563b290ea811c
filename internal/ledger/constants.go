package ledger

// Error message formats
const (
	ErrMsgInvalidAmountFmt = "amount %d must be positive: %w"
	ErrMsgInvalidUserIDFmt = "user id %q is not a uuid: %w"
	ErrMsgGetBalanceFmt    = "failed to get balance: %w"
	ErrMsgDebitFmt         = "failed to debit %d gold: %w"
	ErrMsgCreditFmt        = "failed to credit %d gold: %w"
)

// Log messages
const (
	LogMsgDebited  = "Gold debited"
	LogMsgCredited = "Gold credited"
	LogMsgRefused  = "Debit refused"
)
