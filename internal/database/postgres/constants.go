package postgres

// PostgreSQL error codes mapped onto domain errors
const (
	pgCodeForeignKeyViolation = "23503"
	pgCodeCheckViolation      = "23514"
)

// Error message formats
const (
	ErrMsgInvalidUserID        = "invalid user id %q: %w"
	ErrMsgDebitFailed          = "failed to debit user %s: %w"
	ErrMsgCreditFailed         = "failed to credit user %s: %w"
	ErrMsgGetBalanceFailed     = "failed to get balance for user %s: %w"
	ErrMsgCheckUserFailed      = "failed to check user %s: %w"
	ErrMsgIncrementFailed      = "failed to increment %s for user %s: %w"
	ErrMsgDecrementFailed      = "failed to decrement %s for user %s: %w"
	ErrMsgGetOwnedFailed       = "failed to get owned count of %s for user %s: %w"
	ErrMsgListInventoryFailed  = "failed to list inventory for user %s: %w"
	ErrMsgScanInventoryFailed  = "failed to scan inventory record: %w"
	ErrMsgCreateUserFailed     = "failed to create user: %w"
	ErrMsgGetUserFailed        = "failed to get user %s: %w"
	ErrMsgBeginTxFailed        = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed       = "failed to commit transaction: %w"
	ErrMsgNegativeStartingGold = "starting gold %d is negative: %w"
)

// Log messages
const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
	LogMsgUserCreated    = "User created"
)
