package handler

// Client-facing messages. They never carry internal error details; tests
// reference these constants directly.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgTransactionFailed  = "The trade could not be completed. No gold or items were lost."
	ErrMsgUnavailableError   = "The shop is temporarily unavailable. Please try again later."

	ErrMsgUserNotFoundError  = "User not found"
	ErrMsgItemNotFoundError  = "Item not found"
	ErrMsgNotEnoughGoldError = "Not enough gold"
	ErrMsgNothingOwnedError  = "You don't own that item"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."

	ErrMsgBuyFailed          = "Failed to buy item"
	ErrMsgSellFailed         = "Failed to sell item"
	ErrMsgGetGoldFailed      = "Failed to get gold"
	ErrMsgGetInventoryFailed = "Failed to get inventory"
)

// Success messages
const (
	MsgItemBoughtFmt = "Bought %s for %d gold"
	MsgItemSoldFmt   = "Sold %s for %d gold"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgValidationFailed  = "Request validation failed"
	LogMsgMissingQueryParam = "Missing query parameter"
	LogMsgServiceRefused    = "Request refused"
	LogMsgServiceFailed     = "Request failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
)
