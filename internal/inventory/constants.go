package inventory

// MaxItemNameLength bounds item names accepted by the inventory
const MaxItemNameLength = 100

// Error message formats
const (
	ErrMsgItemNameEmpty    = "item name is empty: %w"
	ErrMsgItemNameTooLong  = "item name exceeds %d characters: %w"
	ErrMsgInvalidUserIDFmt = "user id %q is not a uuid: %w"
	ErrMsgIncrementFmt     = "failed to add %s: %w"
	ErrMsgDecrementFmt     = "failed to remove %s: %w"
	ErrMsgGetOwnedFmt      = "failed to count %s: %w"
	ErrMsgListInventoryFmt = "failed to list inventory: %w"
)

// Log messages
const (
	LogMsgIncremented = "Inventory incremented"
	LogMsgDecremented = "Inventory decremented"
)
