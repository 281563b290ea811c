package domain

// Event type constants published on the in-process event bus after a shop
// saga commits. They follow the <entity>.<action> pattern.
const (
	// EventTypeItemBought is published after a committed buy
	EventTypeItemBought = "item.bought"

	// EventTypeItemSold is published after a committed sell
	EventTypeItemSold = "item.sold"

	// EventTypeSagaCompensated is published when a saga failed on its second
	// step; the payload says whether compensation restored state
	EventTypeSagaCompensated = "saga.compensated"
)
