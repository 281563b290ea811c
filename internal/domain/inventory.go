package domain

import "time"

// InventoryRecord tracks how many of one item a user currently holds.
// A record is created by the first purchase and kept after Owned drops to zero.
type InventoryRecord struct {
	UserID    string    `json:"user_id"`
	ItemName  string    `json:"item_name"`
	Owned     int       `json:"owned"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Receipt is the server-authoritative state after a buy or sell.
type Receipt struct {
	ItemName string `json:"item_name"`
	Cost     int64  `json:"cost"`
	Gold     int64  `json:"gold"`
	Owned    int    `json:"owned"`
}
