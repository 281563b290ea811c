package domain

import "time"

// User is a shop customer. Gold is never negative and is only changed by
// ledger debits and credits.
type User struct {
	ID        string    `json:"id"`
	Gold      int64     `json:"gold"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
