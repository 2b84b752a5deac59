package model

import "time"

// Purchase is the append-only audit record of a completed checkout.
// StripeSessionID doubles as the idempotency key: a webhook delivered
// twice inserts at most one row.
type Purchase struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	PassType        string    `json:"pass_type"`
	AmountPence     int64     `json:"amount_pence"`
	StripeSessionID string    `json:"stripe_session_id"`
	CreatedAt       time.Time `json:"created_at"`
}
