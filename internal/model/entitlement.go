package model

import "time"

// Entitlement tracks a user's free-query usage and paid-pass state.
// QueriesToday is only meaningful while LastQueryDate equals the current
// UTC date; on any other date it counts as zero (lazy rollover, no
// background reset job). HasActivePass is a stored hint only; pass
// validity is always recomputed from PassExpiresAt.
type Entitlement struct {
	UserID        int64      `json:"user_id"`
	QueriesToday  int        `json:"queries_today"`
	LastQueryDate string     `json:"last_query_date"` // UTC, YYYY-MM-DD
	TotalQueries  int64      `json:"total_queries"`
	HasActivePass bool       `json:"has_active_pass"`
	PassExpiresAt *time.Time `json:"pass_expires_at"`
	IsPremium     bool       `json:"is_premium"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
