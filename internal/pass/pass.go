package pass

import (
	"fmt"
	"time"

	"github.com/mwhitlock/wanderguide/internal/model"
)

// Kind identifies a purchasable time-boxed pass.
type Kind string

const (
	KindDay     Kind = "day_pass"
	KindWeekend Kind = "weekend_pass"
	KindWeek    Kind = "week_pass"
)

type info struct {
	days        int
	pricePence  int64
	name        string
	description string
}

// Pricing in pence (GBP).
var kinds = map[Kind]info{
	KindDay: {
		days:        1,
		pricePence:  299,
		name:        "24-Hour Pass",
		description: "Unlimited tour guide queries for 24 hours",
	},
	KindWeekend: {
		days:        3,
		pricePence:  499,
		name:        "3-Day Weekend Pass",
		description: "Unlimited tour guide queries for 3 days - perfect for a weekend getaway",
	},
	KindWeek: {
		days:        7,
		pricePence:  799,
		name:        "7-Day Week Pass",
		description: "Unlimited tour guide queries for a full week of exploring",
	},
}

// Parse validates a pass type string from a checkout request or webhook
// metadata. It accepts the short aliases used by the client ("day",
// "weekend", "week") as well as the canonical kinds.
func Parse(s string) (Kind, error) {
	switch s {
	case "day", string(KindDay):
		return KindDay, nil
	case "weekend", string(KindWeekend):
		return KindWeekend, nil
	case "week", string(KindWeek):
		return KindWeek, nil
	}
	return "", fmt.Errorf("unknown pass type %q", s)
}

// Duration returns the pass length.
func (k Kind) Duration() time.Duration {
	return time.Duration(kinds[k].days) * 24 * time.Hour
}

// Days returns the pass length in days.
func (k Kind) Days() int { return kinds[k].days }

// PricePence returns the one-time price in pence.
func (k Kind) PricePence() int64 { return kinds[k].pricePence }

// Name returns the display name shown on the Stripe checkout page.
func (k Kind) Name() string { return kinds[k].name }

// Description returns the checkout line-item description.
func (k Kind) Description() string { return kinds[k].description }

// Apply grants the pass to an entitlement. A purchase while an earlier pass
// is still running overwrites the expiry rather than extending it.
func Apply(ent model.Entitlement, kind Kind, grantedAt time.Time) model.Entitlement {
	expires := grantedAt.Add(kind.Duration())
	ent.HasActivePass = true
	ent.PassExpiresAt = &expires
	return ent
}
