package quota

import (
	"time"

	"github.com/mwhitlock/wanderguide/internal/model"
)

// FreeDailyLimit is the number of guide queries a signed-in user without a
// pass may make per UTC calendar day.
const FreeDailyLimit = 5

// ReasonDailyLimit is the machine-readable denial reason.
const ReasonDailyLimit = "DAILY_LIMIT_REACHED"

// Result is the outcome of evaluating one request against an entitlement.
// Updated is the state the caller should persist: on an allowed request the
// counters are advanced; on a denied request it is the rolled-over snapshot,
// unchanged otherwise.
type Result struct {
	Allowed bool
	Updated model.Entitlement
	Reason  string
}

// PassActive reports whether the entitlement carries an unexpired pass.
// The stored HasActivePass flag can go stale after expiry, so validity is
// always derived from PassExpiresAt.
func PassActive(ent model.Entitlement, now time.Time) bool {
	return ent.PassExpiresAt != nil && ent.PassExpiresAt.After(now)
}

// DateOf formats an instant as the UTC calendar date used in LastQueryDate.
func DateOf(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// Evaluate decides whether a request is permitted and computes the next
// counter state. It is pure: the caller owns persisting Result.Updated.
func Evaluate(ent model.Entitlement, now time.Time) Result {
	today := DateOf(now)

	// Lazy day rollover: a counter from a previous date counts as zero.
	queriesToday := ent.QueriesToday
	if ent.LastQueryDate != today {
		queriesToday = 0
	}

	allowed := ent.IsPremium || PassActive(ent, now) || queriesToday < FreeDailyLimit

	updated := ent
	updated.QueriesToday = queriesToday
	updated.HasActivePass = PassActive(ent, now)

	if !allowed {
		return Result{Allowed: false, Updated: updated, Reason: ReasonDailyLimit}
	}

	updated.QueriesToday = queriesToday + 1
	updated.LastQueryDate = today
	updated.TotalQueries = ent.TotalQueries + 1
	return Result{Allowed: true, Updated: updated}
}

// Unlimited is the Remaining value for premium users and active pass
// holders. Every surface that reports a query count (the guide response,
// the usage snapshot) uses this same sentinel.
const Unlimited = -1

// Remaining returns how many free queries are left today, or Unlimited for
// premium users and active pass holders.
func Remaining(ent model.Entitlement, now time.Time) int {
	if ent.IsPremium || PassActive(ent, now) {
		return Unlimited
	}
	used := ent.QueriesToday
	if ent.LastQueryDate != DateOf(now) {
		used = 0
	}
	if used >= FreeDailyLimit {
		return 0
	}
	return FreeDailyLimit - used
}
