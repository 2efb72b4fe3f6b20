// Package prefilter implements the stateless boundary filter of
// spec.md section 4.5: drop trades whose user is not one of the two
// selected users, and drop dust trades.
package prefilter

import "copytrace/internal/domain"

// dustLotThreshold is 0.01 real lots, scaled by 1e8 (spec.md section 4.5).
const dustLotThreshold = 1_000_000

// dustDurationMS is the inclusive duration bound below which a trade
// may be dust, subject to also being under the lot threshold.
const dustDurationMS = 1000

// Filter holds the two selected user ids a run is scoped to.
type Filter struct {
	UserA, UserB int32
}

// New creates a pre-filter for the given pair of selected users.
func New(userA, userB int32) Filter {
	return Filter{UserA: userA, UserB: userB}
}

// Keep reports whether trade should be forwarded to the classifier.
func (f Filter) Keep(trade domain.Trade) bool {
	if trade.UserID != f.UserA && trade.UserID != f.UserB {
		return false
	}
	if trade.DurationMS <= dustDurationMS && trade.Lot < dustLotThreshold {
		return false
	}
	return true
}
