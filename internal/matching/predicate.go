package matching

import (
	"math/bits"

	"copytrace/internal/domain"
)

// Predicate decides whether child is a valid attachment to parent
// under one pattern kind, given the two trades already share a
// symbol and have already passed the window, account, and mode
// checks (spec.md section 4.2).
type Predicate func(parent, child domain.Trade) bool

// PredicateFor returns the attachment predicate for a pattern kind.
func PredicateFor(kind domain.Kind) Predicate {
	switch kind {
	case domain.Copy:
		return copyPredicate
	case domain.Reversal:
		return reversalPredicate
	case domain.PartialCopy:
		return partialCopyPredicate
	default:
		panic("matching: unknown kind")
	}
}

func copyPredicate(parent, child domain.Trade) bool {
	return child.Side == parent.Side
}

func reversalPredicate(parent, child domain.Trade) bool {
	return child.Side != parent.Side
}

// partialCopyPredicate accepts same-side trades whose lot is within
// 30% of the parent's but not exactly equal (an exact match is
// already a COPY; see spec.md section 4.2 and the Open Question in
// section 9 about excluding equality, resolved in favor of exclusion
// to avoid double-reporting).
func partialCopyPredicate(parent, child domain.Trade) bool {
	if child.Side != parent.Side {
		return false
	}
	if child.Lot == parent.Lot {
		return false
	}
	return volumeInPartialRange(parent.Lot, child.Lot)
}

// volumeInPartialRange tests 0.70*parentLot <= childLot <= 1.30*parentLot
// using the integer form 70*parentLot <= 100*childLot <= 130*parentLot.
// Lots are non-negative by contract; the multiplications are widened
// to 128 bits via math/bits so that 130*lot cannot silently overflow
// int64, per the arithmetic note in spec.md section 7.
func volumeInPartialRange(parentLot, childLot int64) bool {
	p70Hi, p70Lo := bits.Mul64(uint64(parentLot), 70)
	c100Hi, c100Lo := bits.Mul64(uint64(childLot), 100)
	if less128(c100Hi, c100Lo, p70Hi, p70Lo) {
		return false // 100*child < 70*parent
	}

	p130Hi, p130Lo := bits.Mul64(uint64(parentLot), 130)
	if less128(p130Hi, p130Lo, c100Hi, c100Lo) {
		return false // 130*parent < 100*child
	}
	return true
}

// less128 reports whether (aHi,aLo) < (bHi,bLo) as 128-bit unsigned integers.
func less128(aHi, aLo, bHi, bLo uint64) bool {
	if aHi != bHi {
		return aHi < bHi
	}
	return aLo < bLo
}
