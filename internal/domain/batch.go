package domain

// Kind identifies which similarity pattern a window index and its
// batches are tracking. Encoded as a tagged variant rather than a
// class hierarchy: the three kinds share one Batch shape and differ
// only in which predicate function is applied (see internal/matching).
type Kind uint8

const (
	Copy Kind = iota
	Reversal
	PartialCopy
)

func (k Kind) String() string {
	switch k {
	case Copy:
		return "copy"
	case Reversal:
		return "reversal"
	case PartialCopy:
		return "partial_copy"
	default:
		return "unknown"
	}
}

// Kinds lists the three pattern kinds in the fixed order the
// classifier evaluates them: COPY, REVERSAL, PARTIAL_COPY.
var Kinds = [3]Kind{Copy, Reversal, PartialCopy}

// Child is one trade attached to a parent batch, tagged with whether
// the attachment is a same-user violation (meaningful only in Mode B;
// always false in Mode A, where same-user pairs are never attached).
type Child struct {
	Trade     Trade
	Violation bool
}

// Batch is a parent trade plus the children matched against it under
// one pattern kind. The owning window index holds the only reference
// to a Batch; ownership passes to the report sink on eviction.
type Batch struct {
	Parent   Trade
	Kind     Kind
	Children []Child
}
