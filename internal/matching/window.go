package matching

import "copytrace/internal/domain"

// batchNode is one link of the window index's singly-linked queue.
// spec.md section 9 calls out two valid encodings for the source's
// intrusive "next_batch" list — an owned singly-linked list or a
// contiguous deque. A linked list is used here because a Batch's
// Children slice grows in place while the batch sits in the index;
// a contiguous deque would need pointer-stable slots to support that
// safely, which defeats the cache-locality reason to prefer it.
type batchNode struct {
	batch *domain.Batch
	next  *batchNode
}

// Index is the per-(symbol, kind) sliding-window index of spec.md
// section 4.1: an ordered queue of batches, head = oldest parent,
// tail = newest. It provides O(1) push-back (Open), O(1) pop-front
// (the eviction loop in Advance), and an O(size) predicate scan
// (TryAttach).
type Index struct {
	kind       domain.Kind
	head, tail *batchNode
	size       int
}

// NewIndex creates an empty window index for one pattern kind.
func NewIndex(kind domain.Kind) *Index {
	return &Index{kind: kind}
}

// Kind returns the pattern kind this index tracks.
func (idx *Index) Kind() domain.Kind { return idx.kind }

// Len returns the number of batches currently held (for tests).
func (idx *Index) Len() int { return idx.size }

// Advance evicts every batch at the head whose parent has fallen out
// of the window relative to now, handing each evicted batch to emit
// in head-to-tail (oldest-first) order. emit may be nil to discard
// evicted batches without inspecting them.
func (idx *Index) Advance(now, window int64, emit func(*domain.Batch)) {
	for idx.head != nil && now-idx.head.batch.Parent.OpenTS > window {
		evicted := idx.head.batch
		idx.head = idx.head.next
		if idx.head == nil {
			idx.tail = nil
		}
		idx.size--
		if emit != nil {
			emit(evicted)
		}
	}
}

// TryAttach scans batches head to tail and appends trade as a child
// of the first parent that satisfies the mode policy, the ownership
// checks of spec.md invariant 3 (distinct trade id, distinct account
// id), and the kind predicate. Returns true iff an attachment was
// made; the oldest eligible parent wins (spec.md section 4.1).
func (idx *Index) TryAttach(trade domain.Trade, policy ModePolicy, pred Predicate) bool {
	for n := idx.head; n != nil; n = n.next {
		parent := n.batch.Parent
		if parent.TradeID == trade.TradeID || parent.AccountID == trade.AccountID {
			continue
		}
		accept, violation := policy.Evaluate(parent.UserID, trade.UserID)
		if !accept {
			continue
		}
		if !pred(parent, trade) {
			continue
		}
		n.batch.Children = append(n.batch.Children, domain.Child{Trade: trade, Violation: violation})
		return true
	}
	return false
}

// Open appends a new batch with trade as parent at the tail.
func (idx *Index) Open(trade domain.Trade) {
	n := &batchNode{batch: &domain.Batch{Parent: trade, Kind: idx.kind}}
	if idx.tail == nil {
		idx.head = n
	} else {
		idx.tail.next = n
	}
	idx.tail = n
	idx.size++
}
