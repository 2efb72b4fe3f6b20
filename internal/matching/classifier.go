// Package matching implements the streaming classifier: the
// per-(symbol, kind) sliding-window indices, the attachment
// predicates, the mode policy, and the driver that ties them
// together (spec.md sections 3-5).
package matching

import (
	"fmt"
	"math"

	"copytrace/internal/domain"
)

// Window is the fixed 5-minute match/eviction window (spec.md section 3).
const Window int64 = 5 * 60 * 1000

// Sink receives finalized, non-empty batches as the classifier evicts
// them. Implementations must not retain trade values beyond the call
// if they intend to mutate them; the classifier never reuses a Batch
// once it is handed to Emit.
type Sink interface {
	Emit(batch *domain.Batch) error
}

// symbolIndices holds the three per-kind window indices for one symbol.
type symbolIndices struct {
	byKind [3]*Index
}

func newSymbolIndices() *symbolIndices {
	si := &symbolIndices{}
	for i, k := range domain.Kinds {
		si.byKind[i] = NewIndex(k)
	}
	return si
}

// Classifier is the streaming driver of spec.md section 4.3: for
// every pre-filtered trade, in fixed kind order COPY, REVERSAL,
// PARTIAL_COPY, it advances that symbol's window index and either
// attaches the trade to an existing batch or opens a new one.
//
// Process must be called with trades in non-decreasing OpenTS order;
// callers are expected to enforce this upstream (internal/ingest
// does, for the binary record stream) rather than have Classifier
// re-validate a precondition its caller already guarantees.
type Classifier struct {
	policy   ModePolicy
	window   int64
	sinks    [3]Sink
	bySymbol []*symbolIndices
}

// New creates a classifier for the given mode policy and sinks, one
// sink per pattern kind indexed by domain.Kind.
func New(policy ModePolicy, sinks [3]Sink) *Classifier {
	return &Classifier{policy: policy, window: Window, sinks: sinks}
}

func (c *Classifier) indicesFor(symbol int32) *symbolIndices {
	for int32(len(c.bySymbol)) <= symbol {
		c.bySymbol = append(c.bySymbol, nil)
	}
	if c.bySymbol[symbol] == nil {
		c.bySymbol[symbol] = newSymbolIndices()
	}
	return c.bySymbol[symbol]
}

// Process classifies one trade against all three pattern kinds.
func (c *Classifier) Process(trade domain.Trade) error {
	si := c.indicesFor(trade.Symbol)
	for i, k := range domain.Kinds {
		idx := si.byKind[i]
		if err := c.advanceAndAttach(idx, k, trade); err != nil {
			return fmt.Errorf("classify symbol=%d kind=%s trade_id=%d: %w", trade.Symbol, k, trade.TradeID, err)
		}
	}
	return nil
}

func (c *Classifier) advanceAndAttach(idx *Index, kind domain.Kind, trade domain.Trade) error {
	var emitErr error
	idx.Advance(trade.OpenTS, c.window, func(b *domain.Batch) {
		if emitErr != nil || len(b.Children) == 0 {
			return
		}
		emitErr = c.sinks[kind].Emit(b)
	})
	if emitErr != nil {
		return emitErr
	}
	if !idx.TryAttach(trade, c.policy, PredicateFor(kind)) {
		idx.Open(trade)
	}
	return nil
}

// Finish drains every remaining batch in every (symbol, kind) index,
// in parent-open-time order within each index, handing non-empty
// batches to their sink. Call once after the last trade.
func (c *Classifier) Finish() error {
	for _, si := range c.bySymbol {
		if si == nil {
			continue
		}
		for i, k := range domain.Kinds {
			idx := si.byKind[i]
			var emitErr error
			idx.Advance(math.MaxInt64, c.window, func(b *domain.Batch) {
				if emitErr != nil || len(b.Children) == 0 {
					return
				}
				emitErr = c.sinks[k].Emit(b)
			})
			if emitErr != nil {
				return fmt.Errorf("finish kind=%s: %w", k, emitErr)
			}
		}
	}
	return nil
}
