// Package domain holds the value types shared by the pre-filter, the
// classifier, and the report emitters: a trade record and the batches
// the classifier groups them into.
package domain

import "fmt"

// Side is the direction of a trade.
type Side uint8

const (
	Sell Side = 0
	Buy  Side = 1
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Trade is an immutable record of one opened-and-closed position.
// Field sizes mirror the fixed-width binary record described in
// SPEC_FULL.md / spec.md section 6; decoding lives in internal/ingest.
type Trade struct {
	OpenTS     int64 // ms since epoch
	CloseTS    int64 // ms since epoch, CloseTS >= OpenTS
	DurationMS int32
	Lot        int64 // real lot size * 1e8
	Side       Side
	TradeID    int32
	Symbol     int32
	AccountID  int32
	UserID     int32
}

func (t Trade) String() string {
	return fmt.Sprintf("{trade_id:%d symbol:%d side:%s lot:%d open_ts:%d account:%d user:%d}",
		t.TradeID, t.Symbol, t.Side, t.Lot, t.OpenTS, t.AccountID, t.UserID)
}
