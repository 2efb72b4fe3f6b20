// Package ingest decodes the fixed-width binary trade record stream
// of spec.md section 6 and enforces its ordering and format contracts
// at the boundary, before any trade reaches the pre-filter.
package ingest

import (
	"encoding/binary"
	"errors"
	"fmt"

	"copytrace/internal/domain"
)

// RecordSize is the on-disk width of one trade record, in bytes:
// open_ts(8) + close_ts(8) + duration_ms(4) + lot(8) + side(1) +
// trade_id(4) + symbol(4) + account_id(4) + user_id(4).
const RecordSize = 8 + 8 + 4 + 8 + 1 + 4 + 4 + 4 + 4

// ErrTruncatedRecord is returned when the input length is not a
// multiple of RecordSize (spec.md section 7, input format error).
var ErrTruncatedRecord = errors.New("ingest: file length is not a multiple of the record size")

// ErrOrderViolation is returned when a record's open_ts is strictly
// less than the previous record's open_ts (spec.md section 7, order
// violation). The stream contract requires non-decreasing open_ts.
var ErrOrderViolation = errors.New("ingest: trade stream is not ordered by open_ts")

// ErrInvalidSide is returned for a side byte other than 0 or 1.
var ErrInvalidSide = errors.New("ingest: invalid side byte")

// ErrNegativeLot is returned when the decoded lot is negative.
var ErrNegativeLot = errors.New("ingest: negative lot")

// ErrInvalidSymbol is returned for a symbol id outside [0, maxSymbolID].
var ErrInvalidSymbol = errors.New("ingest: invalid symbol id")

// maxSymbolID bounds the dense per-symbol index arrays the classifier
// grows on demand (spec.md section 9: "dense array indexed by symbol
// id... sparse maps are unnecessary"). spec.md section 2 expects |S|
// in the 30-200 range; this is a generous ceiling against a corrupt
// or adversarial record forcing an unbounded allocation, not a tight
// fit to the expected range.
const maxSymbolID = 1 << 20

// DecodeRecord parses one RecordSize-byte record into a domain.Trade.
// buf must be exactly RecordSize bytes.
func DecodeRecord(buf []byte) (domain.Trade, error) {
	if len(buf) != RecordSize {
		return domain.Trade{}, fmt.Errorf("ingest: DecodeRecord got %d bytes, want %d", len(buf), RecordSize)
	}

	var t domain.Trade
	t.OpenTS = int64(binary.LittleEndian.Uint64(buf[0:8]))
	t.CloseTS = int64(binary.LittleEndian.Uint64(buf[8:16]))
	t.DurationMS = int32(binary.LittleEndian.Uint32(buf[16:20]))
	t.Lot = int64(binary.LittleEndian.Uint64(buf[20:28]))
	side := buf[28]
	t.TradeID = int32(binary.LittleEndian.Uint32(buf[29:33]))
	t.Symbol = int32(binary.LittleEndian.Uint32(buf[33:37]))
	t.AccountID = int32(binary.LittleEndian.Uint32(buf[37:41]))
	t.UserID = int32(binary.LittleEndian.Uint32(buf[41:45]))

	switch side {
	case 0:
		t.Side = domain.Sell
	case 1:
		t.Side = domain.Buy
	default:
		return domain.Trade{}, fmt.Errorf("%w: trade_id=%d side=%d", ErrInvalidSide, t.TradeID, side)
	}

	if t.Lot < 0 {
		return domain.Trade{}, fmt.Errorf("%w: trade_id=%d lot=%d", ErrNegativeLot, t.TradeID, t.Lot)
	}

	if t.Symbol < 0 || t.Symbol > maxSymbolID {
		return domain.Trade{}, fmt.Errorf("%w: trade_id=%d symbol=%d", ErrInvalidSymbol, t.TradeID, t.Symbol)
	}

	return t, nil
}
