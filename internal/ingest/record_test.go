package ingest

import (
	"encoding/binary"
	"errors"
	"testing"

	"copytrace/internal/domain"
)

func encodeRecord(t *testing.T, openTS, closeTS int64, durationMS int32, lot int64, side byte, tradeID, symbol, accountID, userID int32) []byte {
	t.Helper()
	buf := make([]byte, RecordSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(openTS))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(closeTS))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(durationMS))
	binary.LittleEndian.PutUint64(buf[20:28], uint64(lot))
	buf[28] = side
	binary.LittleEndian.PutUint32(buf[29:33], uint32(tradeID))
	binary.LittleEndian.PutUint32(buf[33:37], uint32(symbol))
	binary.LittleEndian.PutUint32(buf[37:41], uint32(accountID))
	binary.LittleEndian.PutUint32(buf[41:45], uint32(userID))
	return buf
}

func TestDecodeRecord_RoundTrip(t *testing.T) {
	buf := encodeRecord(t, 1000, 1100, 100, 500, 1, 7, 1, 10, 42)

	trade, err := DecodeRecord(buf)
	if err != nil {
		t.Fatalf("DecodeRecord() error = %v", err)
	}

	want := domain.Trade{
		OpenTS: 1000, CloseTS: 1100, DurationMS: 100, Lot: 500,
		Side: domain.Buy, TradeID: 7, Symbol: 1, AccountID: 10, UserID: 42,
	}
	if trade != want {
		t.Errorf("DecodeRecord() = %+v, want %+v", trade, want)
	}
}

func TestDecodeRecord_WrongLength(t *testing.T) {
	_, err := DecodeRecord(make([]byte, RecordSize-1))
	if err == nil {
		t.Fatal("DecodeRecord() error = nil, want error for short buffer")
	}
}

func TestDecodeRecord_InvalidSide(t *testing.T) {
	buf := encodeRecord(t, 0, 0, 0, 0, 2, 1, 1, 1, 1)
	_, err := DecodeRecord(buf)
	if !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("DecodeRecord() error = %v, want ErrInvalidSide", err)
	}
}

func TestDecodeRecord_NegativeLot(t *testing.T) {
	buf := encodeRecord(t, 0, 0, 0, -1, 1, 1, 1, 1, 1)
	_, err := DecodeRecord(buf)
	if !errors.Is(err, ErrNegativeLot) {
		t.Fatalf("DecodeRecord() error = %v, want ErrNegativeLot", err)
	}
}

func TestDecodeRecord_NegativeSymbol(t *testing.T) {
	buf := encodeRecord(t, 0, 0, 0, 0, 1, 1, -1, 1, 1)
	_, err := DecodeRecord(buf)
	if !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("DecodeRecord() error = %v, want ErrInvalidSymbol", err)
	}
}

func TestDecodeRecord_SymbolAboveCeiling(t *testing.T) {
	buf := encodeRecord(t, 0, 0, 0, 0, 1, 1, maxSymbolID+1, 1, 1)
	_, err := DecodeRecord(buf)
	if !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("DecodeRecord() error = %v, want ErrInvalidSymbol", err)
	}
}
