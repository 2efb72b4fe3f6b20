package ingest

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"copytrace/internal/domain"
)

func recordBytes(t *testing.T, openTS int64) []byte {
	t.Helper()
	return encodeRecord(t, openTS, openTS, 100, 500, 1, 1, 1, 1, 42)
}

func TestReader_ReadsAllRecordsInOrder(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(recordBytes(t, 0))
	buf.Write(recordBytes(t, 100))
	buf.Write(recordBytes(t, 200))

	r := NewReader(&buf)
	var got []int64
	err := r.Each(func(trade domain.Trade) error {
		got = append(got, trade.OpenTS)
		return nil
	})
	if err != nil {
		t.Fatalf("Each() error = %v", err)
	}
	want := []int64{0, 100, 200}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestReader_DetectsTruncation(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(recordBytes(t, 0))
	buf.Write([]byte{1, 2, 3}) // trailing partial record

	r := NewReader(&buf)
	_, err := r.Next()
	if err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	_, err = r.Next()
	if !errors.Is(err, ErrTruncatedRecord) {
		t.Fatalf("second Next() error = %v, want ErrTruncatedRecord", err)
	}
}

func TestReader_DetectsOrderViolation(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(recordBytes(t, 100))
	buf.Write(recordBytes(t, 50))

	r := NewReader(&buf)
	if _, err := r.Next(); err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	_, err := r.Next()
	if !errors.Is(err, ErrOrderViolation) {
		t.Fatalf("second Next() error = %v, want ErrOrderViolation", err)
	}
}

func TestReader_EmptyStreamIsEOF(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.Next()
	if err != io.EOF {
		t.Fatalf("Next() error = %v, want io.EOF", err)
	}
}

func TestReader_EqualConsecutiveTimestampsAllowed(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(recordBytes(t, 100))
	buf.Write(recordBytes(t, 100))

	r := NewReader(&buf)
	if _, err := r.Next(); err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	if _, err := r.Next(); err != nil {
		t.Fatalf("second Next() error = %v, want nil (non-decreasing allows ties)", err)
	}
}
