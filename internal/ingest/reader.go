package ingest

import (
	"bufio"
	"fmt"
	"io"

	"copytrace/internal/domain"
)

// chunkRecords is the minimum number of records read per underlying
// I/O call, per spec.md section 6 ("read in chunks of >=1000 records").
const chunkRecords = 1000

const chunkBytes = chunkRecords * RecordSize

// Reader streams domain.Trade values out of a fixed-width binary
// trade record source, validating record format and open_ts
// monotonicity as it goes. It never buffers more than one chunk.
type Reader struct {
	src    *bufio.Reader
	buf    []byte
	lastTS int64
	haveTS bool
	nRead  int64
}

// NewReader wraps r for chunked, validated trade decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		src: bufio.NewReaderSize(r, chunkBytes),
		buf: make([]byte, RecordSize),
	}
}

// Next decodes and returns the next trade, or io.EOF when the stream
// is exhausted cleanly. A file whose length is not an exact multiple
// of RecordSize yields ErrTruncatedRecord instead of io.EOF.
func (r *Reader) Next() (domain.Trade, error) {
	n, err := io.ReadFull(r.src, r.buf)
	if err == io.EOF {
		return domain.Trade{}, io.EOF
	}
	if err == io.ErrUnexpectedEOF {
		return domain.Trade{}, fmt.Errorf("%w: got %d trailing bytes", ErrTruncatedRecord, n)
	}
	if err != nil {
		return domain.Trade{}, fmt.Errorf("ingest: read record %d: %w", r.nRead, err)
	}

	trade, err := DecodeRecord(r.buf)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("ingest: record %d: %w", r.nRead, err)
	}
	r.nRead++

	if r.haveTS && trade.OpenTS < r.lastTS {
		return domain.Trade{}, fmt.Errorf("%w: record %d has open_ts=%d, previous was %d",
			ErrOrderViolation, r.nRead-1, trade.OpenTS, r.lastTS)
	}
	r.lastTS = trade.OpenTS
	r.haveTS = true

	return trade, nil
}

// Each calls fn for every trade in the stream, in order, stopping and
// returning the first error from either decoding or fn.
func (r *Reader) Each(fn func(domain.Trade) error) error {
	for {
		trade, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(trade); err != nil {
			return err
		}
	}
}
