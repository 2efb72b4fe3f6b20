package reportcsv

import (
	"bytes"
	"strings"
	"testing"

	"copytrace/internal/domain"
	"copytrace/internal/symbols"
)

func testDict(t *testing.T) symbols.Dictionary {
	t.Helper()
	d, err := symbols.Decode(strings.NewReader(`["BTCUSD"]`))
	if err != nil {
		t.Fatalf("symbols.Decode() error = %v", err)
	}
	return d
}

func sampleBatch() *domain.Batch {
	return &domain.Batch{
		Parent: domain.Trade{TradeID: 1, AccountID: 10, UserID: 42, OpenTS: 0, Lot: 500, Side: domain.Buy, Symbol: 0},
		Kind:   domain.Copy,
		Children: []domain.Child{
			{Trade: domain.Trade{TradeID: 2, AccountID: 20, UserID: 57, OpenTS: 1000, Lot: 500, Side: domain.Buy, Symbol: 0}},
		},
	}
}

func TestWriter_EmitWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, testDict(t), domain.ModeA)

	if err := w.Emit(sampleBatch()); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if err := w.Emit(sampleBatch()); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (1 header + 2 rows)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "symbol,") {
		t.Errorf("first line = %q, want header starting with \"symbol,\"", lines[0])
	}
	if strings.Contains(lines[0], "violation") {
		t.Error("Mode A header should not include a violation column")
	}
}

func TestWriter_ModeBIncludesViolationColumn(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, testDict(t), domain.ModeB)

	batch := sampleBatch()
	batch.Children[0].Violation = true
	if err := w.Emit(batch); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "violation") {
		t.Error("Mode B header should include a violation column")
	}
	if !strings.Contains(out, "true") {
		t.Errorf("output should contain a true violation value, got %q", out)
	}
}

func TestWriter_ResolvesSymbolName(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, testDict(t), domain.ModeA)
	w.Emit(sampleBatch())

	if !strings.Contains(buf.String(), "BTCUSD") {
		t.Errorf("output should contain resolved symbol name, got %q", buf.String())
	}
}
