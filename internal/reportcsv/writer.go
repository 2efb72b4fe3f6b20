// Package reportcsv implements the three CSV report streams of
// spec.md section 6: copy_trades.csv, reversal_trades.csv, and
// partial_copy_trades.csv. One row is emitted per (parent, child) pair.
package reportcsv

import (
	"encoding/csv"
	"fmt"
	"io"

	"copytrace/internal/domain"
	"copytrace/internal/symbols"
)

// Writer emits one batch's (parent, child) pairs as CSV rows. It
// implements matching.Sink.
type Writer struct {
	csv         *csv.Writer
	dict        symbols.Dictionary
	mode        domain.Mode
	wroteHeader bool
}

// New creates a Writer over dst, resolving symbol ids through dict.
// mode controls whether a violation column is written (spec.md
// section 6: "in Mode B a boolean violation column").
func New(dst io.Writer, dict symbols.Dictionary, mode domain.Mode) *Writer {
	return &Writer{csv: csv.NewWriter(dst), dict: dict, mode: mode}
}

func (w *Writer) header() []string {
	cols := []string{
		"symbol",
		"parent_trade_id", "parent_account_id", "parent_user_id", "parent_open_ts", "parent_lot", "parent_side",
		"child_trade_id", "child_account_id", "child_user_id", "child_open_ts", "child_lot", "child_side",
	}
	if w.mode == domain.ModeB {
		cols = append(cols, "violation")
	}
	return cols
}

// Emit writes every child of batch as one CSV row.
func (w *Writer) Emit(batch *domain.Batch) error {
	if !w.wroteHeader {
		if err := w.csv.Write(w.header()); err != nil {
			return fmt.Errorf("reportcsv: write header: %w", err)
		}
		w.wroteHeader = true
	}

	symbolName := w.dict.Name(batch.Parent.Symbol)
	for _, child := range batch.Children {
		row := []string{
			symbolName,
			fmt.Sprint(batch.Parent.TradeID), fmt.Sprint(batch.Parent.AccountID), fmt.Sprint(batch.Parent.UserID),
			fmt.Sprint(batch.Parent.OpenTS), fmt.Sprint(batch.Parent.Lot), batch.Parent.Side.String(),
			fmt.Sprint(child.Trade.TradeID), fmt.Sprint(child.Trade.AccountID), fmt.Sprint(child.Trade.UserID),
			fmt.Sprint(child.Trade.OpenTS), fmt.Sprint(child.Trade.Lot), child.Trade.Side.String(),
		}
		if w.mode == domain.ModeB {
			row = append(row, fmt.Sprint(child.Violation))
		}
		if err := w.csv.Write(row); err != nil {
			return fmt.Errorf("reportcsv: write row: %w", err)
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Sinks builds the three per-kind CSV writers required by spec.md
// section 6, keyed by domain.Kind.
func Sinks(copyDst, reversalDst, partialDst io.Writer, dict symbols.Dictionary, mode domain.Mode) [3]*Writer {
	return [3]*Writer{
		domain.Copy:        New(copyDst, dict, mode),
		domain.Reversal:    New(reversalDst, dict, mode),
		domain.PartialCopy: New(partialDst, dict, mode),
	}
}
