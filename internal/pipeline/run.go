// Package pipeline wires configuration, symbol resolution, ingest,
// the pre-filter, and the classifier into one run, and writes the
// three CSV report streams plus a run summary.
package pipeline

import (
	"fmt"
	"os"
	"time"

	"copytrace/internal/config"
	"copytrace/internal/domain"
	"copytrace/internal/ingest"
	"copytrace/internal/matching"
	"copytrace/internal/obsmetrics"
	"copytrace/internal/prefilter"
	"copytrace/internal/reportcsv"
	"copytrace/internal/symbols"
	"copytrace/pkg/logger"
)

// Summary reports the final counts of a completed run.
type Summary struct {
	TradesRead     int64
	TradesFiltered int64
	Matches        [3]int64 // by domain.Kind
	Violations     int64
	Elapsed        time.Duration
}

// Pipeline orchestrates a single classification run.
type Pipeline struct {
	cfg       *config.Config
	userA     int32
	userB     int32
	log       *logger.Logger
	metrics   *obsmetrics.Recorder
	outputDir string
	clock     func() time.Time
}

// New creates a pipeline for the given configuration and user pair.
func New(cfg *config.Config, userA, userB int32) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		userA:     userA,
		userB:     userB,
		outputDir: ".",
		clock:     time.Now,
	}
}

// WithLogger attaches a structured logger; omit for a silent run.
func (p *Pipeline) WithLogger(l *logger.Logger) *Pipeline {
	p.log = l
	return p
}

// WithMetrics attaches a Prometheus recorder; omit to skip metrics.
func (p *Pipeline) WithMetrics(m *obsmetrics.Recorder) *Pipeline {
	p.metrics = m
	return p
}

// WithOutputDir sets the directory the three CSV reports are written to.
func (p *Pipeline) WithOutputDir(dir string) *Pipeline {
	p.outputDir = dir
	return p
}

// WithClock overrides the pipeline's notion of "now", for deterministic tests.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	p.clock = clock
	return p
}

func (p *Pipeline) logf(msg string, fields ...logger.Field) {
	if p.log != nil {
		p.log.Info(msg, fields...)
	}
}

// Run executes the full ingest -> filter -> classify -> emit pipeline
// and returns the completed run's summary.
func (p *Pipeline) Run() (Summary, error) {
	start := p.clock()

	mode := p.cfg.ParsedMode()
	dict, err := symbols.Load(p.cfg.SymbolsPath)
	if err != nil {
		return Summary{}, fmt.Errorf("pipeline: %w", err)
	}

	datasetFile, err := os.Open(p.cfg.DatasetPath)
	if err != nil {
		return Summary{}, fmt.Errorf("pipeline: open dataset: %w", err)
	}
	defer datasetFile.Close()

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("pipeline: create output dir: %w", err)
	}

	writers, closers, err := p.openReportFiles(dict, mode)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	var summary Summary
	sinks := [3]matching.Sink{}
	for i, k := range domain.Kinds {
		sinks[i] = &countingSink{kind: k, next: writers[i], summary: &summary, metrics: p.metrics}
	}

	policy := matching.ModePolicy{Mode: mode, UserA: p.userA, UserB: p.userB}
	classifier := matching.New(policy, sinks)
	filter := prefilter.New(p.userA, p.userB)

	reader := ingest.NewReader(datasetFile)
	err = reader.Each(func(trade domain.Trade) error {
		summary.TradesRead++
		if p.metrics != nil {
			p.metrics.TradeIngested()
		}
		if !filter.Keep(trade) {
			summary.TradesFiltered++
			if p.metrics != nil {
				p.metrics.TradeFiltered("pre_filter")
			}
			return nil
		}
		if p.metrics == nil {
			return classifier.Process(trade)
		}
		classifyStart := p.clock()
		err := classifier.Process(trade)
		p.metrics.ClassifyLatency(p.clock().Sub(classifyStart))
		return err
	})
	if err != nil {
		if p.metrics != nil {
			p.metrics.IngestError("ingest")
		}
		return Summary{}, fmt.Errorf("pipeline: %w", err)
	}

	if err := classifier.Finish(); err != nil {
		return Summary{}, fmt.Errorf("pipeline: %w", err)
	}

	summary.Elapsed = p.clock().Sub(start)

	p.logf("run complete",
		logger.Str("elapsed", summary.Elapsed.String()),
		logger.Int64("trades_read", summary.TradesRead),
		logger.Int64("trades_filtered", summary.TradesFiltered),
		logger.Int64("copy_matches", summary.Matches[domain.Copy]),
		logger.Int64("reversal_matches", summary.Matches[domain.Reversal]),
		logger.Int64("partial_copy_matches", summary.Matches[domain.PartialCopy]),
		logger.Int64("violations", summary.Violations),
	)

	return summary, nil
}

func (p *Pipeline) openReportFiles(dict symbols.Dictionary, mode domain.Mode) ([3]*reportcsv.Writer, [3]*os.File, error) {
	names := [3]string{"copy_trades.csv", "reversal_trades.csv", "partial_copy_trades.csv"}
	var files [3]*os.File
	var writers [3]*reportcsv.Writer
	for i, name := range names {
		path := p.outputDir + "/" + name
		f, err := os.Create(path)
		if err != nil {
			for j := 0; j < i; j++ {
				files[j].Close()
			}
			return writers, files, fmt.Errorf("pipeline: create %s: %w", path, err)
		}
		files[i] = f
		writers[i] = reportcsv.New(f, dict, mode)
	}
	return writers, files, nil
}

// countingSink wraps a matching.Sink to maintain run-summary counters
// alongside forwarding every batch to the underlying CSV writer.
type countingSink struct {
	kind    domain.Kind
	next    matching.Sink
	summary *Summary
	metrics *obsmetrics.Recorder
}

func (s *countingSink) Emit(b *domain.Batch) error {
	violations := 0
	for _, c := range b.Children {
		if c.Violation {
			violations++
		}
	}
	s.summary.Matches[s.kind] += int64(len(b.Children))
	s.summary.Violations += int64(violations)
	if s.metrics != nil {
		s.metrics.BatchEmitted(s.kind.String(), len(b.Children), violations)
	}
	return s.next.Emit(b)
}

