// Command classify runs the trade-copy-detection pipeline over a
// binary trade record file and writes the three CSV report streams.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"copytrace/internal/config"
	"copytrace/internal/obsmetrics"
	"copytrace/internal/pipeline"
	"copytrace/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the run configuration YAML file")
	outputDir := flag.String("output-dir", ".", "directory the CSV reports are written to")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s --config <path> <user_id_1> <user_id_2>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *configPath == "" || flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	userA, err := strconv.ParseInt(flag.Arg(0), 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid user id %q: %v\n", flag.Arg(0), err)
		os.Exit(2)
	}
	userB, err := strconv.ParseInt(flag.Arg(1), 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid user id %q: %v\n", flag.Arg(1), err)
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: *logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("configuration error", logger.Err(err))
		os.Exit(1)
	}

	recorder := obsmetrics.New()

	if cfg.MetricsAddr != "" {
		log.Info("serving metrics", logger.Str("addr", cfg.MetricsAddr))
		mux := http.NewServeMux()
		mux.Handle("/metrics", obsmetrics.Handler())
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server failed", logger.Err(err))
			}
		}()
	}

	p := pipeline.New(cfg, int32(userA), int32(userB)).
		WithLogger(log).
		WithMetrics(recorder).
		WithOutputDir(*outputDir)

	summary, err := p.Run()
	if err != nil {
		log.Error("run failed", logger.Err(err))
		os.Exit(1)
	}

	fmt.Printf("Trade comparison completed. (%.3fs)\n", summary.Elapsed.Seconds())
	fmt.Printf("Accounts analyzed: %d vs %d\n", userA, userB)
	total := summary.Matches[0] + summary.Matches[1] + summary.Matches[2]
	fmt.Printf("Total matches %d\n", total)
	fmt.Printf(" - Copy trades: %d\n", summary.Matches[0])
	fmt.Printf(" - Reversal trades: %d\n", summary.Matches[1])
	fmt.Printf(" - Partial copy trades: %d\n", summary.Matches[2])
	if cfg.ParsedMode().String() == "B" {
		fmt.Printf(" - Violations: %d\n", summary.Violations)
	}
}
