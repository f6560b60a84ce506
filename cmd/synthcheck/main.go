package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/hamed0406/synthcheck/internal/config"
	"github.com/hamed0406/synthcheck/internal/logging"
	"github.com/hamed0406/synthcheck/internal/probe"
	"github.com/hamed0406/synthcheck/internal/registry"
	"github.com/hamed0406/synthcheck/internal/runner"
)

// One-shot mode: probe everything once, print the report as JSON, and exit
// non-zero unless every target passed. The exit-code policy lives here on
// purpose; the engine only produces the report.
func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	reg, err := registry.New(cfg.TargetMap())
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(2)
	}

	r := runner.New(
		logger,
		reg,
		probe.NewHTTPProber(),
		probe.NewPageProber(nil, cfg.RenderWindow), // no browser wired: pages degrade to plain HTTP
		cfg.Thresholds,
		cfg.ProbeTimeout,
		cfg.Samples,
		cfg.Concurrency,
	)

	rep := r.Run(context.Background())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(rep)

	if rep.OverallScore < 1 {
		os.Exit(1)
	}
}
