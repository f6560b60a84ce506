package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/synthcheck/internal/config"
	"github.com/hamed0406/synthcheck/internal/httpapi"
	"github.com/hamed0406/synthcheck/internal/logging"
	"github.com/hamed0406/synthcheck/internal/probe"
	"github.com/hamed0406/synthcheck/internal/registry"
	"github.com/hamed0406/synthcheck/internal/report"
	"github.com/hamed0406/synthcheck/internal/runner"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	reg, err := registry.New(cfg.TargetMap())
	if err != nil {
		log.Fatal(err)
	}

	r := runner.New(
		logger,
		reg,
		probe.NewHTTPProber(),
		probe.NewPageProber(nil, cfg.RenderWindow),
		cfg.Thresholds,
		cfg.ProbeTimeout,
		cfg.Samples,
		cfg.Concurrency,
	)

	api := httpapi.NewServer(logger, reg, r, report.NewCache())

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
