package runner

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/synthcheck/internal/aggregate"
	"github.com/hamed0406/synthcheck/internal/domain"
	"github.com/hamed0406/synthcheck/internal/policy"
	"github.com/hamed0406/synthcheck/internal/probe"
	"github.com/hamed0406/synthcheck/internal/registry"
)

// Runner executes one probe pass: every target probed concurrently, samples
// per target joined and ordered by start time, verdicts reduced into a
// single report. Wall-clock for a pass is bounded by the slowest target, not
// the sum.
type Runner struct {
	Logger      *zap.Logger
	Registry    *registry.Registry
	API         probe.Prober
	Page        probe.Prober
	Thresholds  policy.Thresholds
	Timeout     time.Duration
	Samples     int
	Concurrency int
}

func New(
	logger *zap.Logger,
	reg *registry.Registry,
	api probe.Prober,
	page probe.Prober,
	th policy.Thresholds,
	timeout time.Duration,
	samples int,
	concurrency int,
) *Runner {
	if samples < 1 {
		samples = 1
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		Logger:      logger,
		Registry:    reg,
		API:         api,
		Page:        page,
		Thresholds:  th,
		Timeout:     timeout,
		Samples:     samples,
		Concurrency: concurrency,
	}
}

// Run probes all registered targets and returns the point-in-time report.
// A failing target never aborts its siblings; per-probe timeouts cancel
// only their own request.
func (r *Runner) Run(ctx context.Context) domain.HealthReport {
	targets := r.Registry.Targets()

	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup
	verdicts := make([]domain.HealthVerdict, len(targets))

	for i, tgt := range targets {
		i, tgt := i, tgt
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			verdicts[i] = r.observe(ctx, tgt)
		}()
	}
	wg.Wait()

	report := aggregate.Summarize(verdicts)
	r.Logger.Info("pass_complete",
		zap.Int("targets", len(targets)),
		zap.Float64("overall_score", report.OverallScore),
	)
	return report
}

// observe collects the target's samples concurrently, then hands the
// aggregator the sequence ordered by start time.
func (r *Runner) observe(ctx context.Context, tgt domain.Target) domain.HealthVerdict {
	prober := r.API
	if tgt.Kind == domain.KindPage {
		prober = r.Page
	}

	obs := make([]domain.Observation, r.Samples)
	var wg sync.WaitGroup
	for s := 0; s < r.Samples; s++ {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs[s] = prober.Probe(ctx, tgt, r.Timeout)
		}()
	}
	wg.Wait()

	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].AttemptedAt.Before(obs[j].AttemptedAt)
	})

	for _, o := range obs {
		fields := []zap.Field{
			zap.String("target", tgt.Name),
			zap.String("url", tgt.URL),
			zap.String("outcome", string(o.Outcome)),
		}
		if o.StatusCode != nil {
			fields = append(fields, zap.Int("status", *o.StatusCode))
		}
		if o.LatencyMS != nil {
			fields = append(fields, zap.Float64("latency_ms", *o.LatencyMS))
		}
		r.Logger.Debug("probed", fields...)
	}

	return aggregate.Evaluate(tgt, obs, r.Thresholds)
}
