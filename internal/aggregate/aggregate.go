package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/hamed0406/synthcheck/internal/domain"
	"github.com/hamed0406/synthcheck/internal/policy"
)

const ReasonNoSuccess = "no successful observation"

// Evaluate derives the pass/fail verdict for one target from its
// observations. Pure and deterministic: no I/O, no clock reads beyond the
// inputs, so it is unit-testable independent of the network-bound probers.
//
// Threshold checks run against the best (lowest-latency) successful
// observation, but at least one success is required overall: a transient
// failure among successes does not fail the target, zero successes always
// does.
func Evaluate(target domain.Target, observations []domain.Observation, th policy.Thresholds) domain.HealthVerdict {
	v := domain.HealthVerdict{Target: target, Observations: observations}
	reasons := make(map[string]struct{})

	var best *domain.Observation
	for i := range observations {
		o := &observations[i]
		if o.Outcome != domain.OutcomeSuccess {
			continue
		}
		if best == nil || lessLatency(o, best) {
			best = o
		}
	}

	if best == nil {
		reasons[ReasonNoSuccess] = struct{}{}
		// Keep the specific outcomes for diagnostics.
		for _, o := range observations {
			if o.Outcome != domain.OutcomeSuccess {
				reasons[diagnose(o)] = struct{}{}
			}
		}
	} else {
		if best.LatencyMS != nil && *best.LatencyMS > th.LatencyCeiling(target.Kind) {
			reasons[fmt.Sprintf("latency %.0fms above %.0fms ceiling", *best.LatencyMS, th.LatencyCeiling(target.Kind))] = struct{}{}
		}
		if best.Render != nil {
			if lcp := best.Render.LargestContentfulPaintMS; lcp != nil && *lcp > th.LCPCeilingMS {
				reasons[fmt.Sprintf("largest contentful paint %.0fms above %.0fms ceiling", *lcp, th.LCPCeilingMS)] = struct{}{}
			}
			if cls := best.Render.CumulativeLayoutShift; cls != nil && *cls > th.CLSCeiling {
				reasons[fmt.Sprintf("cumulative layout shift %.3f above %.3f ceiling", *cls, th.CLSCeiling)] = struct{}{}
			}
		}
	}

	v.Passed = len(reasons) == 0
	if len(reasons) > 0 {
		v.Reasons = make([]string, 0, len(reasons))
		for r := range reasons {
			v.Reasons = append(v.Reasons, r)
		}
		sort.Strings(v.Reasons)
	}
	return v
}

// Summarize folds all verdicts into the system-wide report. A commutative
// reduction: input order never changes the score. Every target weighs the
// same.
func Summarize(verdicts []domain.HealthVerdict) domain.HealthReport {
	report := domain.HealthReport{
		Verdicts:    make(map[string]domain.HealthVerdict, len(verdicts)),
		GeneratedAt: time.Now().UTC(),
	}
	passed := 0
	for _, v := range verdicts {
		report.Verdicts[v.Target.Name] = v
		if v.Passed {
			passed++
		}
	}
	if len(report.Verdicts) > 0 {
		report.OverallScore = float64(passed) / float64(len(report.Verdicts))
	}
	return report
}

func lessLatency(a, b *domain.Observation) bool {
	if a.LatencyMS == nil {
		return false
	}
	if b.LatencyMS == nil {
		return true
	}
	return *a.LatencyMS < *b.LatencyMS
}

func diagnose(o domain.Observation) string {
	if o.Outcome == domain.OutcomeHTTPError && o.StatusCode != nil {
		return fmt.Sprintf("observed %s %d", o.Outcome, *o.StatusCode)
	}
	return fmt.Sprintf("observed %s", o.Outcome)
}
