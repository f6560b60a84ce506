package policy

import "github.com/hamed0406/synthcheck/internal/domain"

// Thresholds is the pass/fail policy applied by the aggregator. Pure
// configuration; no behavior beyond the per-kind ceiling lookup.
type Thresholds struct {
	APILatencyCeilingMS  float64
	PageLatencyCeilingMS float64
	LCPCeilingMS         float64
	CLSCeiling           float64
}

// Default ceilings: API latency 2s, page content-loaded 4s, LCP 2.5s and
// CLS 0.1 (the web-vitals "good" boundaries).
func Default() Thresholds {
	return Thresholds{
		APILatencyCeilingMS:  2000,
		PageLatencyCeilingMS: 4000,
		LCPCeilingMS:         2500,
		CLSCeiling:           0.1,
	}
}

// LatencyCeiling returns the latency ceiling for a target kind.
func (t Thresholds) LatencyCeiling(kind domain.TargetKind) float64 {
	if kind == domain.KindPage {
		return t.PageLatencyCeilingMS
	}
	return t.APILatencyCeilingMS
}
