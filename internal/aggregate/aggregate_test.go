package aggregate

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/synthcheck/internal/domain"
	"github.com/hamed0406/synthcheck/internal/policy"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func success(t domain.Target, latencyMS float64) domain.Observation {
	return domain.Observation{
		Target:      t,
		AttemptedAt: time.Now().UTC(),
		Outcome:     domain.OutcomeSuccess,
		StatusCode:  iptr(200),
		LatencyMS:   fptr(latencyMS),
	}
}

func failure(t domain.Target, outcome domain.Outcome) domain.Observation {
	return domain.Observation{Target: t, AttemptedAt: time.Now().UTC(), Outcome: outcome}
}

var apiT = domain.Target{Name: "api", URL: "https://api.example.com", Kind: domain.KindAPI}
var pageT = domain.Target{Name: "blog", URL: "https://blog.example.com", Kind: domain.KindPage}

func TestEvaluate_ZeroObservationsFails(t *testing.T) {
	v := Evaluate(apiT, nil, policy.Default())
	if v.Passed {
		t.Fatalf("zero observations must fail")
	}
	if len(v.Reasons) == 0 {
		t.Fatalf("want non-empty reasons")
	}
}

func TestEvaluate_AllFailuresPreserveOutcomes(t *testing.T) {
	obs := []domain.Observation{
		failure(apiT, domain.OutcomeTransportError),
		failure(apiT, domain.OutcomeTimeout),
	}
	v := Evaluate(apiT, obs, policy.Default())
	if v.Passed {
		t.Fatalf("want failed verdict, got %+v", v)
	}
	joined := strings.Join(v.Reasons, "|")
	if !strings.Contains(joined, ReasonNoSuccess) {
		t.Fatalf("want %q in reasons, got %v", ReasonNoSuccess, v.Reasons)
	}
	if !strings.Contains(joined, "transport_error") || !strings.Contains(joined, "timeout") {
		t.Fatalf("want specific outcomes preserved for diagnostics, got %v", v.Reasons)
	}
}

func TestEvaluate_TransientFailureTolerated(t *testing.T) {
	obs := []domain.Observation{
		failure(apiT, domain.OutcomeTimeout),
		success(apiT, 120),
	}
	v := Evaluate(apiT, obs, policy.Default())
	if !v.Passed {
		t.Fatalf("one timeout among successes must not fail the target: %+v", v)
	}
	if len(v.Reasons) != 0 {
		t.Fatalf("passing verdict should carry no reasons, got %v", v.Reasons)
	}
}

func TestEvaluate_BestSuccessUsedForThresholds(t *testing.T) {
	th := policy.Default() // api ceiling 2000ms
	obs := []domain.Observation{
		success(apiT, 3500), // slow sample
		success(apiT, 300),  // best sample, under ceiling
	}
	v := Evaluate(apiT, obs, th)
	if !v.Passed {
		t.Fatalf("best success under ceiling must pass, got %v", v.Reasons)
	}
}

func TestEvaluate_LatencyCeilingViolation(t *testing.T) {
	th := policy.Default()
	v := Evaluate(apiT, []domain.Observation{success(apiT, th.APILatencyCeilingMS + 1)}, th)
	if v.Passed {
		t.Fatalf("latency above ceiling must fail")
	}
	if !strings.Contains(strings.Join(v.Reasons, "|"), "latency") {
		t.Fatalf("want latency reason, got %v", v.Reasons)
	}
}

func TestEvaluate_LCPCeilingViolationDespite200(t *testing.T) {
	th := policy.Thresholds{APILatencyCeilingMS: 2000, PageLatencyCeilingMS: 4000, LCPCeilingMS: 2500, CLSCeiling: 0.1}
	obs := success(pageT, 800)
	obs.Render = &domain.RenderMetrics{LargestContentfulPaintMS: fptr(3200)}
	v := Evaluate(pageT, []domain.Observation{obs}, th)
	if v.Passed {
		t.Fatalf("LCP 3200 against 2500 ceiling must fail even with a 200 status")
	}
	if !strings.Contains(strings.Join(v.Reasons, "|"), "largest contentful paint") {
		t.Fatalf("want LCP reason, got %v", v.Reasons)
	}
}

func TestEvaluate_AbsentCLSNeverFails(t *testing.T) {
	obs := success(pageT, 800)
	obs.Render = &domain.RenderMetrics{
		LargestContentfulPaintMS: fptr(1200),
		// CLS unmeasured
	}
	v := Evaluate(pageT, []domain.Observation{obs}, policy.Default())
	if !v.Passed {
		t.Fatalf("absent CLS must never by itself fail the target: %v", v.Reasons)
	}
}

func TestEvaluate_CLSCeilingViolation(t *testing.T) {
	obs := success(pageT, 800)
	obs.Render = &domain.RenderMetrics{CumulativeLayoutShift: fptr(0.42)}
	v := Evaluate(pageT, []domain.Observation{obs}, policy.Default())
	if v.Passed {
		t.Fatalf("CLS 0.42 against 0.1 ceiling must fail")
	}
}

func TestSummarize_TwoOfThreeScore(t *testing.T) {
	th := policy.Thresholds{APILatencyCeilingMS: 2500, PageLatencyCeilingMS: 2500, LCPCeilingMS: 2500, CLSCeiling: 0.1}
	a := domain.Target{Name: "a", URL: "https://a.example.com", Kind: domain.KindAPI}
	b := domain.Target{Name: "b", URL: "https://b.example.com", Kind: domain.KindAPI}
	c := domain.Target{Name: "c", URL: "https://c.example.com", Kind: domain.KindAPI}

	verdicts := []domain.HealthVerdict{
		Evaluate(a, []domain.Observation{success(a, 800)}, th),
		Evaluate(b, []domain.Observation{success(b, 800)}, th),
		Evaluate(c, []domain.Observation{failure(c, domain.OutcomeTransportError)}, th),
	}
	rep := Summarize(verdicts)

	if math.Abs(rep.OverallScore-2.0/3.0) > 1e-9 {
		t.Fatalf("want score 0.6667, got %v", rep.OverallScore)
	}
	if !rep.Verdicts["a"].Passed || !rep.Verdicts["b"].Passed {
		t.Fatalf("want a and b passing")
	}
	failed := rep.Verdicts["c"]
	if failed.Passed {
		t.Fatalf("want c failing")
	}
	if !strings.Contains(strings.Join(failed.Reasons, "|"), ReasonNoSuccess) {
		t.Fatalf("want %q for c, got %v", ReasonNoSuccess, failed.Reasons)
	}
	if rep.GeneratedAt.IsZero() {
		t.Fatalf("want generated_at set")
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	th := policy.Default()
	a := domain.Target{Name: "a", URL: "https://a.example.com", Kind: domain.KindAPI}
	b := domain.Target{Name: "b", URL: "https://b.example.com", Kind: domain.KindAPI}
	c := domain.Target{Name: "c", URL: "https://c.example.com", Kind: domain.KindAPI}

	verdicts := []domain.HealthVerdict{
		Evaluate(a, []domain.Observation{success(a, 100)}, th),
		Evaluate(b, []domain.Observation{failure(b, domain.OutcomeTimeout)}, th),
		Evaluate(c, []domain.Observation{success(c, 100)}, th),
	}

	want := Summarize(verdicts).OverallScore
	perms := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}, {2, 0, 1}, {1, 0, 2}, {0, 2, 1}}
	for _, p := range perms {
		shuffled := []domain.HealthVerdict{verdicts[p[0]], verdicts[p[1]], verdicts[p[2]]}
		if got := Summarize(shuffled).OverallScore; got != want {
			t.Fatalf("score changed with input order: want %v got %v (perm %v)", want, got, p)
		}
	}
}

func TestSummarize_EmptyVerdicts(t *testing.T) {
	rep := Summarize(nil)
	if rep.OverallScore != 0 {
		t.Fatalf("want score 0 for empty input, got %v", rep.OverallScore)
	}
	if rep.Verdicts == nil {
		t.Fatalf("verdict map should be non-nil")
	}
}
