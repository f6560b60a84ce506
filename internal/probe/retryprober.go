package probe

import (
	"context"
	"time"

	"github.com/hamed0406/synthcheck/internal/domain"
)

// RetryProber decorates another prober: it re-probes on failure up to
// Attempts times and returns the first successful observation, or the last
// failed one. Useful for callers wanting stability sampling without teaching
// the inner prober about retries.
type RetryProber struct {
	Inner    Prober
	Attempts int
	Backoff  time.Duration
}

func (r *RetryProber) Probe(ctx context.Context, target domain.Target, timeout time.Duration) domain.Observation {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var last domain.Observation
	for i := 0; i < attempts; i++ {
		last = r.Inner.Probe(ctx, target, timeout)
		if last.Outcome == domain.OutcomeSuccess {
			return last
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return last
			case <-time.After(r.Backoff):
			}
		}
	}
	return last
}
