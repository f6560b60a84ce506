package probe

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/hamed0406/synthcheck/internal/domain"
	"github.com/hamed0406/synthcheck/internal/render"
)

// Prober performs one observation of one target. It never returns an error:
// every failure path is classified into the observation's outcome, because
// the engine's job is to measure failure, not to fail because of it.
type Prober interface {
	Probe(ctx context.Context, target domain.Target, timeout time.Duration) domain.Observation
}

// Navigation is what a browser capability reports for one page load.
// ContentLoadedMS is navigation start to the document-content-loaded signal,
// deliberately not network idle, so slow background requests don't block
// classification.
type Navigation struct {
	StatusCode      int
	ContentLoadedMS float64
	Session         render.Session
}

// Browser is the opaque browser-automation capability consumed by page
// probes. Each Navigate call must yield a fresh, exclusively owned session.
type Browser interface {
	Navigate(ctx context.Context, url string) (*Navigation, error)
}

// classify converts a transport-level error into an observation outcome.
// Deadline exhaustion becomes a timeout carrying the full timeout as its
// latency; anything else is a transport error with latency left unmeasured
// (the connection never opened).
func classify(obs domain.Observation, err error, timeout time.Duration) domain.Observation {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		obs.Outcome = domain.OutcomeTimeout
		lat := timeout.Seconds() * 1000
		obs.LatencyMS = &lat
		return obs
	}
	obs.Outcome = domain.OutcomeTransportError
	return obs
}

// outcomeFor maps a response status to the success/http-error split.
func outcomeFor(status int) domain.Outcome {
	if domain.StatusSuccess(status) {
		return domain.OutcomeSuccess
	}
	return domain.OutcomeHTTPError
}
