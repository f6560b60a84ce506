package probe

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hamed0406/synthcheck/internal/domain"
)

// HTTPProber observes API targets with a single GET per probe. It holds no
// state between calls and is safe to invoke concurrently.
type HTTPProber struct {
	Client *http.Client
}

func NewHTTPProber() *HTTPProber {
	return &HTTPProber{Client: &http.Client{}}
}

func (p *HTTPProber) Probe(ctx context.Context, target domain.Target, timeout time.Duration) domain.Observation {
	obs := domain.Observation{Target: target, AttemptedAt: time.Now().UTC()}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, target.URL, nil)
	if err != nil {
		obs.Outcome = domain.OutcomeTransportError
		return obs
	}

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		return classify(obs, err, timeout)
	}
	defer resp.Body.Close()

	// Latency is measured to the last response byte, not the first.
	n, readErr := io.Copy(io.Discard, resp.Body)
	lat := time.Since(start).Seconds() * 1000

	if readErr != nil {
		// Body cut off mid-stream: the status never fully materialized, so
		// it is not recorded (success is defined by status presence).
		obs.LatencyMS = &lat
		return classify(obs, readErr, timeout)
	}

	status := resp.StatusCode
	obs.StatusCode = &status
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		obs.ContentType = &ct
	}
	obs.BodySize = &n
	obs.LatencyMS = &lat
	obs.Outcome = outcomeFor(status)
	return obs
}
