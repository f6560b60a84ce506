package probe

import (
	"context"
	"time"

	"github.com/hamed0406/synthcheck/internal/domain"
	"github.com/hamed0406/synthcheck/internal/render"
)

// PageProber observes PAGE targets through a browser capability. Latency is
// navigation start to document-content-loaded; after a successful load it
// samples render metrics over the configured window. Each probe gets its
// own session so one target's layout shifts are never attributed to another.
//
// With no Browser wired (headless environments, plain CI), page targets
// degrade to the plain HTTP probe and render metrics stay unmeasured.
type PageProber struct {
	Browser  Browser
	Window   time.Duration
	Fallback *HTTPProber
}

func NewPageProber(b Browser, window time.Duration) *PageProber {
	return &PageProber{Browser: b, Window: window, Fallback: NewHTTPProber()}
}

func (p *PageProber) Probe(ctx context.Context, target domain.Target, timeout time.Duration) domain.Observation {
	if p.Browser == nil {
		return p.Fallback.Probe(ctx, target, timeout)
	}

	obs := domain.Observation{Target: target, AttemptedAt: time.Now().UTC()}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	nav, err := p.Browser.Navigate(cctx, target.URL)
	if err != nil {
		return classify(obs, err, timeout)
	}
	if nav.Session != nil {
		defer nav.Session.Close()
	}

	status := nav.StatusCode
	lat := nav.ContentLoadedMS
	obs.StatusCode = &status
	obs.LatencyMS = &lat
	obs.Outcome = outcomeFor(status)

	if obs.Outcome == domain.OutcomeSuccess && nav.Session != nil && p.Window > 0 {
		m := render.Extract(ctx, nav.Session, p.Window)
		obs.Render = &m
	}
	return obs
}
