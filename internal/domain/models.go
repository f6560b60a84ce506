package domain

import "time"

type TargetKind string

const (
	KindAPI  TargetKind = "api"
	KindPage TargetKind = "page"
)

// Target is one named, independently deployed application under observation.
// Targets are built once at startup and never mutated.
type Target struct {
	Name string     `json:"name"`
	URL  string     `json:"url"`
	Kind TargetKind `json:"kind"`
}

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeHTTPError      Outcome = "http_error"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeTimeout        Outcome = "timeout"
)

// Observation is the result of one probe attempt against one target.
//
// StatusCode is present iff the server produced a response. LatencyMS is
// present unless the outcome is a transport error where the connection never
// opened. Render is set only for page targets whose navigation succeeded.
type Observation struct {
	Target      Target         `json:"target"`
	AttemptedAt time.Time      `json:"attempted_at"`
	Outcome     Outcome        `json:"outcome"`
	StatusCode  *int           `json:"status_code,omitempty"`
	LatencyMS   *float64       `json:"latency_ms,omitempty"`
	ContentType *string        `json:"content_type,omitempty"`
	BodySize    *int64         `json:"body_size,omitempty"`
	Render      *RenderMetrics `json:"render,omitempty"`
}

// RenderMetrics carries browser rendering signals sampled after a page load.
// Each field is independently optional: a nil field means the underlying
// signal never fired within the observation window, not that it failed.
type RenderMetrics struct {
	LargestContentfulPaintMS *float64 `json:"largest_contentful_paint_ms,omitempty"`
	FirstContentfulPaintMS   *float64 `json:"first_contentful_paint_ms,omitempty"`
	CumulativeLayoutShift    *float64 `json:"cumulative_layout_shift,omitempty"`
}

// HealthVerdict is the pass/fail judgment for one target, derived from its
// observations and never mutated after construction. Reasons is a sorted set.
type HealthVerdict struct {
	Target       Target        `json:"target"`
	Observations []Observation `json:"observations"`
	Passed       bool          `json:"passed"`
	Reasons      []string      `json:"reasons,omitempty"`
}

// HealthReport is the system-wide reduction of all verdicts.
type HealthReport struct {
	Verdicts     map[string]HealthVerdict `json:"verdicts"`
	OverallScore float64                  `json:"overall_score"`
	GeneratedAt  time.Time                `json:"generated_at"`
}

// StatusSuccess reports whether an HTTP status classifies as a successful
// probe outcome.
func StatusSuccess(status int) bool {
	return status >= 200 && status < 400
}
