package render

// PaintEvent is one paint-timing report from the rendering pipeline.
type PaintEvent struct {
	TimeMS float64 // paint timestamp relative to navigation start
	SizePx float64 // painted area, used by LCP candidate selection
}

// LayoutShift is one layout-shift report. Shifts caused by recent user
// input do not count toward the cumulative score.
type LayoutShift struct {
	Score          float64
	HadRecentInput bool
}

// Session exposes the rendering signals of one live page load. Each channel
// delivers events as the browser reports them and is closed when the page
// context goes away. A session is exclusively owned by the probe that
// created it; sessions are never shared between concurrent page probes.
type Session interface {
	LargestContentfulPaints() <-chan PaintEvent
	FirstContentfulPaints() <-chan PaintEvent
	LayoutShifts() <-chan LayoutShift
	Close() error
}
