package render

import (
	"context"
	"time"

	"github.com/hamed0406/synthcheck/internal/domain"
)

// Extract samples the session's three signals until the shared window
// elapses and returns whatever was observed by then. The signals complete
// independently, so partial results are normal: an absent field means the
// signal never fired inside the window, not that extraction failed.
//
// LCP is the last paint candidate seen before the window closes, FCP the
// first paint timestamp, CLS the running sum of shift scores excluding
// input-attributed shifts. Extract never blocks past the window.
func Extract(ctx context.Context, s Session, window time.Duration) domain.RenderMetrics {
	var m domain.RenderMetrics

	timer := time.NewTimer(window)
	defer timer.Stop()

	lcpCh := s.LargestContentfulPaints()
	fcpCh := s.FirstContentfulPaints()
	shiftCh := s.LayoutShifts()

	var cls float64
	for {
		if lcpCh == nil && fcpCh == nil && shiftCh == nil {
			return m
		}
		select {
		case <-ctx.Done():
			return m
		case <-timer.C:
			return m
		case ev, ok := <-lcpCh:
			if !ok {
				lcpCh = nil
				continue
			}
			v := ev.TimeMS
			m.LargestContentfulPaintMS = &v
		case ev, ok := <-fcpCh:
			if !ok {
				fcpCh = nil
				continue
			}
			if m.FirstContentfulPaintMS == nil {
				v := ev.TimeMS
				m.FirstContentfulPaintMS = &v
			}
		case ev, ok := <-shiftCh:
			if !ok {
				shiftCh = nil
				continue
			}
			if !ev.HadRecentInput {
				cls += ev.Score
			}
			v := cls
			m.CumulativeLayoutShift = &v
		}
	}
}
