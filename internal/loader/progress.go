package loader

// ProgressFunc receives the load's progress watermark, an integer percentage
// in [0,100]. Across one load it is called with strictly increasing values:
// duplicates and decreases are suppressed before it is invoked.
type ProgressFunc func(pct int)

// Tracker owns the progress watermark for a single load. The zero value is
// not usable; construct with NewTracker.
type Tracker struct {
	last int
}

// NewTracker returns a tracker that has reported nothing yet.
func NewTracker() *Tracker {
	return &Tracker{last: -1}
}

// Update recomputes the watermark from bytes received over bytes expected.
// The percentage is truncated to an integer and saturated at 100. It returns
// the new watermark and true when the value advanced past everything
// reported before; otherwise ok is false and the caller must not report.
// An unknown total (expected <= 0) never advances the watermark.
func (t *Tracker) Update(received, expected int64) (pct int, ok bool) {
	if expected <= 0 {
		return t.last, false
	}
	pct = int(received * 100 / expected)
	if pct > 100 {
		pct = 100
	}
	if pct <= t.last {
		return t.last, false
	}
	t.last = pct
	return pct, true
}

// Complete forces the watermark to 100, reporting it only if 100 has not
// been reported already. Used when a stream ends without a byte total.
func (t *Tracker) Complete() (pct int, ok bool) {
	if t.last >= 100 {
		return 100, false
	}
	t.last = 100
	return 100, true
}
