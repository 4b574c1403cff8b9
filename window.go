package gogate

import "time"

// rotateWindow lazily applies a window reset when a full interval has
// elapsed since the last one, and reports the time remaining until the
// next reset.
//
// There is no background timer: a window boundary is crossed at most
// once, at the moment of the first acquisition check happening after
// WindowStart + Interval.
//
// Must be called with the instance lock held.
func (instance *callLimiterDefaultImpl) rotateWindow(t time.Time) time.Duration {
	elapsed := t.Sub(instance.WindowStart)

	if elapsed >= instance.Config.Interval {
		instance.CallCount = 0
		instance.WindowStart = t
		elapsed = 0
	}

	return instance.Config.Interval - elapsed
}
