package gogate

// compositeCallLimiterDefaultImpl combines multiple fixed-window
// limiters: a call is admitted only when every component admits it.
type compositeCallLimiterDefaultImpl struct {
	Logger   Logger
	Limiters []*callLimiterDefaultImpl
}

// Acquire attempts an acquisition on every composed limiter.
//
// Every component counter moves forward on every attempt, exactly like
// a rejected attempt does on a single limiter. A rejection reports the
// LONGEST RetryIn among the rejecting components, since resubmitting
// any earlier would still find at least one closed window.
func (instance *compositeCallLimiterDefaultImpl) Acquire() Result {
	out := Result{
		Admitted: true,
	}

	allRejectionsDropped := true

	for _, limiter := range instance.Limiters {
		res := limiter.Acquire()
		if res.Admitted {
			continue
		}

		out.Admitted = false
		if !res.Dropped {
			allRejectionsDropped = false
		}
		if res.RetryIn > out.RetryIn {
			out.RetryIn = res.RetryIn
		}
	}

	if !out.Admitted {
		// the rejection is swallowed only when every rejecting
		// component asked for it to be swallowed.
		out.Dropped = allRejectionsDropped
	}

	return out
}

// Probe checks whether a call would be admitted right now
// by every composed limiter.
// it is a readonly method that does not modify the current window data.
func (instance *compositeCallLimiterDefaultImpl) Probe() bool {
	for _, limiter := range instance.Limiters {
		if !limiter.Probe() {
			return false
		}
	}
	return true
}

// Guard runs op if an admission is available right now
// on every composed limiter.
func (instance *compositeCallLimiterDefaultImpl) Guard(op func() error) error {
	res := instance.Acquire()

	if res.Admitted {
		return op()
	}

	if res.Dropped {
		instance.Logger.Warning("call was rejected by the rate limit and silently dropped (rejection signaling is disabled)")
		return nil
	}

	return &RateLimitError{
		RetryIn: res.RetryIn,
	}
}

func (instance *compositeCallLimiterDefaultImpl) IsComposite() bool {
	return true
}

// Stats returns a snapshot of the current window of each
// composed limiter, useful to evaluate limiter pressure.
func (instance *compositeCallLimiterDefaultImpl) Stats() CompositeStats {
	out := CompositeStats{
		LimitersStats: make([]Stats, len(instance.Limiters)),
	}

	for i, limiter := range instance.Limiters {
		out.LimitersStats[i] = limiter.Stats()
	}

	return out
}
