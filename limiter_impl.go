package gogate

import (
	"sync"
	"time"
)

// callLimiterDefaultImpl holds all the required
// runtime data together with the parsed configuration.
type callLimiterDefaultImpl struct {
	Logger Logger
	Config *callLimiterEffectiveConfig

	// Time function can be overridden for testing.
	TimeFunc func() time.Time

	// a lock provides thread safety.
	// every read-modify-write of WindowStart/CallCount
	// happens inside a single critical section.
	Lock sync.Mutex

	// WindowStart is the instant of the last window reset.
	// Elapsed time is computed with time.Time.Sub so the arithmetic
	// rides on the monotonic clock reading and is immune to wall
	// clock adjustments.
	WindowStart time.Time

	// CallCount is the number of acquisition attempts counted since
	// WindowStart, rejected attempts included: the counter is never
	// decremented, only zeroed by a window reset.
	CallCount uint64
}

// callLimiterEffectiveConfig holds the validated and parsed configuration
// that was obtained from the user-provided configuration.
type callLimiterEffectiveConfig struct {
	// admission budget per window
	MaxCalls uint64

	// window width
	Interval time.Duration

	// rejection signaling control
	SuppressRejections bool
}

func (instance *callLimiterDefaultImpl) currentTime() time.Time {
	// hook time provider here to allow easier testing
	return instance.TimeFunc()
}

func (instance *callLimiterDefaultImpl) IsComposite() bool {
	return false
}

// Stats returns a snapshot of the current window,
// useful to evaluate limiter pressure.
func (instance *callLimiterDefaultImpl) Stats() Stats {
	t := instance.currentTime()

	instance.Lock.Lock()
	defer instance.Lock.Unlock()

	remaining := instance.Config.Interval - t.Sub(instance.WindowStart)
	if remaining < 0 {
		remaining = 0
	}

	return Stats{
		CallsInWindow: instance.CallCount,
		MaxCalls:      instance.Config.MaxCalls,
		ResetIn:       remaining,
	}
}

// core methods have been moved to the acquire.go and window.go files
