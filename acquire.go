package gogate

import (
	"fmt"
	"time"
)

// Result holds the outcome of an acquisition attempt.
//
// the Admitted field will be true if the call was admitted.
//
// If the call was rejected, the RetryIn field holds the time remaining
// until the current window resets: a client resubmitting after RetryIn
// has elapsed is guaranteed to find a fresh window.
//
// The Dropped field is only ever true on limiters built with
// SuppressRejections: the call was rejected but the rejection is being
// swallowed instead of signaled.
type Result struct {
	Admitted bool
	Dropped  bool
	RetryIn  time.Duration
}

func (r *Result) String() string {
	if r.Admitted {
		return "AcquireResult[Admitted]"
	} else if r.Dropped {
		return fmt.Sprintf("AcquireResult[Dropped, RetryIn: %v ms]", r.RetryIn.Milliseconds())
	} else {
		return fmt.Sprintf("AcquireResult[Rejected, RetryIn: %v ms]", r.RetryIn.Milliseconds())
	}
}

// Acquire asks for the current call to be admitted.
// The result object contains an Admitted property
// together with RetryIn information when the call is rejected.
func (instance *callLimiterDefaultImpl) Acquire() Result {
	t := instance.currentTime()

	instance.Lock.Lock()
	defer instance.Lock.Unlock()

	remaining := instance.rotateWindow(t)

	// the counter moves forward even when the attempt is going to be
	// rejected. A window reset therefore always lands back at exactly 1,
	// no matter how many rejections piled up in the closed window.
	instance.CallCount++

	if instance.CallCount > instance.Config.MaxCalls {
		return Result{
			Admitted: false,
			Dropped:  instance.Config.SuppressRejections,
			RetryIn:  remaining,
		}
	}

	return Result{
		Admitted: true,
	}
}

// Probe checks whether a call would be admitted right now.
// it is a readonly method that does not modify the current window data,
// not even by triggering the lazy window reset.
func (instance *callLimiterDefaultImpl) Probe() bool {
	t := instance.currentTime()

	instance.Lock.Lock()
	defer instance.Lock.Unlock()

	if t.Sub(instance.WindowStart) >= instance.Config.Interval {
		// the next acquisition will land on a fresh window
		return true
	}

	return instance.CallCount < instance.Config.MaxCalls
}

// Guard runs op if an admission is available right now.
//
// When the call is admitted, op runs and its result propagates
// unchanged. When the call is rejected, op does not run and a
// *RateLimitError carrying the time remaining until the window resets
// is returned.
//
// You can check the returned error with errors.Is against
// the sentinel gogate.ErrRateLimitExceeded, or you can cast it
// to the gogate.RateLimitError type if you need the RetryIn info.
func (instance *callLimiterDefaultImpl) Guard(op func() error) error {
	res := instance.Acquire()

	if res.Admitted {
		// op runs outside of the limiter lock:
		// a slow operation must not delay other acquisitions.
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
