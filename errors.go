package gogate

import (
	"fmt"
	"time"
)

var (
	// ErrRateLimitExceeded is a sentinel for the error that
	// occurs when an acquisition is rejected because the admission
	// budget of the current window is used up.
	//
	// It is returned by CallLimiter.Guard and always consumed
	// internally by Gate.Invoke, which suspends and retries
	// instead of surfacing it.
	ErrRateLimitExceeded = &RateLimitError{}
)

// RateLimitError is returned when an acquisition is rejected because
// the admission budget of the current window is used up.
//
// RetryIn holds the time remaining until the window resets, computed at
// rejection time: it is all a caller needs in order to schedule a
// resubmission that is guaranteed to find a fresh window.
type RateLimitError struct {
	RetryIn time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf(
		"RateLimitError: the call was rejected by the rate limit, retry in %v ms",
		e.RetryIn.Milliseconds(),
	)
}

func (e *RateLimitError) Is(tgt error) bool {
	_, ok := tgt.(*RateLimitError)
	return ok
}
