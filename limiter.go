package gogate

import "time"

// CallLimiter is the parent interface for all kinds
// of call limiters.
//
// You are encouraged to use this type when storing references
// to your limiters in order to allow for easier implementations switch.
type CallLimiter interface {
	// Probe checks whether a call would be admitted right now.
	// it is a readonly method that does not modify the current window data.
	Probe() bool

	// Acquire asks for the current call to be admitted.
	// The result object contains an Admitted property
	// together with RetryIn information when the call is rejected.
	Acquire() Result

	// Guard runs op if an admission is available right now.
	//
	// When the call is admitted, op runs and its result propagates
	// unchanged. When the call is rejected, op does not run and a
	// *RateLimitError carrying the time remaining until the window
	// resets is returned.
	//
	// You can check the returned error with errors.Is against
	// the sentinel gogate.ErrRateLimitExceeded, or you can cast it
	// to the gogate.RateLimitError type if you need the RetryIn info.
	//
	// On limiters built with SuppressRejections, a rejected call
	// returns nil WITHOUT running op: the caller cannot tell a dropped
	// call from a successful one. Prefer the default signaling mode
	// together with a Gate.
	Guard(op func() error) error

	// IsComposite returns true if the limiter is a composite limiter
	// created with gogate.NewComposite(...).
	IsComposite() bool
}

// StandaloneCallLimiter is the specialized interface for the standard
// fixed-window limiters created with gogate.New(...).
//
// Note that all types implementing StandaloneCallLimiter also implement CallLimiter:
// You are encouraged to use this type when storing references
// to your limiters in order to allow for easier implementations switch.
type StandaloneCallLimiter interface {
	// Probe checks whether a call would be admitted right now.
	// it is a readonly method that does not modify the current window data.
	Probe() bool

	// Acquire asks for the current call to be admitted.
	// The result object contains an Admitted property
	// together with RetryIn information when the call is rejected.
	Acquire() Result

	// Guard runs op if an admission is available right now.
	//
	// When the call is admitted, op runs and its result propagates
	// unchanged. When the call is rejected, op does not run and a
	// *RateLimitError carrying the time remaining until the window
	// resets is returned.
	Guard(op func() error) error

	// IsComposite is "inherited" from CallLimiter
	// and always returns false for this type.
	IsComposite() bool

	// Stats returns a snapshot of the current window,
	// useful to evaluate limiter pressure.
	Stats() Stats
}

// CompositeCallLimiter is the specialized interface for the composite
// call limiters created with gogate.NewComposite(...).
//
// Note that all types implementing CompositeCallLimiter also implement CallLimiter:
// You are encouraged to use this type when storing references
// to your limiters in order to allow for easier implementations switch.
type CompositeCallLimiter interface {
	// Probe checks whether a call would be admitted right now.
	// it is a readonly method that does not modify the current window data.
	Probe() bool

	// Acquire asks for the current call to be admitted.
	// The result object contains an Admitted property
	// together with RetryIn information when the call is rejected.
	Acquire() Result

	// Guard runs op if an admission is available right now on every
	// composed limiter.
	Guard(op func() error) error

	// IsComposite is "inherited" from CallLimiter
	// and always returns true for this type.
	IsComposite() bool

	// Stats returns a snapshot of the current window of each
	// composed limiter, useful to evaluate limiter pressure.
	Stats() CompositeStats
}

// Stats holds a snapshot of the window of a single call limiter.
//
// The snapshot is taken as-is and does not trigger the lazy window
// reset: after the window has fully elapsed, CallsInWindow keeps
// reporting the closed window's count until the next acquisition.
type Stats struct {
	// CallsInWindow is the number of acquisition attempts counted
	// since the last window reset, rejected attempts included.
	CallsInWindow uint64

	// MaxCalls is the configured admission budget per window.
	MaxCalls uint64

	// ResetIn is the time remaining until the window resets,
	// zero when the window has already fully elapsed.
	ResetIn time.Duration
}

// CompositeStats holds a snapshot of the windows
// of a composite call limiter.
type CompositeStats struct {
	// LimitersStats holds the statistics for each composed limiter
	LimitersStats []Stats
}
