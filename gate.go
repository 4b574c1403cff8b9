package gogate

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// GateConfig holds the configuration for a Gate.
type GateConfig struct {

	// Limiter is a required parameter: the call limiter the gate
	// acquires an admission from before every invocation.
	//
	// Multiple gates may share one limiter instance.
	Limiter CallLimiter

	// WaitFunc can be overridden to allow for easier testing.
	// you should usually not override it.
	//
	// The default implementation blocks the calling goroutine for the
	// full duration, returning early with ctx.Err() when the context
	// is done first.
	WaitFunc func(ctx context.Context, d time.Duration) error

	// you can pass your custom logger if you'd like to
	// but it's not required
	Logger Logger
}

// Gate wraps arbitrary operations with a call limiter, making the
// limiter transparent to callers: a rejected invocation is suspended
// for the time remaining until the window resets and then retried,
// indefinitely, until the operation is admitted and runs.
//
// The gate itself holds no mutable state and is safe for concurrent use.
type Gate struct {
	limiter  CallLimiter
	waitFunc func(ctx context.Context, d time.Duration) error
	logger   Logger
}

// InvokeResult holds the details of an invocation handled
// by Gate.InvokeWithDetails.
//
// the Error field is nil if the operation ran and succeeded.
//
// The AttemptsNumber and WaitedFor fields provide information about the
// delays and acquisition attempts made by the gate.
type InvokeResult struct {
	AttemptsNumber uint64
	WaitedFor      time.Duration
	Error          error
}

// NewGate returns a Gate throttling operations through the given limiter.
//
// A non-nil error is returned in case of invalid configuration.
func NewGate(config *GateConfig) (*Gate, error) {
	if config.Limiter == nil {
		return nil, errors.New("a Gate requires a non-nil Limiter")
	}

	effectiveLogger := config.Logger
	if effectiveLogger == nil {
		effectiveLogger = &defaultLogger{}
	}

	out := Gate{
		limiter:  config.Limiter,
		waitFunc: config.WaitFunc,
		logger:   effectiveLogger,
	}

	if out.waitFunc == nil {
		out.waitFunc = defaultWaitFunc
	}

	return &out, nil
}

// Invoke runs op as soon as the limiter admits it.
//
// On rejection the calling goroutine is suspended for the time
// remaining until the window resets, then the acquisition is retried
// from the top. There is no maximum number of retries: once capacity
// frees up, the operation is guaranteed to run.
//
// The returned error is exactly what op returned, nil included:
// rate-limit rejections never escape Invoke. The only other possible
// outcome is ctx.Err() when the context is done while waiting for the
// limiter, in which case op did not run.
func (g *Gate) Invoke(ctx context.Context, op func() error) error {
	res := g.invoke(ctx, op)
	return res.Error
}

// InvokeWithDetails works exactly like Invoke.
//
// Unlike Invoke, more information about the invocation is returned with
// the output object, like the amount of time waited and the number of
// acquisition attempts made.
func (g *Gate) InvokeWithDetails(ctx context.Context, op func() error) InvokeResult {
	return g.invoke(ctx, op)
}

func (g *Gate) invoke(ctx context.Context, op func() error) InvokeResult {
	out := InvokeResult{
		AttemptsNumber: 0,
		WaitedFor:      0,
		Error:          nil,
	}

	for {
		out.AttemptsNumber++
		err := g.limiter.Guard(op)

		var limitErr *RateLimitError
		if !errors.As(err, &limitErr) {
			// op ran (or was silently dropped by a suppressing
			// limiter): its outcome propagates unchanged.
			out.Error = err
			return out
		}

		waitFor := limitErr.RetryIn
		g.logger.Warning(fmt.Sprintf("rate limit hit, sleeping for %v ms before retrying", waitFor.Milliseconds()))

		if werr := g.waitFunc(ctx, waitFor); werr != nil {
			out.Error = werr
			return out
		}
		out.WaitedFor += waitFor

		g.logger.Debug("call will now be reattempted")
	}
}

func defaultWaitFunc(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
