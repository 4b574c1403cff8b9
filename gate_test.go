package gogate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoke(t *testing.T) {
	ti := buildDefaultInstance(t)
	gate := buildGate(t, ti, NewNoOpLogger())

	executions := 0
	op := func() error {
		executions++
		return nil
	}

	// start at t = 1000000, budget of 2 per 10s window
	res := gate.InvokeWithDetails(context.Background(), op)
	assert.Nil(t, res.Error)
	assert.Equal(t, uint64(1), res.AttemptsNumber)
	assert.Equal(t, time.Duration(0), res.WaitedFor)

	ti.TimeTravel(1000) // goto 1001000
	assert.Nil(t, gate.Invoke(context.Background(), op))

	ti.TimeTravel(1000) // goto 1002000
	// the third call is rejected with 8s left in the window:
	// the gate sleeps it out and retries on the fresh window
	res = gate.InvokeWithDetails(context.Background(), op)

	assert.Nil(t, res.Error)
	assert.Equal(t, uint64(2), res.AttemptsNumber)
	assert.Equal(t, int64(8000), res.WaitedFor.Milliseconds())
	assert.Equal(t, []time.Duration{time.Duration(8000) * time.Millisecond}, ti.Waits)

	ti.AssertCurrentTime(t, 1010000)
	assert.Equal(t, 3, executions)
	ti.AssertWindowStatus(t, 1, 1010000)
}

func TestInvokeNeverSurfacesRateLimit(t *testing.T) {
	ti := buildDefaultInstance(t)
	gate := buildGate(t, ti, NewNoOpLogger())

	executions := 0

	// way more calls than a single window admits: every one of them
	// eventually runs and no rejection ever reaches the caller
	for i := 0; i < 25; i++ {
		err := gate.Invoke(context.Background(), func() error {
			executions++
			return nil
		})
		assert.Nil(t, err)
		assert.False(t, errors.Is(err, ErrRateLimitExceeded))
	}

	assert.Equal(t, 25, executions)
	assert.True(t, len(ti.Waits) > 0)
}

func TestInvokeOperationErrorPassthrough(t *testing.T) {
	ti := buildDefaultInstance(t)
	gate := buildGate(t, ti, NewNoOpLogger())

	domainErr := errors.New("transcript not found")

	err := gate.Invoke(context.Background(), func() error {
		return domainErr
	})

	// the gate takes no opinion on domain failures:
	// they propagate unchanged and are never retried
	assert.Equal(t, domainErr, err)

	res := gate.InvokeWithDetails(context.Background(), func() error {
		return domainErr
	})
	assert.Equal(t, domainErr, res.Error)
	assert.Equal(t, uint64(1), res.AttemptsNumber)
	assert.Equal(t, time.Duration(0), res.WaitedFor)
}

func TestInvokeContextCancelled(t *testing.T) {
	ti := buildDefaultInstance(t)
	gate := buildGate(t, ti, NewNoOpLogger())

	drainWindow(ti)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executions := 0
	res := gate.InvokeWithDetails(ctx, func() error {
		executions++
		return nil
	})

	// a cancelled context interrupts the pending wait:
	// the operation never ran
	assert.ErrorIs(t, res.Error, context.Canceled)
	assert.Equal(t, uint64(1), res.AttemptsNumber)
	assert.Equal(t, time.Duration(0), res.WaitedFor)
	assert.Equal(t, 0, executions)
}

func TestInvokeSuppressedLimiter(t *testing.T) {
	ti := buildInstance(t, func(config *Config) {
		config.SuppressRejections = true
		config.Logger = NewNoOpLogger()
	})
	gate := buildGate(t, ti, NewNoOpLogger())

	drainWindow(ti)

	// the limiter swallows the rejection, so the gate sees a plain
	// nil outcome: no retry, no wait, no execution
	executions := 0
	res := gate.InvokeWithDetails(context.Background(), func() error {
		executions++
		return nil
	})

	assert.Nil(t, res.Error)
	assert.Equal(t, uint64(1), res.AttemptsNumber)
	assert.Equal(t, time.Duration(0), res.WaitedFor)
	assert.Equal(t, 0, executions)
	assert.Empty(t, ti.Waits)
}

func TestInvokeLogsDelays(t *testing.T) {
	logger := &testLogger{}
	ti := buildDefaultInstance(t)
	gate := buildGate(t, ti, logger)

	drainWindow(ti)
	ti.TimeTravel(2000) // goto 1002000

	err := gate.Invoke(context.Background(), func() error {
		return nil
	})

	assert.Nil(t, err)
	assert.Contains(t, logger.Joined(), "rate limit hit, sleeping for 8000 ms")
	assert.Contains(t, logger.Joined(), "reattempted")
}

func TestDefaultWaitFunc(t *testing.T) {
	start := time.Now()
	err := defaultWaitFunc(context.Background(), time.Duration(20)*time.Millisecond)
	assert.Nil(t, err)
	assert.True(t, time.Since(start) >= time.Duration(20)*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = defaultWaitFunc(ctx, time.Duration(10)*time.Second)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Nil(t, defaultWaitFunc(context.Background(), 0))
}
