package gogate

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	defaultMaxCalls = 2
	defaultInterval = time.Duration(10) * time.Second
)

type testableInstance struct {
	Instance    *callLimiterDefaultImpl
	CurrentTime uint64
	Waits       []time.Duration
}

type compositeTestableInstance struct {
	Instance    *compositeCallLimiterDefaultImpl
	CurrentTime uint64
	Waits       []time.Duration
}

type testLogger struct {
	Messages []string
}

func (l *testLogger) Debug(text string) {
	l.Messages = append(l.Messages, fmt.Sprintf("[d] %v", text))
}
func (l *testLogger) Info(text string) {
	l.Messages = append(l.Messages, fmt.Sprintf("[i] %v", text))
}
func (l *testLogger) Warning(text string) {
	l.Messages = append(l.Messages, fmt.Sprintf("[w] %v", text))
}
func (l *testLogger) Error(text string) {
	l.Messages = append(l.Messages, fmt.Sprintf("[e] %v", text))
}

func (l *testLogger) Joined() string {
	return strings.Join(l.Messages, "\n")
}

func (ti *testableInstance) TimeSet(to uint64) {
	ti.CurrentTime = to
}
func (ti *testableInstance) TimeTravel(diff int64) {
	ti.CurrentTime = uint64(int64(ti.CurrentTime) + diff)
}
func (ti *testableInstance) AssertCurrentTime(t *testing.T, expected uint64) {
	assert.Equal(t, uint64(expected), ti.CurrentTime, "the current time is expected to be %v and is instead %v", expected, ti.CurrentTime)
}

// AssertWindowStatus checks the raw counter together with the instant
// the current window opened at, expressed in milliseconds.
func (ti *testableInstance) AssertWindowStatus(t *testing.T, count uint64, windowStartedAt uint64) {
	assert.Equal(t, count, ti.Instance.CallCount)
	assert.Equal(t, int64(windowStartedAt), ti.Instance.WindowStart.UnixMilli())
}

// WaitFunc returns a wait function that never actually sleeps:
// it records the requested delay and advances the fake clock instead.
func (ti *testableInstance) WaitFunc() func(ctx context.Context, d time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ti.Waits = append(ti.Waits, d)
		ti.TimeTravel(d.Milliseconds())
		return nil
	}
}

func testTimeFunc(currentTime *uint64) func() time.Time {
	return func() time.Time {
		return time.Unix(
			int64(*currentTime)/int64(1000),
			(int64(*currentTime)%int64(1000))*int64(1000000),
		)
	}
}

func buildInstance(t *testing.T, configurer func(config *Config)) *testableInstance {
	ti := testableInstance{
		CurrentTime: 1000000,
	}

	config := Config{
		MaxCalls: defaultMaxCalls,
		Interval: defaultInterval,
		TimeFunc: testTimeFunc(&ti.CurrentTime),
	}

	if configurer != nil {
		configurer(&config)
	}

	instance, err := New(&config)

	if t != nil {
		assert.NotNil(t, instance)
		assert.Nil(t, err)
	}

	ti.Instance = instance.(*callLimiterDefaultImpl)

	return &ti
}

func buildDefaultInstance(t *testing.T) *testableInstance {
	return buildInstance(t, nil)
}

func buildGate(t *testing.T, ti *testableInstance, logger Logger) *Gate {
	gate, err := NewGate(&GateConfig{
		Limiter:  ti.Instance,
		WaitFunc: ti.WaitFunc(),
		Logger:   logger,
	})

	if t != nil {
		assert.NotNil(t, gate)
		assert.Nil(t, err)
	}

	return gate
}

// drainWindow burns through the whole admission budget
// of the current window.
func drainWindow(ti *testableInstance) {
	for i := uint64(0); i < ti.Instance.Config.MaxCalls; i++ {
		_ = ti.Instance.Acquire()
	}
}

func (ti *compositeTestableInstance) TimeTravel(diff int64) {
	ti.CurrentTime = uint64(int64(ti.CurrentTime) + diff)
}

func (ti *compositeTestableInstance) WaitFunc() func(ctx context.Context, d time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ti.Waits = append(ti.Waits, d)
		ti.TimeTravel(d.Milliseconds())
		return nil
	}
}

func buildCompositeInstance(t *testing.T, configurer func(config *CompositeConfig)) *compositeTestableInstance {
	ti := compositeTestableInstance{
		CurrentTime: 1000000,
	}

	config := CompositeConfig{
		Limiters: []Config{
			{
				MaxCalls: defaultMaxCalls,
				Interval: defaultInterval,
			},
			{
				MaxCalls: defaultMaxCalls + 1,
				Interval: defaultInterval * 3,
			},
		},
		TimeFunc: testTimeFunc(&ti.CurrentTime),
	}

	if configurer != nil {
		configurer(&config)
	}

	instance, err := NewComposite(&config)

	if t != nil {
		assert.NotNil(t, instance)
		assert.Nil(t, err)
	}

	ti.Instance = instance.(*compositeCallLimiterDefaultImpl)

	return &ti
}

func buildDefaultCompositeInstance(t *testing.T) *compositeTestableInstance {
	return buildCompositeInstance(t, nil)
}
