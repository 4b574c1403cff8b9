package gogate

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the basic configuration for a call limiter instance
type Config struct {

	// MaxCalls is the maximum number of admissions
	// that you want to allow in the specified time window.
	MaxCalls uint64

	// Interval is the width of the fixed time window.
	// The admission counter resets as soon as an acquisition finds
	// that a full Interval has elapsed since the last reset.
	Interval time.Duration

	// If SuppressRejections is true, a rejected call is silently
	// swallowed instead of signaled: Guard returns nil without running
	// the operation, and a Gate will not retry it.
	//
	// This mode exists for callers that prefer dropping work over
	// erroring and is a known foot-gun, since there is no way to tell
	// a dropped call from a successful one. Leave it false unless you
	// know you need it.
	SuppressRejections bool

	// Time function can be overridden to allow for easier testing
	// you should usually not override it.
	TimeFunc func() time.Time

	// you can pass your custom logger if you'd like to
	// but it's not required
	Logger Logger
}

// CompositeConfig holds the configuration for a call limiter
// combining multiple window policies into a single instance.
type CompositeConfig struct {

	// Limiters is a required parameter holding the configurations
	// of the single limiters you want to compose together.
	Limiters []Config

	// Time function can be overridden to allow for easier testing
	// you should usually not override it.
	TimeFunc func() time.Time

	// you can pass your custom logger if you'd like to
	// but it's not required
	Logger Logger
}

// New returns an instance of gogate.CallLimiter
// built with the specified configuration.
//
// A non-nil error is returned in case of invalid configuration.
func New(config *Config) (StandaloneCallLimiter, error) {
	effectiveLogger := config.Logger
	if effectiveLogger == nil {
		effectiveLogger = &defaultLogger{}
	} else {
		effectiveLogger.Info("binding provided logger to CallLimiter")
	}

	parsedConfig, err := validateConfiguration(config)
	if err != nil {
		return nil, err
	}

	out := callLimiterDefaultImpl{
		Config:   parsedConfig,
		TimeFunc: config.TimeFunc,
		Logger:   effectiveLogger,
	}

	if out.TimeFunc == nil {
		out.TimeFunc = time.Now
	}

	// the first window opens at build time
	out.WindowStart = out.TimeFunc()

	return &out, nil
}

// validateConfiguration will parse the user-provided configuration
// to the required format for runtime while also validating it.
func validateConfiguration(config *Config) (*callLimiterEffectiveConfig, error) {
	out := callLimiterEffectiveConfig{
		SuppressRejections: config.SuppressRejections,
	}

	if config.MaxCalls <= 0 {
		return nil, fmt.Errorf("MaxCalls should be greater than 0 (given: %v)", config.MaxCalls)
	}
	out.MaxCalls = config.MaxCalls

	if config.Interval <= 0 {
		return nil, fmt.Errorf("Interval should be a positive duration (given: %v)", config.Interval)
	}
	out.Interval = config.Interval

	return &out, nil
}

// NewComposite returns an instance of gogate.CallLimiter
// built with the specified configuration, combining multiple
// window policies into a single instance.
//
// A non-nil error is returned in case of invalid configuration.
func NewComposite(config *CompositeConfig) (CompositeCallLimiter, error) {
	effectiveLogger := config.Logger
	if effectiveLogger == nil {
		effectiveLogger = &defaultLogger{}
	} else {
		effectiveLogger.Info("binding provided logger to composite CallLimiter")
	}

	if len(config.Limiters) < 1 {
		return nil, errors.New("composite call limiter requires at least one component configuration")
	}

	out := compositeCallLimiterDefaultImpl{
		Logger: effectiveLogger,
	}

	timeFunc := config.TimeFunc
	if timeFunc == nil {
		timeFunc = time.Now
	}

	limiters := make([]*callLimiterDefaultImpl, len(config.Limiters))
	for i, config := range config.Limiters {
		if config.TimeFunc != nil {
			return nil, errors.New("cannot specify TimeFunc on a composed limiter. Please specify it on the parent limiter instead")
		}
		config.TimeFunc = timeFunc

		if config.Logger == nil {
			config.Logger = effectiveLogger
		}

		limiter, err := New(&config)
		if err != nil {
			return nil, fmt.Errorf("error building limiter at index %d: %w", i, err)
		}
		limiters[i] = limiter.(*callLimiterDefaultImpl)
	}

	out.Limiters = limiters

	return &out, nil
}
