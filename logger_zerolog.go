package gogate

import "github.com/rs/zerolog"

// NewZerologAdapter returns a Logger forwarding to the given
// zerolog.Logger, so that services already on structured logging can
// capture limiter and gate events without writing their own adapter.
func NewZerologAdapter(logger zerolog.Logger) Logger {
	return &zerologAdapter{logger: logger}
}

type zerologAdapter struct {
	logger zerolog.Logger
}

func (l *zerologAdapter) Debug(text string) {
	l.logger.Debug().Msg(text)
}
func (l *zerologAdapter) Info(text string) {
	l.logger.Info().Msg(text)
}
func (l *zerologAdapter) Warning(text string) {
	l.logger.Warn().Msg(text)
}
func (l *zerologAdapter) Error(text string) {
	l.logger.Error().Msg(text)
}
