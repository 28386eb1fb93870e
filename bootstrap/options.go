package bootstrap

import (
	"os"
	"syscall"
	"time"

	"github.com/kbukum/catalogq/logger"
)

// DefaultGracefulTimeout bounds the whole stop phase unless WithGracefulTimeout says otherwise.
const DefaultGracefulTimeout = 15 * time.Second

// Option tunes NewApp. Options do not depend on the config type.
type Option func(*settings)

type settings struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	signals         []os.Signal
}

func newSettings(opts []Option) settings {
	s := settings{
		gracefulTimeout: DefaultGracefulTimeout,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger uses l instead of initializing the global logger from the
// config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithGracefulTimeout bounds the stop phase. Non-positive values keep the default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.gracefulTimeout = d
		}
	}
}

// WithSignals replaces the signals that cancel a task. An empty list keeps
// SIGINT and SIGTERM.
func WithSignals(sigs ...os.Signal) Option {
	return func(s *settings) {
		if len(sigs) > 0 {
			s.signals = sigs
		}
	}
}
