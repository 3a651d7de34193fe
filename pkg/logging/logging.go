package logging

import (
	"github.com/go-logr/logr"
)

const (
	LEVEL_INFO  = 0
	LEVEL_DEBUG = 1
	LEVEL_TRACE = 2
)

// NewLogger wraps an injected logr.Logger for use by every parsing layer.
// A nil sink falls back to a discard logger rather than panicking.
func NewLogger(log logr.Logger) *Logger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Logger{log: log}
}

// DefaultLogger returns a logger that discards everything. Parse callers
// that want byte-level trace output should pass a logr.Logger through
// WithLogger, e.g. WithLogger(logging.NewSimpleLogger(...)).
func DefaultLogger() *Logger {
	//return &Logger{log: NewSimpleLogger(os.Stdout, LEVEL_TRACE, true)}
	return &Logger{log: logr.Discard()}
}

// Logger wraps logr.Logger with the three verbosity tiers dlis-kit's parse
// loops use: record/file milestones at Info, structural decisions at Debug,
// and byte-offset detail at Trace.
type Logger struct {
	log logr.Logger
}

// Log methods (minimizing footprint in the rest of the library)
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(LEVEL_DEBUG).Info(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log.V(LEVEL_TRACE).Info(msg, keysAndValues...)
}

func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(err, msg, keysAndValues...)
}
