package logger

import "log"

// A LoggerOptFn is a functional option configuring a SlopLogger when constructing a new one.
type LoggerOptFn func(*SlopLogger)

// WithEnv sets the environment SlopLogger is operating in.
func WithEnv(env string) func(*SlopLogger) {
	return func(l *SlopLogger) {
		l.env = env
	}
}

// WithLevel sets the log level SlopLogger uses.
func WithLevel(level LogLevel) func(*SlopLogger) {
	return func(l *SlopLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger SlopLogger uses.
func WithLogger(log *log.Logger) func(*SlopLogger) {
	return func(l *SlopLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) func(*SlopLogger) {
	return func(l *SlopLogger) {
		l.skip = skip
	}
}
