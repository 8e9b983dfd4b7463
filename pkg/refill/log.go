package refill

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var logger = atomic.NewPointer(zap.NewNop())

// SetLogger replaces the package logger. Passing nil disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l.Named("refill"))
}

func log() *zap.Logger {
	return logger.Load()
}
