// Package logging holds the zap logger shared by every package of the module.
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	nop     = zap.NewNop()
	current atomic.Pointer[zap.Logger]
)

// Logger returns the configured logger, or a no-op logger when none was set.
// It is safe to call concurrently with SetLogger.
func Logger() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}

	return nop
}

// SetLogger replaces the shared logger. A nil logger restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = nop
	}
	current.Store(l)
}
