// Package diag holds the process logger used for advisory diagnostics and
// for reporting faults recovered inside the frame loop.
//
// The default logger discards everything. Binaries install a real one with
// [SetLogger]; tests can install zaptest or an observer core.
package diag

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// L returns the current logger.
func L() *zap.Logger {
	return logger.Load()
}

// SetLogger replaces the process logger. A nil logger restores the no-op one.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Advise reports a non-fatal condition such as a normalized NaN or a
// suspicious spring configuration.
func Advise(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

// Recover must be deferred directly. It swallows a panic and logs it against
// component, so that one misbehaving callback cannot break the caller's loop.
func Recover(component string, fields ...zap.Field) {
	if r := recover(); r != nil {
		report(component, r, fields)
	}
}

// Call runs fn and reports whether it returned without panicking.
func Call(component string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			report(component, r, nil)
			ok = false
		}
	}()
	fn()
	return true
}

func report(component string, r any, fields []zap.Field) {
	fields = append([]zap.Field{zap.String("component", component), zap.Any("panic", r)}, fields...)
	L().Error("recovered panic", fields...)
}
