// Package obslog is the runtime's logging facade, a thin wrapper over
// logrus in the style of the teacher's pkg/log facade (used throughout
// runsc/cli/main.go): callers log through Infof/Warningf/Debugf/Fatalf
// instead of calling logrus directly. The backend is a single package-level
// logrus logger; SetLevel is the only knob exposed.
package obslog

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// logger is the package-wide logger instance, writing to stderr at info
// level until SetLevel changes it.
var logger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}()

// SetLevel adjusts verbosity; pass logrus.DebugLevel to see per-yield
// scheduler tracing.
func SetLevel(level logrus.Level) {
	logger.SetLevel(level)
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Warningf logs at warn level.
func Warningf(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Fatalf logs at fatal level and terminates the process. Used only for
// the host-primitive failures spec.md §7 classifies as fatal; it must
// never be called from a code path a caller could reasonably want to
// recover from (pkg/kernel never calls this itself — see DESIGN.md).
func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}

// traceLimiter throttles high-frequency scheduler tracing (every Yield,
// every preemption tick) so a tight preemption loop cannot flood the log
// at more than a few hundred lines a second.
var traceLimiter = rate.NewLimiter(rate.Limit(200), 50)

// Tracef logs at debug level but silently drops the line if the trace
// rate limiter is exhausted. Used by the scheduler's hot path.
func Tracef(format string, args ...any) {
	if !traceLimiter.Allow() {
		return
	}
	logger.Debugf(format, args...)
}
