// Package logging holds the logger shared by the fixedmem packages.
//
// Nothing here is on a hot path: the containers never log, the allocator logs
// lifecycle events at debug level and precondition violations are logged at
// error level right before the process panics.
package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.RWMutex
	logger = newDefault()
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// Logger returns the current package logger.
func Logger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the package logger. A nil logger restores the default.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newDefault()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// For returns an entry tagged with the given component name.
func For(component string) *logrus.Entry {
	return Logger().WithField("component", component)
}
