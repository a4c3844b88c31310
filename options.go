package fixedmem

import "github.com/sirupsen/logrus"

// Option configures a LinearAllocator.
type Option func(*LinearAllocator)

// WithLabel names the allocator in its log entries.
func WithLabel(label string) Option {
	return func(a *LinearAllocator) {
		a.label = label
	}
}

// WithLogger sends the allocator's diagnostics to entry instead of the
// shared package logger.
func WithLogger(entry *logrus.Entry) Option {
	return func(a *LinearAllocator) {
		a.log = entry
	}
}
