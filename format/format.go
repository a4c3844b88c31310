// Package format turns values into human-readable strings for diagnostics.
//
// A type can customize its rendering in three ways, checked in order:
// a formatter registered with Register, a String method (fmt.Stringer) and
// an Error method. Anything else is rendered with the %v verb.
package format

import (
	"fmt"
	"iter"
	"reflect"
	"strings"
	"sync"
)

var (
	mu         sync.RWMutex
	formatters = map[reflect.Type]func(any) string{}
)

// Register installs fn as the formatter for values of type T, replacing any
// earlier registration. It is typically called from an init function.
func Register[T any](fn func(T) string) {
	mu.Lock()
	defer mu.Unlock()
	formatters[reflect.TypeFor[T]()] = func(v any) string { return fn(v.(T)) }
}

// Unregister removes the formatter for T, if any.
func Unregister[T any]() {
	mu.Lock()
	defer mu.Unlock()
	delete(formatters, reflect.TypeFor[T]())
}

// Lookup reports whether a formatter is registered for T.
func Lookup[T any]() (func(T) string, bool) {
	mu.RLock()
	fn, ok := formatters[reflect.TypeFor[T]()]
	mu.RUnlock()
	if !ok {
		return nil, false
	}
	return func(v T) string { return fn(v) }, true
}

// Sprint renders v.
func Sprint(v any) string {
	if v == nil {
		return "<nil>"
	}

	mu.RLock()
	fn, ok := formatters[reflect.TypeOf(v)]
	mu.RUnlock()
	if ok {
		return fn(v)
	}

	switch x := v.(type) {
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	return fmt.Sprintf("%v", v)
}

// Join renders every value of seq with Sprint and joins them with sep.
func Join[T any](seq iter.Seq[T], sep string) string {
	var b strings.Builder
	first := true
	for v := range seq {
		if !first {
			b.WriteString(sep)
		}
		first = false
		b.WriteString(Sprint(v))
	}
	return b.String()
}
