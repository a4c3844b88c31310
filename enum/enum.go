// Package enum provides helpers for integer-backed enumerations.
//
// Go enumerations are named integer types with a block of constants. The
// helpers here give every such type a boolean and string conversion with a
// sensible default, which a type overrides by implementing Booler or
// fmt.Stringer (or by registering a formatter with the format package).
package enum

import (
	"fmt"
	"strconv"
	"unsafe"

	"github.com/pavanmanishd/fixedmem/format"
)

// Unsigned is satisfied by enumerations backed by an unsigned integer.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Signed is satisfied by enumerations backed by a signed integer.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Integer is satisfied by any integer-backed enumeration.
type Integer interface {
	Signed | Unsigned
}

// Booler lets an enumeration decide which of its values count as true.
type Booler interface {
	Bool() bool
}

// Underlying returns the raw value of e widened to 64 bits.
func Underlying[E Integer](e E) uint64 {
	return uint64(e)
}

// ToBool returns e.Bool() when E implements Booler and e != 0 otherwise.
func ToBool[E Integer](e E) bool {
	if b, ok := any(e).(Booler); ok {
		return b.Bool()
	}
	return e != 0
}

// ToString renders e with a formatter registered for E, its String method,
// or its decimal value, in that order.
func ToString[E Integer](e E) string {
	if fn, ok := format.Lookup[E](); ok {
		return fn(e)
	}
	if s, ok := any(e).(fmt.Stringer); ok {
		return s.String()
	}
	var zero E
	if zero-1 < zero {
		return strconv.FormatInt(int64(e), 10)
	}
	return strconv.FormatUint(uint64(e), 10)
}

// Width returns the number of bits in E's underlying type.
func Width[E Integer]() uint {
	var zero E
	return uint(unsafe.Sizeof(zero)) * 8
}
