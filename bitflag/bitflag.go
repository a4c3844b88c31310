// Package bitflag implements a type-safe set of enumerators packed into one
// unsigned word.
//
// Enumerator v occupies bit 1<<v, so the enumeration must be a small
// sequential index (0, 1, 2, ...) rather than a list of bit patterns, and
// every enumerator must be below the bit width of its underlying type.
package bitflag

import (
	"iter"
	"math/bits"
	"strings"

	"github.com/pavanmanishd/fixedmem/enum"
	"github.com/pavanmanishd/fixedmem/invariant"
)

// Bitflag is a set of E values. The zero value is the empty set.
// Bitflags are values: every operation returns a new Bitflag.
type Bitflag[E enum.Unsigned] struct {
	value E
}

// Of returns the set holding only e.
func Of[E enum.Unsigned](e E) Bitflag[E] {
	return Bitflag[E]{value: bit(e)}
}

// FromValue wraps a raw bit mask.
func FromValue[E enum.Unsigned](raw E) Bitflag[E] {
	return Bitflag[E]{value: raw}
}

// All returns the set with every bit of E's width set.
func All[E enum.Unsigned]() Bitflag[E] {
	var zero E
	return Bitflag[E]{value: ^zero}
}

// None returns the empty set.
func None[E enum.Unsigned]() Bitflag[E] {
	return Bitflag[E]{}
}

// Disjunction returns the union of the given enumerators. With no arguments
// it returns None.
func Disjunction[E enum.Unsigned](es ...E) Bitflag[E] {
	f := None[E]()
	for _, e := range es {
		f = f.Or(Of(e))
	}
	return f
}

// Conjunction returns the intersection of the given enumerators. With no
// arguments it returns All.
func Conjunction[E enum.Unsigned](es ...E) Bitflag[E] {
	f := All[E]()
	for _, e := range es {
		f = f.And(Of(e))
	}
	return f
}

func bit[E enum.Unsigned](e E) E {
	width := enum.Width[E]()
	invariant.Assert(uint64(e) < uint64(width), "bitflag: enumerator %d does not fit in %d bits", uint64(e), width)
	return E(1) << uint(e)
}

// Value returns the raw bit mask.
func (f Bitflag[E]) Value() E { return f.value }

// HasAll reports whether every bit is set.
func (f Bitflag[E]) HasAll() bool { return f.value == All[E]().value }

// HasAny reports whether at least one bit is set.
func (f Bitflag[E]) HasAny() bool { return f.value != 0 }

// HasNone reports whether no bit is set.
func (f Bitflag[E]) HasNone() bool { return f.value == 0 }

// Has reports whether e is in the set.
func (f Bitflag[E]) Has(e E) bool { return f.value&bit(e) != 0 }

// Count returns the number of set bits.
func (f Bitflag[E]) Count() int { return bits.OnesCount64(uint64(f.value)) }

// Not returns the complement of f.
func (f Bitflag[E]) Not() Bitflag[E] { return Bitflag[E]{value: ^f.value} }

// And returns the bits set in both f and other.
func (f Bitflag[E]) And(other Bitflag[E]) Bitflag[E] { return Bitflag[E]{value: f.value & other.value} }

// Or returns the bits set in f or other.
func (f Bitflag[E]) Or(other Bitflag[E]) Bitflag[E] { return Bitflag[E]{value: f.value | other.value} }

// Xor returns the bits set in exactly one of f and other.
func (f Bitflag[E]) Xor(other Bitflag[E]) Bitflag[E] { return Bitflag[E]{value: f.value ^ other.value} }

// Shl returns f shifted left by n bits. Bits shifted past the width are lost.
func (f Bitflag[E]) Shl(n uint) Bitflag[E] { return Bitflag[E]{value: f.value << n} }

// Shr returns f shifted right by n bits.
func (f Bitflag[E]) Shr(n uint) Bitflag[E] { return Bitflag[E]{value: f.value >> n} }

// Set returns f with e added.
func (f Bitflag[E]) Set(e E) Bitflag[E] { return Bitflag[E]{value: f.value | bit(e)} }

// Clear returns f with e removed.
func (f Bitflag[E]) Clear(e E) Bitflag[E] { return Bitflag[E]{value: f.value &^ bit(e)} }

// Toggle returns f with e flipped.
func (f Bitflag[E]) Toggle(e E) Bitflag[E] { return Bitflag[E]{value: f.value ^ bit(e)} }

// Bits yields the enumerators in the set in ascending order.
func (f Bitflag[E]) Bits() iter.Seq[E] {
	return func(yield func(E) bool) {
		for v := uint64(f.value); v != 0; v &= v - 1 {
			if !yield(E(bits.TrailingZeros64(v))) {
				return
			}
		}
	}
}

// String renders the set as {A|B|C} using enum.ToString for each member.
func (f Bitflag[E]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for e := range f.Bits() {
		if !first {
			b.WriteByte('|')
		}
		first = false
		b.WriteString(enum.ToString(e))
	}
	b.WriteByte('}')
	return b.String()
}
