// Package staticvec implements a fixed-capacity vector over manually managed
// slots.
//
// A Vector behaves like a slice that can never grow past the capacity chosen
// when it was created: its storage is allocated once and never reallocated,
// so pointers returned by Ptr stay valid until the element is shifted or
// destroyed. Elements are constructed in place when inserted and destroyed in
// place when erased, following the hooks of package uninit.
//
// Violating a precondition (index out of range, inserting into a full
// vector, an invalid range) panics through package invariant. Errors are only
// returned for element constructors that fail, and every operation leaves
// the vector exactly as it was when that happens.
//
// A Vector is not safe for concurrent use.
package staticvec

import (
	"iter"

	"github.com/pavanmanishd/fixedmem/format"
	"github.com/pavanmanishd/fixedmem/invariant"
	"github.com/pavanmanishd/fixedmem/uninit"
)

// Vector is a sequence of at most Cap() elements of type T.
// Elements [0, Len()) are live; the remaining slots are uninitialized.
type Vector[T any] struct {
	storage  uninit.Storage[T]
	size     int
	trivial  bool
	released bool
}

// New returns an empty vector with room for capacity elements.
func New[T any](capacity int) *Vector[T] {
	return &Vector[T]{
		storage: uninit.NewStorage[T](capacity),
		trivial: uninit.Trivial[T](),
	}
}

// NewN returns a vector holding n default-constructed elements.
func NewN[T any](capacity, n int) (*Vector[T], error) {
	v := New[T](capacity)
	invariant.Assert(n >= 0 && n <= capacity, "staticvec: size %d exceeds capacity %d", n, capacity)
	if err := uninit.DefaultConstruct(v.storage.Slots(0, n)); err != nil {
		return nil, err
	}
	v.size = n
	return v, nil
}

// NewFill returns a vector holding n copies of value.
func NewFill[T any](capacity, n int, value T) (*Vector[T], error) {
	v := New[T](capacity)
	invariant.Assert(n >= 0 && n <= capacity, "staticvec: size %d exceeds capacity %d", n, capacity)
	if err := uninit.Fill(v.storage.Slots(0, n), value); err != nil {
		return nil, err
	}
	v.size = n
	return v, nil
}

// FromSlice returns a vector holding copies of the elements of src.
func FromSlice[T any](capacity int, src []T) (*Vector[T], error) {
	v := New[T](capacity)
	invariant.Assert(len(src) <= capacity, "staticvec: size %d exceeds capacity %d", len(src), capacity)
	n, err := uninit.Copy(v.storage.Slots(0, len(src)), src)
	if err != nil {
		return nil, err
	}
	v.size = n
	return v, nil
}

// Collect returns a vector holding copies of the values yielded by seq.
// Yielding more than capacity values is a precondition violation.
func Collect[T any](capacity int, seq iter.Seq[T]) (*Vector[T], error) {
	v := New[T](capacity)
	n, err := uninit.CopySeq(v.storage.Slots(0, capacity), seq)
	if err != nil {
		return nil, err
	}
	v.size = n
	return v, nil
}

// Of returns a vector of the given capacity holding vs, which are moved in
// without being cloned.
func Of[T any](capacity int, vs ...T) *Vector[T] {
	v := New[T](capacity)
	v.Insert(0, vs...)
	return v
}

// Clone returns an independent copy of v with the same capacity.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	v.checkLive()
	c := New[T](v.Cap())
	n, err := uninit.Copy(c.storage.Slots(0, v.size), v.Slice())
	if err != nil {
		return nil, err
	}
	c.size = n
	return c, nil
}

// CopyFrom destroys the elements of v and replaces them with copies of the
// elements of other. If a copy fails v is left empty.
func (v *Vector[T]) CopyFrom(other *Vector[T]) error {
	v.checkLive()
	if v == other {
		return nil
	}
	invariant.Assert(other.size <= v.Cap(), "staticvec: size %d exceeds capacity %d", other.size, v.Cap())
	v.Clear()
	n, err := uninit.Copy(v.storage.Slots(0, other.size), other.Slice())
	if err != nil {
		return err
	}
	v.size = n
	return nil
}

// Move returns a vector with v's capacity that owns v's elements. v is left
// empty.
func (v *Vector[T]) Move() *Vector[T] {
	v.checkLive()
	m := New[T](v.Cap())
	m.size = uninit.Move(m.storage.Slots(0, v.size), v.storage.Slots(0, v.size))
	v.size = 0
	return m
}

// MoveFrom destroys the elements of v and takes ownership of the elements of
// other, leaving other empty.
func (v *Vector[T]) MoveFrom(other *Vector[T]) {
	v.checkLive()
	if v == other {
		return
	}
	invariant.Assert(other.size <= v.Cap(), "staticvec: size %d exceeds capacity %d", other.size, v.Cap())
	v.Clear()
	v.size = uninit.Move(v.storage.Slots(0, other.size), other.storage.Slots(0, other.size))
	other.size = 0
}

// Release destroys every element. Any later mutation of v panics.
func (v *Vector[T]) Release() {
	if v.released {
		return
	}
	v.Clear()
	v.released = true
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.size }

// Empty reports whether v holds no elements.
func (v *Vector[T]) Empty() bool { return v.size == 0 }

// Cap returns the fixed capacity.
func (v *Vector[T]) Cap() int { return v.storage.Cap() }

// MaxSize is the same as Cap.
func (v *Vector[T]) MaxSize() int { return v.storage.Cap() }

// Full reports whether no more elements fit.
func (v *Vector[T]) Full() bool { return v.size == v.storage.Cap() }

// At returns element i.
func (v *Vector[T]) At(i int) T {
	return *v.Ptr(i)
}

// Ptr returns a pointer to element i. It stays valid until an operation
// shifts or destroys the element.
func (v *Vector[T]) Ptr(i int) *T {
	invariant.Assert(i >= 0 && i < v.size, "staticvec: index %d out of range [0,%d)", i, v.size)
	return v.storage.At(i)
}

// Set replaces element i with x. The old element is destroyed.
func (v *Vector[T]) Set(i int, x T) {
	p := v.Ptr(i)
	uninit.DestroyAt(p)
	*p = x
}

// Front returns the first element.
func (v *Vector[T]) Front() T {
	invariant.Assert(v.size > 0, "staticvec: Front of empty vector")
	return *v.storage.At(0)
}

// Back returns the last element.
func (v *Vector[T]) Back() T {
	invariant.Assert(v.size > 0, "staticvec: Back of empty vector")
	return *v.storage.At(v.size - 1)
}

// Slice returns the live elements. The slice aliases the storage and has
// no spare capacity, so appending to it never writes into v.
func (v *Vector[T]) Slice() []T {
	return v.storage.Slots(0, v.size)
}

// Clear destroys every element.
func (v *Vector[T]) Clear() {
	live := v.storage.Slots(0, v.size)
	if v.trivial {
		clear(live)
	} else {
		uninit.Destroy(live)
	}
	v.size = 0
}

// String renders the elements as [a b c].
func (v *Vector[T]) String() string {
	return "[" + format.Join(v.Values(), " ") + "]"
}

func (v *Vector[T]) checkLive() {
	invariant.Assert(!v.released, "staticvec: use after Release()")
}
