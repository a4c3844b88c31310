// Package uninit manages blocks of element slots whose lifetimes are driven
// by hand, and the bulk construction algorithms that fill them.
//
// A slot is either live (it holds a constructed T) or uninitialized (it holds
// the zero value of T and must not be read as a T). Nothing in a Storage runs
// a constructor or a destructor on its own: the owner decides which slots are
// live and calls the algorithms in this package to change that.
//
// Element types opt into lifecycle behaviour through three hooks:
//
//   - Initializer: run after a slot is zeroed to default-construct it.
//   - Cloner: used instead of plain assignment to copy-construct.
//   - Destroyer: run before a live slot is returned to the zero value.
//
// Types that implement neither Initializer nor Destroyer are trivial and the
// algorithms skip the per-slot hook calls for them.
package uninit

import (
	"reflect"

	"github.com/pavanmanishd/fixedmem/invariant"
)

// Initializer is implemented by *T for element types that need more than the
// zero value to be default-constructed.
type Initializer interface {
	Init() error
}

// Destroyer is implemented by element types (or their pointers) that hold
// resources which must be released when the element is destroyed. For
// pointer and interface element types the hook is looked up on the stored
// value, and nil values are skipped.
type Destroyer interface {
	Destroy()
}

// Cloner is implemented by element types whose copy is deeper than an
// assignment.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Storage is a fixed block of slots sized for a number of elements of T.
type Storage[T any] struct {
	slots []T
}

// NewStorage returns a block of n uninitialized slots.
func NewStorage[T any](n int) Storage[T] {
	invariant.Assert(n >= 0, "uninit: negative storage size %d", n)
	return Storage[T]{slots: make([]T, n)}
}

// Cap returns the number of slots.
func (s *Storage[T]) Cap() int { return len(s.slots) }

// At returns a pointer to slot i. The slot may be uninitialized.
func (s *Storage[T]) At(i int) *T {
	invariant.Assert(i >= 0 && i < len(s.slots), "uninit: slot %d out of range [0,%d)", i, len(s.slots))
	return &s.slots[i]
}

// Slots returns slots [i,j) with their capacity clipped to j.
func (s *Storage[T]) Slots(i, j int) []T {
	invariant.Assert(0 <= i && i <= j && j <= len(s.slots), "uninit: slot range [%d,%d) out of range [0,%d)", i, j, len(s.slots))
	return s.slots[i:j:j]
}

// Trivial reports whether T needs no construction or destruction hooks.
func (s *Storage[T]) Trivial() bool { return Trivial[T]() }

// Trivial reports whether T implements neither Initializer nor Destroyer.
func Trivial[T any]() bool {
	return !hasInit[T]() && !hasDestroy[T]()
}

func hasInit[T any]() bool {
	_, ok := any((*T)(nil)).(Initializer)
	return ok
}

var destroyerType = reflect.TypeFor[Destroyer]()

// hasDestroy reports whether some value of T may need a Destroy call. An
// interface T can hold a Destroyer whatever its method set.
func hasDestroy[T any]() bool {
	t := reflect.TypeFor[T]()
	return t.Kind() == reflect.Interface || t.Implements(destroyerType) || reflect.PointerTo(t).Implements(destroyerType)
}
