package uninit

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/pavanmanishd/fixedmem/invariant"
)

// DefaultConstruct default-constructs every slot of dst in order. If slot k
// fails, slots [0,k) are destroyed and dst is left fully uninitialized.
func DefaultConstruct[T any](dst []T) error {
	for i := range dst {
		if err := defaultAt(&dst[i]); err != nil {
			Destroy(dst[:i])
			return fmt.Errorf("uninit: construct slot %d: %w", i, err)
		}
	}
	return nil
}

// Fill copy-constructs value into every slot of dst, with the same rollback
// as DefaultConstruct.
func Fill[T any](dst []T, value T) error {
	for i := range dst {
		v, err := Clone(value)
		if err != nil {
			Destroy(dst[:i])
			return fmt.Errorf("uninit: construct slot %d: %w", i, err)
		}
		dst[i] = v
	}
	return nil
}

// Copy copy-constructs src into the leading slots of dst and returns the
// number of slots constructed. On failure the slots already constructed are
// destroyed and 0 is returned.
func Copy[T any](dst, src []T) (int, error) {
	invariant.Assert(len(src) <= len(dst), "uninit: copy of %d elements into %d slots", len(src), len(dst))
	for i := range src {
		v, err := Clone(src[i])
		if err != nil {
			Destroy(dst[:i])
			return 0, fmt.Errorf("uninit: construct slot %d: %w", i, err)
		}
		dst[i] = v
	}
	return len(src), nil
}

// CopySeq is Copy for a source whose length is not known up front. Yielding
// more elements than dst has slots is a precondition violation.
func CopySeq[T any](dst []T, src iter.Seq[T]) (int, error) {
	n := 0
	for v := range src {
		if n == len(dst) {
			Destroy(dst[:n])
			invariant.Fail("uninit: sequence longer than %d slots", len(dst))
		}
		c, err := Clone(v)
		if err != nil {
			Destroy(dst[:n])
			return 0, fmt.Errorf("uninit: construct slot %d: %w", n, err)
		}
		dst[n] = c
		n++
	}
	return n, nil
}

// Move transfers src into the leading slots of dst and resets the source
// slots to the zero value. Ownership moves with the value, so no destructor
// runs on either side. dst and src must not overlap.
func Move[T any](dst, src []T) int {
	invariant.Assert(len(src) <= len(dst), "uninit: move of %d elements into %d slots", len(src), len(dst))
	n := copy(dst, src)
	clear(src)
	return n
}

// ConstructAt constructs a T in the uninitialized slot p by running ctor on
// the zeroed slot. A nil ctor default-constructs. If ctor fails the slot is
// reset to the zero value.
func ConstructAt[T any](p *T, ctor func(*T) error) error {
	if ctor == nil {
		return defaultAt(p)
	}
	var zero T
	*p = zero
	if err := ctor(p); err != nil {
		*p = zero
		return err
	}
	return nil
}

// DestroyAt destroys the live element at p and leaves the slot uninitialized.
func DestroyAt[T any](p *T) {
	if hasDestroy[T]() {
		destroy(p)
	}
	var zero T
	*p = zero
}

// Destroy destroys every element of s in order.
func Destroy[T any](s []T) {
	if hasDestroy[T]() {
		for i := range s {
			destroy(&s[i])
		}
	}
	clear(s)
}

// destroy runs the Destroy hook of the element at p, found either on p or
// on the element itself. Nil pointers and nil interfaces have nothing to
// release.
func destroy[T any](p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
		return
	}
	v := any(*p)
	d, ok := v.(Destroyer)
	if !ok {
		return
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return
	}
	d.Destroy()
}

// Clone returns a copy of v, using its Clone method when it has one.
func Clone[T any](v T) (T, error) {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	if c, ok := any(&v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v, nil
}

func defaultAt[T any](p *T) error {
	var zero T
	*p = zero
	if in, ok := any(p).(Initializer); ok {
		if err := in.Init(); err != nil {
			*p = zero
			return err
		}
	}
	return nil
}
