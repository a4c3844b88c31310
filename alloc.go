package fixedmem

import (
	"reflect"
	"runtime"
	"unsafe"

	"github.com/pavanmanishd/fixedmem/invariant"
)

// Alloc returns a pointer to a zeroed T placed inside the block, aligned
// for T. T must not contain pointers: the garbage collector does not scan
// the block.
func Alloc[T any](a *LinearAllocator) (*T, error) {
	p, err := AllocUninitialized[T](a)
	if err != nil {
		return nil, err
	}
	var zero T
	*p = zero
	return p, nil
}

// AllocUninitialized is like Alloc but leaves whatever bytes the block held
// in place. The caller must initialize the value before reading it.
func AllocUninitialized[T any](a *LinearAllocator) (*T, error) {
	checkPointerFree[T]()
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return &zero, nil
	}
	b, err := a.AllocateAligned(size, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// AllocSlice returns a slice of n elements of T inside the block. The
// elements are not initialized. It returns nil for n <= 0.
func AllocSlice[T any](a *LinearAllocator, n int) ([]T, error) {
	checkPointerFree[T]()
	if n <= 0 {
		return nil, nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n), nil
	}
	invariant.Assert(n <= int(^uint(0)>>1)/elemSize, "fixedmem: slice of %d elements of %d bytes overflows", n, elemSize)
	b, err := a.AllocateAligned(elemSize*n, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// AllocSliceZeroed is like AllocSlice but zeroes the elements.
func AllocSliceZeroed[T any](a *LinearAllocator, n int) ([]T, error) {
	s, err := AllocSlice[T](a, n)
	if err != nil {
		return nil, err
	}
	clear(s)
	return s, nil
}

// PtrAndKeepAlive returns p and keeps a reachable until this call, so that
// a heap block is not collected while p is still in use.
func PtrAndKeepAlive[T any](a *LinearAllocator, p *T) *T {
	runtime.KeepAlive(a)
	return p
}

func checkPointerFree[T any]() {
	t := reflect.TypeFor[T]()
	invariant.Assert(pointerFree(t), "fixedmem: %s contains pointers and cannot live in an allocator block", t)
}

// pointerFree reports whether values of t hold no references the garbage
// collector would need to trace.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
