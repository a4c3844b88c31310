// Package fixedmem provides fixed-capacity building blocks for code that
// must not grow memory behind the caller's back.
//
// # Overview
//
// The root package holds LinearAllocator, a bump allocator over one block
// of bytes fixed at construction. The subpackages cover the rest:
//
//   - staticvec: a vector with a capacity fixed at construction and
//     in-place construction, insertion and erasure of elements
//   - uninit: construction and destruction of elements in reserved slots,
//     with rollback when a constructor fails
//   - bitflag: a set of enum values packed into one unsigned word
//   - enum: helpers for integer-backed enum types
//   - format: per-type string formatting
//   - invariant: precondition checks that log and panic
//
// # Basic Usage
//
//	a := fixedmem.NewLinearAllocator(4096)
//	defer a.Release()
//
//	// Allocate raw bytes
//	buf, err := a.Allocate(1024)
//
//	// Allocate typed values
//	p, err := fixedmem.Alloc[Header](a)
//	ids, err := fixedmem.AllocSlice[uint32](a, 100)
//
//	// Reclaim everything at once
//	a.Reset()
//
// # Memory Layout
//
// Allocate hands out exactly the requested number of bytes right after the
// previous request. AllocateAligned and the typed helpers pad the offset
// first so the result is aligned. NewMappedLinearAllocator places the block
// in an anonymous mapping outside the Go heap; typed helpers therefore
// refuse types that contain pointers.
//
// # Errors
//
// Running out of space is an ordinary error wrapping ErrOutOfMemory.
// Misuse (a negative size, use after Release) is a programming error and
// panics with an *invariant.Violation.
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("In use: %d of %d bytes\n", m.InUse, m.MaxSize)
package fixedmem
