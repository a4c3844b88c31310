package fixedmem

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/pavanmanishd/fixedmem/invariant"
	"github.com/pavanmanishd/fixedmem/logging"
)

// ErrOutOfMemory is returned when a request does not fit in the bytes left
// in the block.
var ErrOutOfMemory = errors.New("fixedmem: out of memory")

// LinearAllocator hands out consecutive byte ranges from one fixed block.
// Individual ranges are never freed; Reset reclaims the whole block at once.
//
// A LinearAllocator must not be copied. Use Move to transfer ownership of
// the block. It is not safe for concurrent use.
type LinearAllocator struct {
	noCopy noCopy

	buf      []byte
	offset   uintptr
	block    *mapping
	released bool

	label string
	log   *logrus.Entry
}

// NewLinearAllocator returns an allocator over a heap block of size bytes.
func NewLinearAllocator(size int, opts ...Option) *LinearAllocator {
	invariant.Assert(size >= 0, "fixedmem: negative allocator size %d", size)
	a := newAllocator(opts)
	a.buf = make([]byte, size)
	a.log.WithField("size", size).Debug("heap block allocated")
	return a
}

// NewMappedLinearAllocator returns an allocator over an anonymous memory
// mapping of size bytes. The block lives outside the Go heap, so the garbage
// collector never scans it. Release returns it to the OS; an allocator that
// is dropped without Release has its block unmapped once it is collected.
// Slices handed out do not keep the block alive, so the allocator must stay
// reachable while they are in use (see PtrAndKeepAlive). On platforms
// without mmap the block falls back to the heap.
func NewMappedLinearAllocator(size int, opts ...Option) (*LinearAllocator, error) {
	invariant.Assert(size >= 0, "fixedmem: negative allocator size %d", size)
	a := newAllocator(opts)
	buf, free, err := mapBlock(size)
	if err != nil {
		return nil, fmt.Errorf("fixedmem: map %d bytes: %w", size, err)
	}
	a.buf, a.block = buf, newMapping(buf, free)
	a.log.WithField("size", size).Debug("mapped block allocated")
	return a, nil
}

func newAllocator(opts []Option) *LinearAllocator {
	a := &LinearAllocator{}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logging.For("fixedmem")
	}
	if a.label != "" {
		a.log = a.log.WithField("label", a.label)
	}
	return a
}

// Allocate reserves exactly n bytes and returns them. The bytes keep
// whatever the block held before: they are zero only for a fresh block.
// It returns nil for n == 0 and an error wrapping ErrOutOfMemory when n
// exceeds Available.
func (a *LinearAllocator) Allocate(n int) ([]byte, error) {
	a.checkLive()
	invariant.Assert(n >= 0, "fixedmem: negative allocation size %d", n)
	if n == 0 {
		return nil, nil
	}
	return a.bump(a.offset, n)
}

// AllocateAligned is like Allocate but first pads the offset so that the
// returned slice starts at an address that is a multiple of align. align
// must be a power of two. The padding counts toward InUse.
func (a *LinearAllocator) AllocateAligned(n, align int) ([]byte, error) {
	a.checkLive()
	invariant.Assert(n >= 0, "fixedmem: negative allocation size %d", n)
	invariant.Assert(align > 0 && align&(align-1) == 0, "fixedmem: alignment %d is not a power of two", align)
	if n == 0 {
		return nil, nil
	}
	return a.bump(a.alignOffset(uintptr(align)), n)
}

// Deallocate is a no-op: individual ranges are never returned to a linear
// allocator. It exists so callers written against a general allocator can
// release memory unconditionally.
func (a *LinearAllocator) Deallocate([]byte) {}

// Reset makes the whole block available again. Every slice previously
// returned by the allocator must no longer be used.
func (a *LinearAllocator) Reset() {
	a.checkLive()
	a.offset = 0
	a.log.Debug("allocator reset")
}

// Move transfers the block to a new allocator and leaves a empty: a keeps
// working but has a size of zero, so every non-empty request fails with
// ErrOutOfMemory.
func (a *LinearAllocator) Move() *LinearAllocator {
	a.checkLive()
	b := &LinearAllocator{
		buf:    a.buf,
		offset: a.offset,
		block:  a.block,
		label:  a.label,
		log:    a.log,
	}
	a.buf, a.offset, a.block = nil, 0, nil
	return b
}

// Release returns the block to its owner: the OS for a mapped block, the
// garbage collector otherwise. Any later use of the allocator panics.
// Calling Release more than once is a no-op.
func (a *LinearAllocator) Release() error {
	if a.released {
		return nil
	}
	block := a.block
	a.buf, a.offset, a.block = nil, 0, nil
	a.released = true
	a.log.Debug("allocator released")
	if err := block.release(); err != nil {
		return fmt.Errorf("fixedmem: release block: %w", err)
	}
	return nil
}

// bump hands out n bytes starting at off, which must not be below the
// current offset.
func (a *LinearAllocator) bump(off uintptr, n int) ([]byte, error) {
	if off > uintptr(len(a.buf)) || uintptr(n) > uintptr(len(a.buf))-off {
		avail := a.Available()
		a.log.WithFields(logrus.Fields{
			"requested": n,
			"available": avail,
		}).Debug("out of memory")
		return nil, fmt.Errorf("fixedmem: allocate %d bytes with %d available: %w", n, avail, ErrOutOfMemory)
	}
	a.offset = off + uintptr(n)
	return a.buf[off:a.offset:a.offset], nil
}

// alignOffset returns the smallest offset at or after the current one whose
// address is a multiple of align.
func (a *LinearAllocator) alignOffset(align uintptr) uintptr {
	if len(a.buf) == 0 {
		return a.offset
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
	mask := align - 1
	return ((base + a.offset + mask) &^ mask) - base
}

func (a *LinearAllocator) checkLive() {
	invariant.Assert(!a.released, "fixedmem: use after Release()")
}

// noCopy may be embedded into structs which must not be copied after first
// use. It is recognized by the copylocks check of go vet.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
