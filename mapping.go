package fixedmem

import "runtime"

// mapping owns a block that lives outside the Go heap. The block is freed
// by release or, if the owner forgets, once the mapping becomes unreachable.
type mapping struct {
	buf     []byte
	free    func([]byte) error
	cleanup runtime.Cleanup
}

func newMapping(buf []byte, free func([]byte) error) *mapping {
	m := &mapping{buf: buf, free: free}
	if free != nil {
		m.cleanup = runtime.AddCleanup(m, func(buf []byte) { _ = free(buf) }, buf)
	}
	return m
}

// release frees the block now. It is safe on a nil mapping and frees the
// block at most once.
func (m *mapping) release() error {
	if m == nil || m.free == nil {
		return nil
	}
	m.cleanup.Stop()
	free := m.free
	m.free = nil
	return free(m.buf)
}
