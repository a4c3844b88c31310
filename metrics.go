package fixedmem

// MaxSize returns the size of the block in bytes.
func (a *LinearAllocator) MaxSize() int {
	return len(a.buf)
}

// InUse returns the number of bytes handed out since the last Reset,
// alignment padding included.
func (a *LinearAllocator) InUse() int {
	return int(a.offset)
}

// Available returns the number of bytes left in the block.
func (a *LinearAllocator) Available() int {
	return len(a.buf) - int(a.offset)
}

// Utilization returns the ratio of bytes in use to the block size (0.0 to
// 1.0). It returns 0 for an empty block.
func (a *LinearAllocator) Utilization() float64 {
	if len(a.buf) == 0 {
		return 0
	}
	return float64(a.offset) / float64(len(a.buf))
}

// Label returns the name given with WithLabel.
func (a *LinearAllocator) Label() string {
	return a.label
}

// Metrics returns a snapshot of allocator statistics.
func (a *LinearAllocator) Metrics() AllocatorMetrics {
	return AllocatorMetrics{
		Label:       a.label,
		MaxSize:     a.MaxSize(),
		InUse:       a.InUse(),
		Available:   a.Available(),
		Utilization: a.Utilization(),
	}
}

// AllocatorMetrics contains statistical information about an allocator.
type AllocatorMetrics struct {
	Label       string  // Name given with WithLabel
	MaxSize     int     // Block size in bytes
	InUse       int     // Bytes handed out, padding included
	Available   int     // Bytes left
	Utilization float64 // Ratio of used to total (0.0-1.0)
}
