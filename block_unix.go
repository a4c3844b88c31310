//go:build unix

package fixedmem

import "golang.org/x/sys/unix"

// mapBlock maps size bytes of anonymous private memory. A zero size maps
// nothing, since mmap rejects empty mappings.
func mapBlock(size int) ([]byte, func([]byte) error, error) {
	if size == 0 {
		return []byte{}, nil, nil
	}
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	return buf, unix.Munmap, nil
}
