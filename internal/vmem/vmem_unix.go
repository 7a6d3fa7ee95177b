//go:build unix

package vmem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Map reserves and commits n bytes of zeroed, private, read-write pages.
func Map(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("vmem: invalid size %d", n)
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("vmem: mmap %d bytes: %w", n, err)
	}
	return data, nil
}

// Unmap returns pages obtained from Map to the OS.
func Unmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	err := unix.Munmap(b)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	if err != nil {
		return fmt.Errorf("vmem: munmap: %w", err)
	}
	return nil
}
