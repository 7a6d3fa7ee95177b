//go:build !unix && !windows

package vmem

import "fmt"

// Map falls back to the Go heap when OS page mapping is not available.
func Map(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("vmem: invalid size %d", n)
	}
	return make([]byte, n), nil
}

// Unmap is a no-op; the garbage collector reclaims fallback memory.
func Unmap(b []byte) error { return nil }
