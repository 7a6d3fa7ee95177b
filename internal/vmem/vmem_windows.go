//go:build windows

package vmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Map reserves and commits n bytes of zeroed read-write pages.
func Map(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("vmem: invalid size %d", n)
	}
	addr, err := windows.VirtualAlloc(0, uintptr(n), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("vmem: VirtualAlloc %d bytes: %w", n, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n), nil
}

// Unmap returns pages obtained from Map to the OS.
func Unmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	// MEM_RELEASE requires a zero size and the base address of the reservation.
	if err := windows.VirtualFree(uintptr(unsafe.Pointer(&b[0])), 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("vmem: VirtualFree: %w", err)
	}
	return nil
}
