package arena

import "github.com/joshuapare/filterhost/internal/vmem"

// PageSource supplies page-granular memory. Map must return zeroed memory.
type PageSource interface {
	Map(n int) ([]byte, error)
	Unmap(b []byte) error
}

// OSPages maps memory directly from the operating system.
type OSPages struct{}

// Map implements PageSource.
func (OSPages) Map(n int) ([]byte, error) { return vmem.Map(n) }

// Unmap implements PageSource.
func (OSPages) Unmap(b []byte) error { return vmem.Unmap(b) }
