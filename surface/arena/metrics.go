package arena

// Metrics is a point-in-time snapshot of arena usage.
type Metrics struct {
	// LiveBytes is the native memory held by outstanding blocks. Small
	// blocks count their full class size.
	LiveBytes int64
	// PeakBytes is the highest LiveBytes observed.
	PeakBytes int64

	SmallBlocks int // Outstanding heap blocks
	LargeBlocks int // Outstanding page mappings

	Slabs     int   // Slabs mapped by the heap
	SlabBytes int64 // Bytes mapped by the heap

	Allocations uint64
	Frees       uint64
	Retries     uint64 // Reclaim-and-retry passes
	Failures    uint64 // Requests that failed after any retry

	Destroyed bool
}

// Blocks returns the total number of outstanding blocks.
func (m Metrics) Blocks() int {
	return m.SmallBlocks + m.LargeBlocks
}
