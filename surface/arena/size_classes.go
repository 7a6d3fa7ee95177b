package arena

import (
	"math"

	"github.com/joshuapare/filterhost/pkg/types"
)

// heapAlign is the alignment of every heap block. Class sizes are kept at
// multiples of it so blocks carved back to back stay aligned.
const heapAlign = 16

// SizeClassConfig defines the small heap's size class strategy.
type SizeClassConfig struct {
	// Name for this configuration (for benchmarking)
	Name string

	// Small allocation settings (linear increments)
	SmallMin       int // Smallest block size
	SmallMax       int // Max for linear increments
	SmallIncrement int // Increment between linear classes

	// Medium allocation settings (geometric growth)
	MediumMax    int     // Largest block size the heap serves
	GrowthFactor float64 // Growth between medium classes
}

// Predefined configurations.
var (
	// ConfigDefault: 16-512 step 16 (32 classes) + 512-64K growth 1.25 (~22 classes).
	ConfigDefault = SizeClassConfig{
		Name:           "Default",
		SmallMin:       16,
		SmallMax:       512,
		SmallIncrement: 16,
		MediumMax:      types.LargeBlockThreshold,
		GrowthFactor:   1.25,
	}

	// ConfigCoarse: fewer buckets, more internal fragmentation.
	// 32-512 step 32 (16 classes) + 512-64K doubling (7 classes).
	ConfigCoarse = SizeClassConfig{
		Name:           "Coarse",
		SmallMin:       32,
		SmallMax:       512,
		SmallIncrement: 32,
		MediumMax:      types.LargeBlockThreshold,
		GrowthFactor:   2.0,
	}
)

// sizeClassTable holds the computed block size of each class.
type sizeClassTable struct {
	config     SizeClassConfig
	sizes      []int // Block size for each class, ascending
	numClasses int
}

// newSizeClassTable computes class block sizes from config.
func newSizeClassTable(config SizeClassConfig) *sizeClassTable {
	table := &sizeClassTable{
		config: config,
		sizes:  make([]int, 0, 64),
	}

	// Phase 1: linear increments
	for size := alignHeap(config.SmallMin); size <= config.SmallMax; size += alignHeap(config.SmallIncrement) {
		table.sizes = append(table.sizes, size)
	}

	// Phase 2: geometric growth up to MediumMax
	size := config.SmallMax
	if n := len(table.sizes); n > 0 {
		size = table.sizes[n-1]
	}
	for size < config.MediumMax {
		next := alignHeap(int(math.Ceil(float64(size) * config.GrowthFactor)))
		if next <= size {
			next = size + heapAlign // Ensure progress
		}
		if next > config.MediumMax {
			next = alignHeap(config.MediumMax)
		}
		table.sizes = append(table.sizes, next)
		size = next
	}

	table.numClasses = len(table.sizes)
	return table
}

// getSizeClass returns the smallest class whose block fits size.
// Returns table.numClasses when no class is large enough.
func (t *sizeClassTable) getSizeClass(size int) int {
	lo, hi := 0, t.numClasses
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if t.sizes[mid] < size {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// blockSize returns the block size of class.
func (t *sizeClassTable) blockSize(class int) int {
	return t.sizes[class]
}

// maxBlock returns the largest block the table serves.
func (t *sizeClassTable) maxBlock() int {
	if t.numClasses == 0 {
		return 0
	}
	return t.sizes[t.numClasses-1]
}

// String returns a human-readable description of the size class table.
func (t *sizeClassTable) String() string {
	return t.config.Name
}

func alignHeap(n int) int {
	if n < heapAlign {
		return heapAlign
	}
	return (n + heapAlign - 1) &^ (heapAlign - 1)
}
