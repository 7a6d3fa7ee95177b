package arena

import (
	"errors"
	"unsafe"
)

// DefaultSlabSize is the minimum amount of memory the heap requests from its
// PageSource at a time.
const DefaultSlabSize = 256 << 10

// heap is a segregated size-class allocator. Slabs obtained from a
// PageSource are carved front to back into class-sized blocks; freed blocks
// go onto their class's free list and are reused before any new carving.
//
// heap is not safe for concurrent use; Arena serializes access.
type heap struct {
	table    *sizeClassTable
	pages    PageSource
	slabSize int

	slabs [][]byte
	cur   []byte // uncarved tail of the newest slab

	free [][]unsafe.Pointer     // per-class free blocks
	live map[unsafe.Pointer]int // outstanding block -> class
}

func newHeap(config SizeClassConfig, pages PageSource, slabSize int) *heap {
	table := newSizeClassTable(config)
	if slabSize <= 0 {
		slabSize = DefaultSlabSize
	}
	return &heap{
		table:    table,
		pages:    pages,
		slabSize: slabSize,
		free:     make([][]unsafe.Pointer, table.numClasses),
		live:     make(map[unsafe.Pointer]int),
	}
}

// fits reports whether the heap has a class for an n-byte request.
func (h *heap) fits(n int) bool {
	return n <= h.table.maxBlock()
}

// alloc returns a zeroed block of at least n bytes, sliced to n, and the
// size of the class that backs it.
func (h *heap) alloc(n int) ([]byte, int, error) {
	class := h.table.getSizeClass(n)
	size := h.table.blockSize(class)

	if l := len(h.free[class]); l > 0 {
		p := h.free[class][l-1]
		h.free[class] = h.free[class][:l-1]
		blk := unsafe.Slice((*byte)(p), size)
		clear(blk)
		h.live[p] = class
		return blk[:n:n], size, nil
	}

	if len(h.cur) < size {
		if err := h.grow(size); err != nil {
			return nil, 0, err
		}
	}

	// Fresh slab memory is already zero.
	blk := h.cur[:size:size]
	h.cur = h.cur[size:]
	h.live[unsafe.Pointer(&blk[0])] = class
	return blk[:n:n], size, nil
}

// grow maps a new slab large enough for one block of size bytes.
// The tail of the previous slab is abandoned.
func (h *heap) grow(size int) error {
	slab, err := h.pages.Map(max(h.slabSize, size))
	if err != nil {
		return err
	}
	h.slabs = append(h.slabs, slab)
	h.cur = slab
	return nil
}

// release returns p to its class's free list and reports the class size.
func (h *heap) release(p unsafe.Pointer) (int, bool) {
	class, ok := h.live[p]
	if !ok {
		return 0, false
	}
	delete(h.live, p)
	h.free[class] = append(h.free[class], p)
	return h.table.blockSize(class), true
}

// size reports the class size backing an outstanding block.
func (h *heap) size(p unsafe.Pointer) (int, bool) {
	class, ok := h.live[p]
	if !ok {
		return 0, false
	}
	return h.table.blockSize(class), true
}

// outstanding reports the number and total class size of live blocks.
func (h *heap) outstanding() (int, int64) {
	var bytes int64
	for _, class := range h.live {
		bytes += int64(h.table.blockSize(class))
	}
	return len(h.live), bytes
}

func (h *heap) slabBytes() int64 {
	var n int64
	for _, s := range h.slabs {
		n += int64(len(s))
	}
	return n
}

// destroy unmaps every slab. Outstanding blocks become invalid.
func (h *heap) destroy() error {
	var errs []error
	for _, s := range h.slabs {
		if err := h.pages.Unmap(s); err != nil {
			errs = append(errs, err)
		}
	}
	h.slabs = nil
	h.cur = nil
	h.free = nil
	h.live = nil
	return errors.Join(errs...)
}
