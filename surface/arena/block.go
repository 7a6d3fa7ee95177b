package arena

import (
	"sync/atomic"
	"unsafe"

	"github.com/joshuapare/filterhost/internal/buf"
	"github.com/joshuapare/filterhost/internal/logger"
	"github.com/joshuapare/filterhost/pkg/types"
)

// Block exclusively owns one native allocation. It cannot be copied into a
// second owner; pass the *Block.
type Block struct {
	arena    *Arena
	data     []byte
	strategy Strategy
	disposed atomic.Bool
}

// NewBlock allocates n zeroed bytes owned by the returned Block.
func (a *Arena) NewBlock(n int) (*Block, error) {
	if n <= 0 {
		return nil, errInvalidSize("new block", n)
	}
	data, strategy, err := a.Allocate(n)
	if err != nil {
		return nil, err
	}
	return &Block{arena: a, data: data, strategy: strategy}, nil
}

// Pointer returns the base address of the block.
func (b *Block) Pointer() (unsafe.Pointer, error) {
	if b.disposed.Load() {
		return nil, errDisposed("pointer")
	}
	return unsafe.Pointer(&b.data[0]), nil
}

// Bytes returns the block's memory. The slice must not be used after
// Release.
func (b *Block) Bytes() ([]byte, error) {
	if b.disposed.Load() {
		return nil, errDisposed("bytes")
	}
	return b.data, nil
}

// Len returns the requested size of the block.
func (b *Block) Len() (int, error) {
	if b.disposed.Load() {
		return 0, errDisposed("len")
	}
	return len(b.data), nil
}

// Strategy reports which backend owns the memory.
func (b *Block) Strategy() Strategy { return b.strategy }

// Released reports whether Release has run.
func (b *Block) Released() bool { return b.disposed.Load() }

// Release frees the memory. Calling it more than once is a no-op.
func (b *Block) Release() {
	if err := b.release(); err != nil {
		logger.Warn("arena: release failed", "strategy", b.strategy.String(), "err", err)
	}
}

// Close is Release with the free error reported, for io.Closer callers.
func (b *Block) Close() error {
	return b.release()
}

func (b *Block) release() error {
	if !b.disposed.CompareAndSwap(false, true) {
		return nil
	}
	data := b.data
	b.data = nil
	p := unsafe.Pointer(&data[0])
	if b.strategy == StrategyLarge {
		return b.arena.FreeLarge(p, len(data))
	}
	return b.arena.Free(p)
}

// WithBlock allocates an n-byte block, passes it to fn and releases it on
// every exit path, including a panic in fn.
func WithBlock(a *Arena, n int, fn func(*Block) error) error {
	b, err := a.NewBlock(n)
	if err != nil {
		return err
	}
	defer b.Release()
	return fn(b)
}

// View reinterprets a block as a slice of T. T must not contain Go
// pointers; the memory is invisible to the garbage collector.
func View[T any](b *Block) ([]T, error) {
	data, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return nil, types.Errorf(types.ErrKindInvalidArgument, "arena: view of zero-size type")
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), len(data)/size), nil
}

// Scratch allocates a block sized for count values of T and returns it with
// its typed view. The caller releases the block.
func Scratch[T any](a *Arena, count int) (*Block, []T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	total, ok := buf.MulOverflowSafe(count, size)
	if count <= 0 || size == 0 || !ok {
		return nil, nil, errInvalidSize("scratch", count)
	}
	b, err := a.NewBlock(total)
	if err != nil {
		return nil, nil, err
	}
	v, err := View[T](b)
	if err != nil {
		b.Release()
		return nil, nil, err
	}
	return b, v[:count], nil
}
