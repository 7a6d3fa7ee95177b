package arena

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"unsafe"

	"github.com/joshuapare/filterhost/internal/logger"
	"github.com/joshuapare/filterhost/pkg/types"
)

// Options configures an Arena. The zero value is ready to use.
type Options struct {
	// Policy routes requests and controls the out-of-memory retry.
	// A zero Policy selects DefaultPolicy.
	Policy Policy

	// SizeClasses shapes the small heap. Zero selects ConfigDefault.
	SizeClasses SizeClassConfig

	// SlabSize is the minimum heap growth step. Zero selects DefaultSlabSize.
	SlabSize int

	// Pages backs both the heap slabs and large blocks. Nil selects OSPages.
	Pages PageSource

	// Reporter, if set, is told about every native allocation and free.
	Reporter PressureReporter

	// Reclaim runs before the single out-of-memory retry.
	// Nil runs a full GC and returns freed memory to the OS.
	Reclaim func()
}

// Arena owns a small-block heap and a set of page mappings.
// It is safe for concurrent use.
type Arena struct {
	mu sync.Mutex

	policy   Policy
	classes  SizeClassConfig
	slabSize int
	pages    PageSource
	reporter PressureReporter
	reclaim  func()
	trace    bool

	heap      *heap                     // created lazily
	large     map[unsafe.Pointer][]byte // outstanding page mappings
	destroyed bool

	live, peak       int64
	allocs, frees    uint64
	retries, failure uint64
}

// New creates an arena. No memory is requested until the first allocation.
func New(opts Options) *Arena {
	if opts.Policy.LargeThreshold <= 0 {
		opts.Policy = DefaultPolicy
	}
	if opts.SizeClasses.MediumMax <= 0 {
		opts.SizeClasses = ConfigDefault
	}
	if opts.Pages == nil {
		opts.Pages = OSPages{}
	}
	if opts.Reclaim == nil {
		opts.Reclaim = reclaimOS
	}
	return &Arena{
		policy:   opts.Policy,
		classes:  opts.SizeClasses,
		slabSize: opts.SlabSize,
		pages:    opts.Pages,
		reporter: opts.Reporter,
		reclaim:  opts.Reclaim,
		trace:    logger.AllocTrace(),
		large:    make(map[unsafe.Pointer][]byte),
	}
}

func reclaimOS() {
	runtime.GC()
	debug.FreeOSMemory()
}

// Policy returns the arena's routing policy.
func (a *Arena) Policy() Policy { return a.policy }

// Init creates the small heap eagerly. Calling it is optional.
// Like every allocation, it panics after Destroy.
func (a *Arena) Init() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mustBeLive()
	a.heapLocked()
}

// Allocate returns n zeroed bytes and the strategy that served them.
// The memory stays valid until freed with the routine matching the strategy.
func (a *Arena) Allocate(n int) ([]byte, Strategy, error) {
	if n <= 0 {
		return nil, StrategySmall, errInvalidSize("allocate", n)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.mustBeLive()

	if a.policy.StrategyFor(n) == StrategyLarge {
		data, err := a.allocLargeLocked(n)
		return data, StrategyLarge, err
	}

	h := a.heapLocked()
	if !h.fits(n) {
		// Threshold above the largest class; the page path still serves it.
		data, err := a.allocLargeLocked(n)
		return data, StrategyLarge, err
	}

	var (
		data []byte
		size int
	)
	err := a.withRetry(n, func() error {
		var err error
		data, size, err = h.alloc(n)
		return err
	})
	if err != nil {
		return nil, StrategySmall, err
	}
	a.account(int64(size))
	return data, StrategySmall, nil
}

// AllocateLarge returns n zeroed bytes mapped directly from OS pages,
// regardless of the policy threshold. Free it with FreeLarge.
func (a *Arena) AllocateLarge(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errInvalidSize("allocate large", n)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.mustBeLive()
	return a.allocLargeLocked(n)
}

func (a *Arena) allocLargeLocked(n int) ([]byte, error) {
	var data []byte
	err := a.withRetry(n, func() error {
		var err error
		data, err = a.pages.Map(n)
		return err
	})
	if err != nil {
		return nil, err
	}
	data = data[:n:n]
	a.large[unsafe.Pointer(&data[0])] = data
	a.account(int64(n))
	if a.trace {
		logger.Debug("arena: map", "bytes", n, "addr", fmt.Sprintf("%p", &data[0]))
	}
	return data, nil
}

// Free returns a small block to the heap.
func (a *Arena) Free(p unsafe.Pointer) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return types.ErrArenaDestroyed
	}
	if a.heap == nil {
		return errUnknownBlock("free", p)
	}
	size, ok := a.heap.release(p)
	if !ok {
		return errUnknownBlock("free", p)
	}
	a.unaccount(int64(size))
	return nil
}

// FreeLarge unmaps a block returned by AllocateLarge or by Allocate with
// StrategyLarge. n must equal the requested size.
func (a *Arena) FreeLarge(p unsafe.Pointer, n int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return types.ErrArenaDestroyed
	}
	data, ok := a.large[p]
	if !ok {
		return errUnknownBlock("free large", p)
	}
	if len(data) != n {
		return types.Errorf(types.ErrKindInvalidArgument,
			"arena: free large: size %d does not match mapping of %d bytes", n, len(data))
	}
	delete(a.large, p)
	a.unaccount(int64(n))
	if a.trace {
		logger.Debug("arena: unmap", "bytes", n, "addr", fmt.Sprintf("%p", p))
	}
	return a.pages.Unmap(data)
}

// BlockSize reports the native size backing an outstanding block: the class
// size for small blocks, the mapping length for large ones.
func (a *Arena) BlockSize(p unsafe.Pointer) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if data, ok := a.large[p]; ok {
		return len(data), true
	}
	if a.heap == nil {
		return 0, false
	}
	return a.heap.size(p)
}

// Copy copies n bytes from src to dst. Regions may overlap.
// No bounds are checked.
func Copy(dst, src unsafe.Pointer, n int) {
	if n <= 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}

// Destroy unmaps every slab and page mapping. It reports types.ErrLeaked
// when blocks were still outstanding. Destroying twice is a no-op.
func (a *Arena) Destroy() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return nil
	}
	a.destroyed = true

	var (
		errs   []error
		leaked = len(a.large)
		bytes  int64
	)
	for _, data := range a.large {
		bytes += int64(len(data))
		if err := a.pages.Unmap(data); err != nil {
			errs = append(errs, err)
		}
	}
	a.large = nil

	if a.heap != nil {
		n, b := a.heap.outstanding()
		leaked += n
		bytes += b
		if err := a.heap.destroy(); err != nil {
			errs = append(errs, err)
		}
		a.heap = nil
	}

	if bytes > 0 {
		a.live -= bytes
		if a.reporter != nil {
			a.reporter.RemovePressure(bytes)
		}
	}
	if leaked > 0 {
		logger.Error("arena: blocks leaked at destroy", "blocks", leaked, "bytes", bytes)
		errs = append(errs, errLeaked(leaked, bytes))
	}
	return errors.Join(errs...)
}

// Metrics returns a snapshot of arena usage.
func (a *Arena) Metrics() Metrics {
	a.mu.Lock()
	defer a.mu.Unlock()
	m := Metrics{
		LiveBytes:   a.live,
		PeakBytes:   a.peak,
		LargeBlocks: len(a.large),
		Allocations: a.allocs,
		Frees:       a.frees,
		Retries:     a.retries,
		Failures:    a.failure,
		Destroyed:   a.destroyed,
	}
	if a.heap != nil {
		m.SmallBlocks = len(a.heap.live)
		m.Slabs = len(a.heap.slabs)
		m.SlabBytes = a.heap.slabBytes()
	}
	return m
}

func (a *Arena) mustBeLive() {
	if a.destroyed {
		panic(types.Errorf(types.ErrKindState, "arena: allocation after Destroy"))
	}
}

func (a *Arena) heapLocked() *heap {
	if a.heap == nil {
		a.heap = newHeap(a.classes, a.pages, a.slabSize)
	}
	return a.heap
}

// withRetry runs fn, and on failure reclaims and runs it once more when the
// policy allows.
func (a *Arena) withRetry(n int, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	if a.policy.RetryOnOOM {
		a.retries++
		logger.Warn("arena: allocation failed, reclaiming and retrying", "bytes", n, "err", err)
		a.reclaim()
		if err = fn(); err == nil {
			return nil
		}
	}
	a.failure++
	logger.Error("arena: out of memory", "bytes", n, "err", err)
	return errOutOfMemory(n, err)
}

func (a *Arena) account(n int64) {
	a.allocs++
	a.live += n
	a.peak = max(a.peak, a.live)
	if a.reporter != nil {
		a.reporter.AddPressure(n)
	}
}

func (a *Arena) unaccount(n int64) {
	a.frees++
	a.live -= n
	if a.reporter != nil {
		a.reporter.RemovePressure(n)
	}
}
