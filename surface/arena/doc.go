// Package arena provides native memory for pixel surfaces and resampling
// scratch space, outside the Go garbage-collected heap.
//
// # Overview
//
// Image buffers are large, long lived and handed to plugins as raw addresses.
// Keeping them off the Go heap means the collector never scans them and never
// moves them, and the addresses stay valid until the owner releases them.
//
// # Strategies
//
// Every request is routed by a Policy:
//
//   - StrategySmall: requests below Policy.LargeThreshold (64 KiB by default)
//     are carved from slabs by a segregated size-class heap with per-class
//     free lists.
//   - StrategyLarge: requests at or above the threshold are mapped directly
//     from the OS (anonymous mmap on unix, VirtualAlloc on windows) and
//     unmapped on release.
//
// Both strategies return zeroed memory.
//
// # Out of Memory
//
// When the OS refuses a request and Policy.RetryOnOOM is set, the arena runs
// one reclaim pass (a full GC followed by debug.FreeOSMemory) and retries
// exactly once. A second failure is reported as types.ErrOutOfMemory.
//
// # Ownership
//
// Block is the owning handle for one allocation:
//
//	b, err := a.NewBlock(4096)
//	if err != nil {
//	    return err
//	}
//	defer b.Release()
//
//	data, err := b.Bytes()
//
// Release is idempotent. Pointer, Bytes and Len return types.ErrObjectDisposed
// after release. WithBlock wraps the pattern for scratch memory that must not
// outlive one call.
//
// # Teardown
//
// Destroy returns every slab and mapping to the OS and reports blocks that
// were never released as types.ErrLeaked. Allocating from a destroyed arena
// panics.
//
// # Memory Pressure
//
// Native bytes are invisible to the Go runtime. A PressureReporter is told
// about every allocation and free; MemoryLimitReporter lowers the runtime
// soft memory limit so the collector runs earlier while native usage is high.
package arena
