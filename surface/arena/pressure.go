package arena

import (
	"math"
	"runtime/debug"
	"sync"
)

// PressureReporter is told about native memory the Go runtime cannot see.
// Implementations must be safe for concurrent use.
type PressureReporter interface {
	AddPressure(bytes int64)
	RemovePressure(bytes int64)
}

// MemoryLimitReporter keeps the Go runtime's soft memory limit at
// base minus the native bytes currently held, so the collector runs earlier
// while surfaces are large. The limit never drops below a quarter of base.
type MemoryLimitReporter struct {
	mu     sync.Mutex
	base   int64
	native int64
	floor  int64
}

// NewMemoryLimitReporter returns a reporter anchored at base bytes. A base
// of zero or less anchors at the limit currently in effect. When no limit
// is in effect the reporter only counts.
func NewMemoryLimitReporter(base int64) *MemoryLimitReporter {
	if base <= 0 {
		base = debug.SetMemoryLimit(-1)
	}
	return &MemoryLimitReporter{base: base, floor: base / 4}
}

// AddPressure implements PressureReporter.
func (r *MemoryLimitReporter) AddPressure(bytes int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.native += bytes
	r.apply()
}

// RemovePressure implements PressureReporter.
func (r *MemoryLimitReporter) RemovePressure(bytes int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.native -= bytes
	if r.native < 0 {
		r.native = 0
	}
	r.apply()
}

// Native reports the native bytes currently accounted.
func (r *MemoryLimitReporter) Native() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.native
}

// Limit reports the soft memory limit the reporter wants in effect.
func (r *MemoryLimitReporter) Limit() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit()
}

// Restore puts the base limit back.
func (r *MemoryLimitReporter) Restore() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.native = 0
	if r.base != math.MaxInt64 {
		debug.SetMemoryLimit(r.base)
	}
}

func (r *MemoryLimitReporter) limit() int64 {
	if r.base == math.MaxInt64 {
		return r.base
	}
	return max(r.base-r.native, r.floor)
}

func (r *MemoryLimitReporter) apply() {
	if r.base == math.MaxInt64 {
		return
	}
	debug.SetMemoryLimit(r.limit())
}
