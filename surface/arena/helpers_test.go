package arena

import (
	"errors"
	"sync"
	"testing"
	"unsafe"
)

var errFakeOOM = errors.New("fake: cannot allocate memory")

// memPages is a PageSource backed by the Go heap that can be told to fail.
type memPages struct {
	mu       sync.Mutex
	failNext int // number of upcoming Map calls that fail
	maps     int
	unmaps   int
	mapped   int64
}

func (m *memPages) Map(n int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext > 0 {
		m.failNext--
		return nil, errFakeOOM
	}
	m.maps++
	m.mapped += int64(n)
	return make([]byte, n), nil
}

func (m *memPages) Unmap(b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unmaps++
	m.mapped -= int64(len(b))
	return nil
}

// recordingReporter tracks pressure notifications.
type recordingReporter struct {
	mu      sync.Mutex
	current int64
	adds    int
	removes int
}

func (r *recordingReporter) AddPressure(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current += n
	r.adds++
}

func (r *recordingReporter) RemovePressure(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current -= n
	r.removes++
}

// newTestArena returns an arena over memPages that is destroyed at cleanup.
func newTestArena(t *testing.T, opts Options) (*Arena, *memPages) {
	t.Helper()
	pages := &memPages{}
	if opts.Pages == nil {
		opts.Pages = pages
	}
	if opts.Reclaim == nil {
		opts.Reclaim = func() {}
	}
	a := New(opts)
	t.Cleanup(func() { _ = a.Destroy() })
	return a, pages
}

func unsafePointer(b []byte) unsafe.Pointer {
	return unsafe.Pointer(&b[0])
}
