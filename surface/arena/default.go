package arena

import "sync"

var (
	defaultMu    sync.Mutex
	defaultArena *Arena
)

// Default returns the process-wide arena, creating it on first use.
// After Shutdown it keeps returning the destroyed arena, so any further
// allocation panics.
func Default() *Arena {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultArena == nil {
		defaultArena = New(Options{})
	}
	return defaultArena
}

// Shutdown destroys the process-wide arena. Call it once at process exit.
func Shutdown() error {
	defaultMu.Lock()
	a := defaultArena
	defaultMu.Unlock()
	if a == nil {
		return nil
	}
	return a.Destroy()
}
