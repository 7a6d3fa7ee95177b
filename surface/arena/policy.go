package arena

import (
	"fmt"

	"github.com/joshuapare/filterhost/pkg/types"
)

// Strategy identifies which backend served an allocation and therefore
// which routine must free it.
type Strategy uint8

const (
	// StrategySmall blocks come from the size-class heap.
	StrategySmall Strategy = iota
	// StrategyLarge blocks are mapped directly from OS pages.
	StrategyLarge
)

// String implements the Stringer interface for Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategySmall:
		return "small"
	case StrategyLarge:
		return "large"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// Policy decides how requests are routed and how failures are handled.
type Policy struct {
	// LargeThreshold is the size, in bytes, at and above which requests are
	// served from OS pages.
	LargeThreshold int

	// RetryOnOOM runs one reclaim pass and retries once when the OS refuses
	// a request.
	RetryOnOOM bool
}

// DefaultPolicy routes requests of 64 KiB and above to OS pages and retries
// once on out-of-memory.
var DefaultPolicy = Policy{
	LargeThreshold: types.LargeBlockThreshold,
	RetryOnOOM:     true,
}

// StrategyFor returns the strategy that serves an n-byte request.
func (p Policy) StrategyFor(n int) Strategy {
	if n >= p.LargeThreshold {
		return StrategyLarge
	}
	return StrategySmall
}
