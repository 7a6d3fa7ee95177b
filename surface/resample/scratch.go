package resample

import "github.com/joshuapare/filterhost/surface/arena"

// withScratch lends fn nf float64 and ni int32 values of native scratch
// memory from a. Both blocks are released when fn returns.
func withScratch(a *arena.Arena, nf, ni int, fn func(f []float64, i []int32) error) error {
	return arena.WithBlock(a, nf*8, func(fb *arena.Block) error {
		return arena.WithBlock(a, ni*4, func(ib *arena.Block) error {
			f, err := arena.View[float64](fb)
			if err != nil {
				return err
			}
			i, err := arena.View[int32](ib)
			if err != nil {
				return err
			}
			return fn(f[:nf], i[:ni])
		})
	})
}
