package buf

import (
	"fmt"
	"math"

	"github.com/joshuapare/filterhost/pkg/types"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// the result would overflow int or either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// AlignUp returns n rounded up to the next multiple of align, which must be
// a power of two. ok is false when rounding would overflow int.
//
// Example:
//
//	AlignUp(9, 4)  = 12
//	AlignUp(12, 4) = 12
//	AlignUp(1, 16) = 16
func AlignUp(n, align int) (int, bool) {
	mask := align - 1
	sum, ok := AddOverflowSafe(n, mask)
	if !ok {
		return 0, false
	}
	return sum &^ mask, true
}

// PlaneSize validates a width x height plane of bytesPerPixel-wide samples and
// returns its row stride and total byte size. When aligned is set the stride
// is rounded up to a multiple of types.StrideAlign. Returns an error describing the specific
// failure (non-positive dimension or overflow).
//
// This is the recommended way to size a pixel buffer before allocating it:
//
//	stride, size, err := buf.PlaneSize(w, h, 3, true)
//	if err != nil {
//	    return fmt.Errorf("surface: %w", err)
//	}
func PlaneSize(width, height, bytesPerPixel int, aligned bool) (stride, size int, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("non-positive dimensions: %dx%d", width, height)
	}
	if bytesPerPixel <= 0 {
		return 0, 0, fmt.Errorf("non-positive pixel size: %d", bytesPerPixel)
	}

	row, ok := MulOverflowSafe(width, bytesPerPixel)
	if !ok {
		return 0, 0, fmt.Errorf("overflow: width=%d * bpp=%d", width, bytesPerPixel)
	}
	if aligned {
		row, ok = AlignUp(row, types.StrideAlign)
		if !ok {
			return 0, 0, fmt.Errorf("overflow: aligning row of %d bytes", width*bytesPerPixel)
		}
	}

	total, ok := MulOverflowSafe(row, height)
	if !ok {
		return 0, 0, fmt.Errorf("overflow: stride=%d * height=%d", row, height)
	}
	return row, total, nil
}
