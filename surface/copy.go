package surface

import (
	"github.com/joshuapare/filterhost/pkg/types"
	"github.com/joshuapare/filterhost/surface/arena"
)

// CopyFrom copies src's pixels into s. Both surfaces must share a format.
// Surfaces with identical dimensions and stride are copied in one bulk
// transfer; otherwise the overlapping top-left region is copied row by row.
func (s *Surface) CopyFrom(src *Surface) error {
	if s.closed {
		return s.errClosed("copy")
	}
	if src.closed {
		return src.errClosed("copy")
	}
	if s.format != src.format {
		return types.Errorf(types.ErrKindInvalidArgument,
			"surface: copy %s into %s: format mismatch", src.format, s.format)
	}

	if s.width == src.width && s.height == src.height && s.stride == src.stride {
		arena.Copy(s.base, src.base, s.stride*s.height)
		return nil
	}

	w := min(s.width, src.width) * s.info.BytesPerPixel
	h := min(s.height, src.height)
	for y := 0; y < h; y++ {
		arena.Copy(s.RowAddress(y), src.RowAddress(y), w)
	}
	return nil
}

// Clone returns a new surface with the same format, size, resolution and
// pixels, allocated from the same arena.
func (s *Surface) Clone() (*Surface, error) {
	if s.closed {
		return nil, s.errClosed("clone")
	}
	out, err := New(s.arena, s.format, s.width, s.height, &Options{DPIX: s.dpiX, DPIY: s.dpiY})
	if err != nil {
		return nil, err
	}
	if err := out.CopyFrom(s); err != nil {
		out.Close()
		return nil, err
	}
	return out, nil
}

// Clear zeroes every byte of pixel memory.
func (s *Surface) Clear() {
	clear(s.pix)
}
