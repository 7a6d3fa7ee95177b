package surface

import (
	"unsafe"

	"github.com/joshuapare/filterhost/pkg/types"
)

// RowAddress returns the address of the first byte of row y.
// y is not checked. It panics if the surface is closed.
func (s *Surface) RowAddress(y int) unsafe.Pointer {
	if s.closed {
		panic(s.errClosed("row address"))
	}
	return unsafe.Add(s.base, y*s.stride)
}

// PointAddress returns the address of pixel (x, y), or ErrOutOfRange when
// the pixel is outside the surface.
func (s *Surface) PointAddress(x, y int) (unsafe.Pointer, error) {
	if s.closed {
		return nil, s.errClosed("point address")
	}
	if !s.IsVisible(x, y) {
		return nil, types.Errorf(types.ErrKindOutOfRange,
			"surface: point (%d,%d) outside %dx%d", x, y, s.width, s.height)
	}
	return s.pointAddress(x, y), nil
}

// PointAddressClamped returns the address of the pixel nearest to (x, y).
// It panics if the surface is closed.
func (s *Surface) PointAddressClamped(x, y int) unsafe.Pointer {
	if s.closed {
		panic(s.errClosed("point address"))
	}
	return s.pointAddress(clamp(x, 0, s.width-1), clamp(y, 0, s.height-1))
}

func (s *Surface) pointAddress(x, y int) unsafe.Pointer {
	return unsafe.Add(s.base, y*s.stride+x*s.info.BytesPerPixel)
}

// IsVisible reports whether (x, y) is inside the surface.
func (s *Surface) IsVisible(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

// Raw returns the base address and byte length of the pixel memory for
// callers that hand it to plugin code. The address is stable until Close.
// Nothing protects accesses made through it.
func (s *Surface) Raw() (unsafe.Pointer, int, error) {
	if s.closed {
		return nil, 0, s.errClosed("raw")
	}
	return s.base, len(s.pix), nil
}

// Pix returns all Stride()*Height() bytes of pixel memory, padding
// included. The slice must not be used after Close.
func (s *Surface) Pix() []byte {
	return s.pix
}

// Row returns the Width()*BytesPerPixel() bytes of row y, without padding.
// It panics if y is out of range or the surface is closed.
func (s *Surface) Row(y int) []byte {
	if s.closed {
		panic(s.errClosed("row"))
	}
	off := y * s.stride
	return s.pix[off : off+s.width*s.info.BytesPerPixel : off+s.width*s.info.BytesPerPixel]
}

// Row16 returns row y of a 16-bit surface as Width()*Channels() samples.
// It panics if the surface is not 16-bit, y is out of range or the surface
// is closed.
func (s *Surface) Row16(y int) []uint16 {
	if s.info.BitsPerChannel != 16 {
		panic(types.Errorf(types.ErrKindInvalidArgument, "surface: Row16 on %s", s.format))
	}
	row := s.Row(y)
	return unsafe.Slice((*uint16)(unsafe.Pointer(&row[0])), len(row)/2)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
