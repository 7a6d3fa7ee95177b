package surface

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/joshuapare/filterhost/internal/buf"
	"github.com/joshuapare/filterhost/pkg/types"
	"github.com/joshuapare/filterhost/surface/arena"
)

// Options configures a new Surface.
type Options struct {
	// DPIX and DPIY are the horizontal and vertical resolution.
	// Zero selects 96.
	DPIX, DPIY float64
}

// Surface is a rectangular pixel buffer in native memory. It exclusively
// owns one arena block of exactly Stride()*Height() bytes.
//
// A Surface is not safe for concurrent mutation.
type Surface struct {
	arena *arena.Arena
	block *arena.Block
	pix   []byte
	base  unsafe.Pointer

	format Format
	info   FormatInfo

	width, height, stride int
	dpiX, dpiY            float64

	closed bool
}

// New allocates a zeroed surface. A nil arena selects arena.Default().
func New(a *arena.Arena, f Format, width, height int, opts *Options) (*Surface, error) {
	if a == nil {
		a = arena.Default()
	}
	info, ok := f.Info()
	if !ok {
		return nil, types.Errorf(types.ErrKindInvalidArgument, "surface: unknown format %d", uint8(f))
	}

	stride, size, err := buf.PlaneSize(width, height, info.BytesPerPixel, info.AlignStride)
	if err != nil {
		return nil, types.Wrap(types.ErrKindInvalidArgument,
			fmt.Sprintf("surface: new %s %dx%d", f, width, height), err)
	}

	block, err := a.NewBlock(size)
	if err != nil {
		return nil, fmt.Errorf("surface: new %s %dx%d: %w", f, width, height, err)
	}
	pix, err := block.Bytes()
	if err != nil {
		block.Release()
		return nil, err
	}

	s := &Surface{
		arena:  a,
		block:  block,
		pix:    pix,
		base:   unsafe.Pointer(&pix[0]),
		format: f,
		info:   info,
		width:  width,
		height: height,
		stride: stride,
		dpiX:   types.DefaultDPI,
		dpiY:   types.DefaultDPI,
	}
	if opts != nil {
		s.SetDPI(opts.DPIX, opts.DPIY)
	}
	return s, nil
}

// Format returns the pixel format.
func (s *Surface) Format() Format { return s.format }

// Info returns the pixel format's metadata.
func (s *Surface) Info() FormatInfo { return s.info }

// Width returns the width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the height in pixels.
func (s *Surface) Height() int { return s.height }

// Stride returns the distance in bytes between the starts of two rows.
func (s *Surface) Stride() int { return s.stride }

// BytesPerPixel returns the pixel size in bytes.
func (s *Surface) BytesPerPixel() int { return s.info.BytesPerPixel }

// Channels returns the channel count, alpha included.
func (s *Surface) Channels() int { return s.info.Channels }

// BitsPerChannel returns 8 or 16.
func (s *Surface) BitsPerChannel() int { return s.info.BitsPerChannel }

// Bounds returns the rectangle (0,0)-(Width,Height).
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// Arena returns the arena that owns the surface's memory.
func (s *Surface) Arena() *arena.Arena { return s.arena }

// Strategy reports which arena backend holds the pixels. It can differ
// from Arena().Policy().StrategyFor(size) when the heap cannot fit a block
// the policy routes to it.
func (s *Surface) Strategy() arena.Strategy { return s.block.Strategy() }

// DPI returns the horizontal and vertical resolution.
func (s *Surface) DPI() (x, y float64) { return s.dpiX, s.dpiY }

// SetDPI sets the resolution. Non-positive values select 96.
func (s *Surface) SetDPI(x, y float64) {
	if x <= 0 {
		x = types.DefaultDPI
	}
	if y <= 0 {
		y = types.DefaultDPI
	}
	s.dpiX, s.dpiY = x, y
}

// Closed reports whether Close has run.
func (s *Surface) Closed() bool { return s.closed }

// Close releases the pixel memory. Calling it more than once is a no-op.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pix = nil
	s.base = nil
	return s.block.Close()
}

// String returns a short description such as "bgra32 640x480".
func (s *Surface) String() string {
	return fmt.Sprintf("%s %dx%d", s.format, s.width, s.height)
}

func (s *Surface) errClosed(op string) error {
	return types.Errorf(types.ErrKindDisposed, "surface: %s on closed %s", op, s)
}
