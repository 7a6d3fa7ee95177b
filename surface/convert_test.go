package surface_test

import (
	"image"
	"image/color"
	"image/color/palette"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/filterhost/internal/testutil"
	"github.com/joshuapare/filterhost/pkg/types"
	"github.com/joshuapare/filterhost/surface"
	"github.com/joshuapare/filterhost/surface/depth"
)

func randomBytes(r *rand.Rand, b []byte) {
	for i := range b {
		b[i] = byte(r.UintN(256))
	}
}

// TestRoundTrip_8Bit tests that host -> surface -> host is exact for 8-bit formats.
func TestRoundTrip_8Bit(t *testing.T) {
	a := testutil.NewArena(t)
	r := rand.New(rand.NewPCG(1, 2))
	rect := image.Rect(0, 0, 7, 5)

	t.Run("gray8", func(t *testing.T) {
		in := image.NewGray(rect)
		randomBytes(r, in.Pix)
		s, err := surface.FromImage(a, surface.FormatGray8, in, nil)
		require.NoError(t, err)
		defer s.Close()

		out, err := s.ToImage()
		require.NoError(t, err)
		require.IsType(t, &image.Gray{}, out)
		assert.Equal(t, in.Pix, out.(*image.Gray).Pix)
	})

	t.Run("bgra32 transparent", func(t *testing.T) {
		in := image.NewNRGBA(rect)
		randomBytes(r, in.Pix)
		in.Pix[3] = 0
		s, err := surface.FromImage(a, surface.FormatBGRA32, in, nil)
		require.NoError(t, err)
		defer s.Close()

		testutil.RequirePixel(t, s, 0, 0,
			uint16(in.Pix[2]), uint16(in.Pix[1]), uint16(in.Pix[0]), 0)

		out, err := s.ToImage()
		require.NoError(t, err)
		require.IsType(t, &image.NRGBA{}, out)
		assert.Equal(t, in.Pix, out.(*image.NRGBA).Pix)
	})

	t.Run("bgra32 opaque", func(t *testing.T) {
		in := image.NewNRGBA(rect)
		randomBytes(r, in.Pix)
		for i := 3; i < len(in.Pix); i += 4 {
			in.Pix[i] = 0xff
		}
		s, err := surface.FromImage(a, surface.FormatBGRA32, in, nil)
		require.NoError(t, err)
		defer s.Close()

		out, err := s.ToImage()
		require.NoError(t, err)
		require.IsType(t, &image.RGBA{}, out)
		assert.Equal(t, in.Pix, out.(*image.RGBA).Pix)
	})

	t.Run("bgr24", func(t *testing.T) {
		in := image.NewRGBA(rect)
		randomBytes(r, in.Pix)
		for i := 3; i < len(in.Pix); i += 4 {
			in.Pix[i] = 0xff
		}
		s, err := surface.FromImage(a, surface.FormatBGR24, in, nil)
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, 24, s.Stride())

		out, err := s.ToImage()
		require.NoError(t, err)
		assert.Equal(t, in.Pix, out.(*image.RGBA).Pix)
	})

	t.Run("cmyk32", func(t *testing.T) {
		in := image.NewCMYK(rect)
		randomBytes(r, in.Pix)
		s, err := surface.FromImage(a, surface.FormatCMYK32, in, nil)
		require.NoError(t, err)
		defer s.Close()

		out, err := s.ToImage()
		require.NoError(t, err)
		assert.Equal(t, in.Pix, out.(*image.CMYK).Pix)
	})
}

// TestRoundTrip_16Bit tests that 16-bit formats come back within one native unit.
func TestRoundTrip_16Bit(t *testing.T) {
	a := testutil.NewArena(t)
	r := rand.New(rand.NewPCG(3, 4))
	rect := image.Rect(0, 0, 6, 4)

	within := func(t *testing.T, want, got []byte) {
		t.Helper()
		require.Len(t, got, len(want))
		for i := 0; i < len(want); i += 2 {
			w := int(want[i])<<8 | int(want[i+1])
			g := int(got[i])<<8 | int(got[i+1])
			d := g - w
			if d < -2 || d > 2 {
				t.Fatalf("sample %d: got %d want %d", i/2, g, w)
			}
		}
	}

	t.Run("gray16", func(t *testing.T) {
		in := image.NewGray16(rect)
		randomBytes(r, in.Pix)
		s, err := surface.FromImage(a, surface.FormatGray16, in, nil)
		require.NoError(t, err)
		defer s.Close()

		out, err := s.ToImage()
		require.NoError(t, err)
		within(t, in.Pix, out.(*image.Gray16).Pix)
	})

	t.Run("bgra64", func(t *testing.T) {
		in := image.NewNRGBA64(rect)
		randomBytes(r, in.Pix)
		s, err := surface.FromImage(a, surface.FormatBGRA64, in, nil)
		require.NoError(t, err)
		defer s.Close()

		out, err := s.ToImage()
		require.NoError(t, err)
		within(t, in.Pix, out.(*image.NRGBA64).Pix)
	})
}

// TestGray16_NativeRange tests host 65535 -> stored 32768 -> host 65535.
func TestGray16_NativeRange(t *testing.T) {
	a := testutil.NewArena(t)
	in := image.NewGray16(image.Rect(0, 0, 2, 1))
	in.SetGray16(0, 0, color.Gray16{Y: 65535})
	in.SetGray16(1, 0, color.Gray16{Y: 0})

	s, err := surface.FromImage(a, surface.FormatGray16, in, nil)
	require.NoError(t, err)
	defer s.Close()

	testutil.RequirePixel(t, s, 0, 0, 32768)
	testutil.RequirePixel(t, s, 1, 0, 0)

	out, err := s.ToImage()
	require.NoError(t, err)
	assert.Equal(t, color.Gray16{Y: 65535}, out.(*image.Gray16).Gray16At(0, 0))
}

func TestBGRA64_NativeOpaque(t *testing.T) {
	a := testutil.NewArena(t)
	in := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
	in.SetNRGBA64(0, 0, color.NRGBA64{R: 65535, G: 32768, B: 0, A: 65535})

	s, err := surface.FromImage(a, surface.FormatBGRA64, in, nil)
	require.NoError(t, err)
	defer s.Close()

	testutil.RequirePixel(t, s, 0, 0, 0, 16384, 32768, 32768)
	assert.False(t, s.HasTransparency())
}

// TestRoundTrip_16BitRows tests every pixel of a multi-row 16-bit image
// against the scalar codec, so row offsets and channel order are covered.
func TestRoundTrip_16BitRows(t *testing.T) {
	a := testutil.NewArena(t)
	rect := image.Rect(0, 0, 5, 3)

	t.Run("gray16", func(t *testing.T) {
		in := image.NewGray16(rect)
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				in.SetGray16(x, y, color.Gray16{Y: uint16(1000*y + 7*x + 3)})
			}
		}
		s, err := surface.FromImage(a, surface.FormatGray16, in, nil)
		require.NoError(t, err)
		defer s.Close()

		out, err := s.ToImage()
		require.NoError(t, err)
		g := out.(*image.Gray16)
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				native := depth.ToNative(in.Gray16At(x, y).Y)
				testutil.RequirePixel(t, s, x, y, native)
				require.Equal(t, depth.FromNative(native), g.Gray16At(x, y).Y, "(%d,%d)", x, y)
			}
		}
	})

	t.Run("bgra64", func(t *testing.T) {
		in := image.NewNRGBA64(rect)
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				in.SetNRGBA64(x, y, color.NRGBA64{
					R: uint16(60000 - 900*x),
					G: uint16(20000 + 1000*y),
					B: uint16(11*x + 13*y),
					A: 65535,
				})
			}
		}
		s, err := surface.FromImage(a, surface.FormatBGRA64, in, nil)
		require.NoError(t, err)
		defer s.Close()

		out, err := s.ToImage()
		require.NoError(t, err)
		n := out.(*image.NRGBA64)
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				c := in.NRGBA64At(x, y)
				b, g, r, al := depth.ToNative(c.B), depth.ToNative(c.G), depth.ToNative(c.R), depth.ToNative(c.A)
				testutil.RequirePixel(t, s, x, y, b, g, r, al)
				want := color.NRGBA64{
					R: depth.FromNative(r),
					G: depth.FromNative(g),
					B: depth.FromNative(b),
					A: depth.FromNative(al),
				}
				require.Equal(t, want, n.NRGBA64At(x, y), "(%d,%d)", x, y)
			}
		}
	})
}

func TestFromImage_Normalizes(t *testing.T) {
	a := testutil.NewArena(t)

	pal := image.NewPaletted(image.Rect(10, 20, 13, 22), palette.WebSafe)
	pal.SetColorIndex(10, 20, 0)
	pal.Set(12, 21, color.RGBA{R: 0xff, A: 0xff})

	s, err := surface.FromImage(a, surface.FormatBGRA32, pal, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 3, s.Width())
	assert.Equal(t, 2, s.Height())
	testutil.RequirePixel(t, s, 0, 0, 0, 0, 0, 255)
	testutil.RequirePixel(t, s, 2, 1, 0, 0, 255, 255)

	g, err := surface.FromImage(a, surface.FormatGray8, pal, nil)
	require.NoError(t, err)
	defer g.Close()
	testutil.RequirePixel(t, g, 0, 0, 0)
}

func TestFromImage_SubImage(t *testing.T) {
	a := testutil.NewArena(t)
	full := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range full.Pix {
		full.Pix[i] = byte(i)
	}
	sub := full.SubImage(image.Rect(1, 2, 3, 4))

	s, err := surface.FromImage(a, surface.FormatGray8, sub, nil)
	require.NoError(t, err)
	defer s.Close()

	testutil.RequirePixel(t, s, 0, 0, 9)
	testutil.RequirePixel(t, s, 1, 1, 14)
}

func TestFromImage_Invalid(t *testing.T) {
	a := testutil.NewArena(t)
	_, err := surface.FromImage(a, surface.FormatGray8, nil, nil)
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = surface.FromImage(a, surface.FormatGray8, image.NewGray(image.Rectangle{}), nil)
	require.ErrorIs(t, err, types.ErrInvalidArgument)
}
