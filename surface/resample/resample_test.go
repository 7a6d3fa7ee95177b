package resample_test

import (
	"image"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/filterhost/internal/testutil"
	"github.com/joshuapare/filterhost/pkg/types"
	"github.com/joshuapare/filterhost/surface"
	"github.com/joshuapare/filterhost/surface/resample"
)

func randomFill(s *surface.Surface, seed uint64) {
	r := rand.New(rand.NewPCG(seed, seed+1))
	n := uint(s.Info().Max) + 1
	testutil.Fill(s, func(x, y int) []uint16 {
		px := make([]uint16, s.Channels())
		for c := range px {
			px[c] = uint16(r.UintN(n))
		}
		return px
	})
}

// TestFit_Identity tests that fitting to the same size reproduces the source
// bytes exactly.
func TestFit_Identity(t *testing.T) {
	a := testutil.NewArena(t)
	for _, f := range surface.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			src := testutil.NewSurface(t, a, f, 5, 3)
			randomFill(src, 7)
			dst := testutil.NewSurface(t, a, f, 5, 3)

			for _, mode := range []resample.Mode{resample.ModeAuto, resample.ModeBicubic, resample.ModeSupersample} {
				dst.Clear()
				require.NoError(t, resample.Fit(src, dst, mode))
				assert.Equal(t, src.Pix(), dst.Pix(), "mode %s", mode)
			}
		})
	}
}

// TestBicubic_Corners tests that enlarging a checkerboard keeps its corners.
func TestBicubic_Corners(t *testing.T) {
	a := testutil.NewArena(t)

	t.Run("gray8", func(t *testing.T) {
		src := testutil.NewSurface(t, a, surface.FormatGray8, 2, 2)
		testutil.SetPixel(src, 1, 0, 255)
		testutil.SetPixel(src, 0, 1, 255)
		dst := testutil.NewSurface(t, a, surface.FormatGray8, 4, 4)

		require.NoError(t, resample.Fit(src, dst, resample.ModeAuto))

		testutil.RequirePixel(t, dst, 0, 0, 0)
		testutil.RequirePixel(t, dst, 3, 0, 255)
		testutil.RequirePixel(t, dst, 0, 3, 255)
		testutil.RequirePixel(t, dst, 3, 3, 0)

		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				v := testutil.Pixel(dst, x, y)[0]
				if (x == 0 || x == 3) && (y == 0 || y == 3) {
					continue
				}
				assert.Greater(t, v, uint16(0), "(%d,%d) blends", x, y)
				assert.Less(t, v, uint16(255), "(%d,%d) blends", x, y)
			}
		}
	})

	t.Run("bgra32", func(t *testing.T) {
		src := testutil.Uniform(t, a, surface.FormatBGRA32, 2, 2, 0, 0, 0, 255)
		testutil.SetPixel(src, 1, 0, 255, 255, 255, 255)
		testutil.SetPixel(src, 0, 1, 255, 255, 255, 255)
		dst := testutil.NewSurface(t, a, surface.FormatBGRA32, 4, 4)

		require.NoError(t, resample.Bicubic(src, dst, dst.Bounds()))

		testutil.RequirePixel(t, dst, 0, 0, 0, 0, 0, 255)
		testutil.RequirePixel(t, dst, 3, 0, 255, 255, 255, 255)
		testutil.RequirePixel(t, dst, 0, 3, 255, 255, 255, 255)
		testutil.RequirePixel(t, dst, 3, 3, 0, 0, 0, 255)
		assert.False(t, dst.HasTransparency())
	})
}

func TestBicubic_UniformField(t *testing.T) {
	a := testutil.NewArena(t)

	tests := []struct {
		format surface.Format
		px     []uint16
	}{
		{surface.FormatGray8, []uint16{77}},
		{surface.FormatGray16, []uint16{32768}},
		{surface.FormatBGR24, []uint16{10, 20, 30}},
		{surface.FormatBGRA32, []uint16{10, 20, 30, 255}},
		{surface.FormatBGRA64, []uint16{1000, 2000, 30000, 32768}},
		{surface.FormatCMYK32, []uint16{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			src := testutil.Uniform(t, a, tt.format, 5, 6, tt.px...)
			dst := testutil.NewSurface(t, a, tt.format, 9, 13)
			require.NoError(t, resample.Bicubic(src, dst, dst.Bounds()))
			testutil.RequireUniform(t, dst, 0, tt.px...)
		})
	}
}

// TestBicubic_LinearRamp tests that interior pixels reproduce a linear ramp.
func TestBicubic_LinearRamp(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.NewSurface(t, a, surface.FormatGray8, 10, 4)
	testutil.Fill(src, func(x, y int) []uint16 { return []uint16{uint16(20 * x)} })
	dst := testutil.NewSurface(t, a, surface.FormatGray8, 19, 4)

	require.NoError(t, resample.Bicubic(src, dst, dst.Bounds()))

	for y := 0; y < 4; y++ {
		for x := 2; x < 16; x++ {
			testutil.RequirePixel(t, dst, x, y, uint16(10*x))
		}
	}
	testutil.RequirePixel(t, dst, 0, 0, 0)
	testutil.RequirePixel(t, dst, 18, 3, 180)
}

func TestBicubic_ZeroAlpha(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.Uniform(t, a, surface.FormatBGRA32, 3, 3, 200, 100, 50, 0)
	dst := testutil.NewSurface(t, a, surface.FormatBGRA32, 7, 5)
	testutil.Fill(dst, func(x, y int) []uint16 { return []uint16{9, 9, 9, 9} })

	require.NoError(t, resample.Bicubic(src, dst, dst.Bounds()))
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			if (x == 0 || x == 6) && (y == 0 || y == 4) {
				testutil.RequirePixel(t, dst, x, y, 200, 100, 50, 0)
				continue
			}
			testutil.RequirePixel(t, dst, x, y, 0, 0, 0, 0)
		}
	}
}

// TestBicubic_TransparentNeighbors tests that transparent taps do not bleed color.
func TestBicubic_TransparentNeighbors(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.Uniform(t, a, surface.FormatBGRA32, 6, 6, 0, 0, 0, 0)
	for y := 0; y < 6; y++ {
		for x := 0; x < 3; x++ {
			testutil.SetPixel(src, x, y, 0, 0, 250, 255)
		}
	}
	dst := testutil.NewSurface(t, a, surface.FormatBGRA32, 11, 11)
	require.NoError(t, resample.Bicubic(src, dst, dst.Bounds()))

	for y := 0; y < 11; y++ {
		for x := 0; x < 11; x++ {
			px := testutil.Pixel(dst, x, y)
			if px[3] == 0 {
				assert.Equal(t, []uint16{0, 0, 0, 0}, px, "(%d,%d)", x, y)
				continue
			}
			assert.Equal(t, []uint16{0, 0, 250}, px[:3], "(%d,%d) keeps its color", x, y)
		}
	}
}

func TestBicubic_Region(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.NewSurface(t, a, surface.FormatBGR24, 6, 6)
	randomFill(src, 11)

	full := testutil.NewSurface(t, a, surface.FormatBGR24, 11, 9)
	require.NoError(t, resample.Bicubic(src, full, full.Bounds()))

	part := testutil.Uniform(t, a, surface.FormatBGR24, 11, 9, 77, 77, 77)
	region := image.Rect(3, 2, 8, 7)
	require.NoError(t, resample.Bicubic(src, part, region))

	for y := 0; y < 9; y++ {
		for x := 0; x < 11; x++ {
			if image.Pt(x, y).In(region) {
				assert.Equal(t, testutil.Pixel(full, x, y), testutil.Pixel(part, x, y), "(%d,%d)", x, y)
			} else {
				testutil.RequirePixel(t, part, x, y, 77, 77, 77)
			}
		}
	}

	require.NoError(t, resample.Bicubic(src, part, image.Rect(20, 20, 30, 30)), "empty region is a no-op")
}

func TestSupersample_Uniform(t *testing.T) {
	a := testutil.NewArena(t)

	gray := testutil.Uniform(t, a, surface.FormatGray8, 4, 4, 128)
	out := testutil.NewSurface(t, a, surface.FormatGray8, 2, 2)
	require.NoError(t, resample.Fit(gray, out, resample.ModeAuto))
	testutil.RequireUniform(t, out, 0, 128)

	bgra := testutil.Uniform(t, a, surface.FormatBGRA32, 4, 4, 128, 128, 128, 255)
	out4 := testutil.NewSurface(t, a, surface.FormatBGRA32, 2, 2)
	require.NoError(t, resample.Supersample(bgra, out4, out4.Bounds()))
	testutil.RequireUniform(t, out4, 0, 128, 128, 128, 255)
}

func TestSupersample_Fractional(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.NewSurface(t, a, surface.FormatGray8, 3, 1)
	testutil.SetPixel(src, 1, 0, 90)
	testutil.SetPixel(src, 2, 0, 180)
	dst := testutil.NewSurface(t, a, surface.FormatGray8, 2, 1)

	require.NoError(t, resample.Supersample(src, dst, dst.Bounds()))
	testutil.RequirePixel(t, dst, 0, 0, 30)
	testutil.RequirePixel(t, dst, 1, 0, 150)
}

// TestSupersample_AlphaWeighted tests that color is weighted by alpha and
// alpha by area.
func TestSupersample_AlphaWeighted(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.NewSurface(t, a, surface.FormatBGRA32, 2, 1)
	testutil.SetPixel(src, 0, 0, 200, 100, 50, 255)
	dst := testutil.NewSurface(t, a, surface.FormatBGRA32, 1, 1)

	require.NoError(t, resample.Supersample(src, dst, dst.Bounds()))
	testutil.RequirePixel(t, dst, 0, 0, 200, 100, 50, 128)
}

func TestSupersample_16Bit(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.Uniform(t, a, surface.FormatBGRA64, 6, 3, 100, 200, 32768, 32768)
	dst := testutil.NewSurface(t, a, surface.FormatBGRA64, 4, 2)

	require.NoError(t, resample.Fit(src, dst, resample.ModeAuto))
	testutil.RequireUniform(t, dst, 0, 100, 200, 32768, 32768)
	assert.False(t, dst.HasTransparency())
}

func TestSupersample_OneAxisUnchanged(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.NewSurface(t, a, surface.FormatGray8, 4, 3)
	testutil.Fill(src, func(x, y int) []uint16 { return []uint16{uint16(10*y + 2*x)} })
	dst := testutil.NewSurface(t, a, surface.FormatGray8, 2, 3)

	require.NoError(t, resample.Supersample(src, dst, dst.Bounds()))
	for y := 0; y < 3; y++ {
		testutil.RequirePixel(t, dst, 0, y, uint16(10*y+1))
		testutil.RequirePixel(t, dst, 1, y, uint16(10*y+5))
	}
}

func TestSupersample_RejectsEnlarge(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.NewSurface(t, a, surface.FormatGray8, 4, 4)
	dst := testutil.NewSurface(t, a, surface.FormatGray8, 5, 3)

	require.ErrorIs(t, resample.Supersample(src, dst, dst.Bounds()), types.ErrInvalidArgument)
	require.ErrorIs(t, resample.Fit(src, dst, resample.ModeSupersample), types.ErrInvalidArgument)
	require.NoError(t, resample.Fit(src, dst, resample.ModeAuto), "auto falls back to bicubic")
}

func TestFit_Errors(t *testing.T) {
	a := testutil.NewArena(t)
	gray := testutil.NewSurface(t, a, surface.FormatGray8, 4, 4)
	bgra := testutil.NewSurface(t, a, surface.FormatBGRA32, 2, 2)
	require.ErrorIs(t, resample.Fit(gray, bgra, resample.ModeAuto), types.ErrInvalidArgument)

	other := testutil.NewSurface(t, a, surface.FormatGray8, 2, 2)
	require.ErrorIs(t, resample.Fit(gray, other, resample.Mode(9)), types.ErrInvalidArgument)

	closed, err := surface.New(a, surface.FormatGray8, 2, 2, nil)
	require.NoError(t, err)
	require.NoError(t, closed.Close())
	require.ErrorIs(t, resample.Fit(gray, closed, resample.ModeAuto), types.ErrObjectDisposed)
	require.ErrorIs(t, resample.Bicubic(closed, gray, gray.Bounds()), types.ErrObjectDisposed)
}

// TestFit_ReleasesScratch tests that weight caches go back to the arena.
func TestFit_ReleasesScratch(t *testing.T) {
	a := testutil.NewArena(t)
	src := testutil.NewSurface(t, a, surface.FormatBGRA32, 40, 30)
	randomFill(src, 5)
	up := testutil.NewSurface(t, a, surface.FormatBGRA32, 97, 61)
	down := testutil.NewSurface(t, a, surface.FormatBGRA32, 13, 7)

	before := a.Metrics()
	require.NoError(t, resample.Fit(src, up, resample.ModeAuto))
	require.NoError(t, resample.Fit(src, down, resample.ModeAuto))
	after := a.Metrics()

	assert.Equal(t, before.Blocks(), after.Blocks())
	assert.Equal(t, before.LiveBytes, after.LiveBytes)
	assert.Greater(t, after.Allocations, before.Allocations)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want resample.Mode
	}{
		{"", resample.ModeAuto},
		{"auto", resample.ModeAuto},
		{"Bicubic", resample.ModeBicubic},
		{"area", resample.ModeSupersample},
		{"supersample", resample.ModeSupersample},
	}
	for _, tt := range tests {
		got, err := resample.ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := resample.ParseMode("lanczos")
	require.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Equal(t, "bicubic", resample.ModeBicubic.String())
	assert.Equal(t, "Mode(9)", resample.Mode(9).String())
}
