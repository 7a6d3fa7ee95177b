package testutil

import (
	"fmt"
	"testing"

	"github.com/joshuapare/filterhost/surface"
)

// SetPixel writes channel values at (x, y) in storage order. Missing values
// leave their channel unchanged.
func SetPixel(s *surface.Surface, x, y int, vals ...uint16) {
	ch := s.Channels()
	if s.BitsPerChannel() == 16 {
		row := s.Row16(y)
		for c := 0; c < ch && c < len(vals); c++ {
			row[x*ch+c] = vals[c]
		}
		return
	}
	row := s.Row(y)
	for c := 0; c < ch && c < len(vals); c++ {
		row[x*ch+c] = uint8(vals[c])
	}
}

// Pixel reads the channel values at (x, y) in storage order.
func Pixel(s *surface.Surface, x, y int) []uint16 {
	ch := s.Channels()
	out := make([]uint16, ch)
	if s.BitsPerChannel() == 16 {
		row := s.Row16(y)
		copy(out, row[x*ch:x*ch+ch])
		return out
	}
	row := s.Row(y)
	for c := range out {
		out[c] = uint16(row[x*ch+c])
	}
	return out
}

// RequirePixel fails the test unless the pixel at (x, y) equals want.
func RequirePixel(t testing.TB, s *surface.Surface, x, y int, want ...uint16) {
	t.Helper()
	got := Pixel(s, x, y)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("%s pixel (%d,%d) = %v, want %v", s, x, y, got, want)
	}
}

// RequireUniform fails the test unless every pixel equals want within tol.
func RequireUniform(t testing.TB, s *surface.Surface, tol int, want ...uint16) {
	t.Helper()
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			got := Pixel(s, x, y)
			for c := range got {
				d := int(got[c]) - int(want[c])
				if d < -tol || d > tol {
					t.Fatalf("%s pixel (%d,%d) = %v, want %v ±%d", s, x, y, got, want, tol)
				}
			}
		}
	}
}
