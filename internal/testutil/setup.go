// Package testutil holds builders and assertions shared by package tests.
package testutil

import (
	"testing"

	"github.com/joshuapare/filterhost/surface"
	"github.com/joshuapare/filterhost/surface/arena"
)

// NewArena creates an arena that is destroyed when the test ends.
// The test fails if any block is still outstanding at that point.
//
// Example:
//
//	a := testutil.NewArena(t)
//	s := testutil.NewSurface(t, a, surface.FormatBGRA32, 4, 4)
func NewArena(t testing.TB) *arena.Arena {
	t.Helper()
	a := arena.New(arena.Options{})
	t.Cleanup(func() {
		if err := a.Destroy(); err != nil {
			t.Errorf("arena destroy: %v", err)
		}
	})
	return a
}

// NewSurface allocates a zeroed surface that is closed when the test ends.
func NewSurface(t testing.TB, a *arena.Arena, f surface.Format, w, h int) *surface.Surface {
	t.Helper()
	s, err := surface.New(a, f, w, h, nil)
	if err != nil {
		t.Fatalf("surface.New(%s, %d, %d): %v", f, w, h, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// Uniform allocates a surface with every pixel set to vals, one value per
// channel in storage order.
func Uniform(t testing.TB, a *arena.Arena, f surface.Format, w, h int, vals ...uint16) *surface.Surface {
	t.Helper()
	s := NewSurface(t, a, f, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			SetPixel(s, x, y, vals...)
		}
	}
	return s
}

// Fill sets every pixel of s to the channel values returned by fn.
func Fill(s *surface.Surface, fn func(x, y int) []uint16) {
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			SetPixel(s, x, y, fn(x, y)...)
		}
	}
}
