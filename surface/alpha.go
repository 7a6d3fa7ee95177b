package surface

import (
	"image"

	"github.com/joshuapare/filterhost/pkg/types"
)

// HasTransparency reports whether any pixel has alpha below fully opaque.
// Formats without alpha always report false.
func (s *Surface) HasTransparency() bool {
	if s.closed || !s.info.HasAlpha() {
		return false
	}
	ai := s.info.AlphaIndex
	ch := s.info.Channels

	switch s.info.BitsPerChannel {
	case 8:
		for y := 0; y < s.height; y++ {
			row := s.Row(y)
			for i := ai; i < len(row); i += ch {
				if row[i] < types.Max8 {
					return true
				}
			}
		}
	case 16:
		for y := 0; y < s.height; y++ {
			row := s.Row16(y)
			for i := ai; i < len(row); i += ch {
				if row[i] < types.NativeMax16 {
					return true
				}
			}
		}
	}
	return false
}

// SetAlphaToOpaque sets alpha to fully opaque inside rects, or over the
// whole surface when none are given. Rectangles are clipped to the surface.
// Formats without alpha are left unchanged.
func (s *Surface) SetAlphaToOpaque(rects ...image.Rectangle) {
	if s.closed || !s.info.HasAlpha() {
		return
	}
	if len(rects) == 0 {
		rects = []image.Rectangle{s.Bounds()}
	}
	ai := s.info.AlphaIndex
	ch := s.info.Channels

	for _, r := range rects {
		r = r.Intersect(s.Bounds())
		if r.Empty() {
			continue
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			if s.info.BitsPerChannel == 16 {
				row := s.Row16(y)
				for x := r.Min.X; x < r.Max.X; x++ {
					row[x*ch+ai] = types.NativeMax16
				}
				continue
			}
			row := s.Row(y)
			for x := r.Min.X; x < r.Max.X; x++ {
				row[x*ch+ai] = types.Max8
			}
		}
	}
}
