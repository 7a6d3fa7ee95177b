package resample

import (
	"github.com/joshuapare/filterhost/pkg/types"
	"github.com/joshuapare/filterhost/surface"
)

// sample is a stored channel type.
type sample interface {
	uint8 | uint16
}

// layout describes how one pixel is stored.
type layout struct {
	channels int
	alpha    int // channel index of alpha, or -1
	max      float64
}

func layoutOf(s *surface.Surface) layout {
	info := s.Info()
	return layout{
		channels: info.Channels,
		alpha:    info.AlphaIndex,
		max:      float64(info.Max),
	}
}

// rowFunc returns an accessor for rows of s as samples of type T.
func rowFunc[T sample](s *surface.Surface) func(y int) []T {
	var zero T
	if _, ok := any(zero).(uint16); ok {
		return func(y int) []T { return any(s.Row16(y)).([]T) }
	}
	return func(y int) []T { return any(s.Row(y)).([]T) }
}

// accum sums weighted pixels. Color is weighted by alpha times the tap
// weight; alpha by the tap weight alone.
type accum struct {
	w float64    // sum of weights
	a float64    // sum of alpha * weight
	c [4]float64 // per channel sum of value * alpha * weight
}

func (ac *accum) reset() { *ac = accum{} }

func addPixel[T sample](ac *accum, px []T, w float64, l layout) {
	a := 1.0
	if l.alpha >= 0 {
		a = float64(px[l.alpha])
	}
	aw := a * w
	ac.w += w
	ac.a += aw
	for c := 0; c < l.channels; c++ {
		if c == l.alpha {
			continue
		}
		ac.c[c] += float64(px[c]) * aw
	}
}

// storePixel writes the accumulated pixel to out. Alpha is the alpha sum
// divided by norm; color is the color sum divided by the alpha sum, or zero
// when no alpha was accumulated.
func storePixel[T sample](out []T, ac *accum, norm float64, l layout) {
	for c := 0; c < l.channels; c++ {
		var v float64
		switch {
		case c == l.alpha:
			if norm > 0 {
				v = ac.a / norm
			}
		case ac.a > 0:
			v = ac.c[c] / ac.a
		}
		out[c] = T(round(v, l.max))
	}
}

// round adds 0.5 and truncates into [0, hi].
func round(v, hi float64) uint32 {
	v += 0.5
	if v <= 0 {
		return 0
	}
	if v >= hi {
		return uint32(hi)
	}
	return uint32(v)
}

func checkPair(src, dst *surface.Surface) error {
	if src.Closed() {
		return types.Errorf(types.ErrKindDisposed, "resample: source %s is closed", src)
	}
	if dst.Closed() {
		return types.Errorf(types.ErrKindDisposed, "resample: destination %s is closed", dst)
	}
	if src.Format() != dst.Format() {
		return types.Errorf(types.ErrKindInvalidArgument,
			"resample: format mismatch %s -> %s", src.Format(), dst.Format())
	}
	return nil
}
