package resample

import (
	"image"

	"github.com/joshuapare/filterhost/surface"
)

// Bicubic fills region of dst, clipped to its bounds, by cubic B-spline
// interpolation of src. Pixels of dst outside region are left unchanged.
func Bicubic(src, dst *surface.Surface, region image.Rectangle) error {
	if err := checkPair(src, dst); err != nil {
		return err
	}
	region = region.Intersect(dst.Bounds())
	if region.Empty() {
		return nil
	}
	if dst.BitsPerChannel() == 16 {
		return bicubic[uint16](src, dst, region)
	}
	return bicubic[uint8](src, dst, region)
}

func bicubic[T sample](src, dst *surface.Surface, r image.Rectangle) error {
	rw, rh := r.Dx(), r.Dy()
	sw, sh := src.Width(), src.Height()
	dw, dh := dst.Width(), dst.Height()

	return withScratch(dst.Arena(), 4*(rw+rh), rw+rh, func(w []float64, idx []int32) error {
		colW, rowW := w[:4*rw], w[4*rw:]
		colX, rowY := idx[:rw], idx[rw:]
		bicubicTaps(colX, colW, r.Min.X, r.Max.X, sw, dw)
		bicubicTaps(rowY, rowW, r.Min.Y, r.Max.Y, sh, dh)

		ix0, ix1 := interiorSpan(sw, dw)
		iy0, iy1 := interiorSpan(sh, dh)

		l := layoutOf(src)
		ch := l.channels
		srcRow := rowFunc[T](src)
		dstRow := rowFunc[T](dst)

		var ac accum
		for dy := r.Min.Y; dy < r.Max.Y; dy++ {
			j := dy - r.Min.Y
			sy := int(rowY[j])
			wy := rowW[4*j : 4*j+4]
			out := dstRow(dy)
			rowInterior := dy >= iy0 && dy < iy1

			for dx := r.Min.X; dx < r.Max.X; dx++ {
				i := dx - r.Min.X
				sx := int(colX[i])
				wx := colW[4*i : 4*i+4]
				ac.reset()

				if rowInterior && dx >= ix0 && dx < ix1 {
					for ty := 0; ty < 4; ty++ {
						row := srcRow(sy + ty)
						for tx := 0; tx < 4; tx++ {
							p := (sx + tx) * ch
							addPixel(&ac, row[p:p+ch], wx[tx]*wy[ty], l)
						}
					}
				} else {
					for ty := 0; ty < 4; ty++ {
						y := sy + ty
						var row []T
						for tx := 0; tx < 4; tx++ {
							x := sx + tx
							if !src.IsVisible(x, y) {
								continue
							}
							if row == nil {
								row = srcRow(y)
							}
							p := x * ch
							addPixel(&ac, row[p:p+ch], wx[tx]*wy[ty], l)
						}
					}
				}

				storePixel(out[dx*ch:dx*ch+ch], &ac, ac.w, l)
			}
		}

		pinCorners[T](src, dst, r)
		return nil
	})
}

// pinCorners copies each source corner pixel onto the matching destination
// corner inside r.
func pinCorners[T sample](src, dst *surface.Surface, r image.Rectangle) {
	ch := src.Channels()
	srcRow := rowFunc[T](src)
	dstRow := rowFunc[T](dst)
	sw, sh := src.Width(), src.Height()
	dw, dh := dst.Width(), dst.Height()

	for _, cy := range [2]int{0, dh - 1} {
		sy := 0
		if cy > 0 {
			sy = sh - 1
		}
		for _, cx := range [2]int{0, dw - 1} {
			if !image.Pt(cx, cy).In(r) {
				continue
			}
			sx := 0
			if cx > 0 {
				sx = sw - 1
			}
			copy(dstRow(cy)[cx*ch:cx*ch+ch], srcRow(sy)[sx*ch:sx*ch+ch])
		}
	}
}
