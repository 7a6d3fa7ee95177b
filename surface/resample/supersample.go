package resample

import (
	"image"

	"github.com/joshuapare/filterhost/pkg/types"
	"github.com/joshuapare/filterhost/surface"
)

// Supersample fills region of dst, clipped to its bounds, with the
// area-weighted average of the source pixels under each destination pixel.
// dst must be no larger than src on either axis.
func Supersample(src, dst *surface.Surface, region image.Rectangle) error {
	if err := checkPair(src, dst); err != nil {
		return err
	}
	if dst.Width() > src.Width() || dst.Height() > src.Height() {
		return types.Errorf(types.ErrKindInvalidArgument,
			"resample: supersample cannot enlarge %s to %s", src, dst)
	}
	region = region.Intersect(dst.Bounds())
	if region.Empty() {
		return nil
	}
	if dst.BitsPerChannel() == 16 {
		return supersample[uint16](src, dst, region)
	}
	return supersample[uint8](src, dst, region)
}

func supersample[T sample](src, dst *surface.Surface, r image.Rectangle) error {
	rw, rh := r.Dx(), r.Dy()
	sw, sh := src.Width(), src.Height()
	dw, dh := dst.Width(), dst.Height()

	// Each destination pixel overlaps at most one source pixel it shares with
	// its neighbor, so an axis needs at most srcN+regionN weights.
	nf := (sw + rw) + (sh + rh)
	ni := 3 * (rw + rh)

	return withScratch(dst.Arena(), nf, ni, func(w []float64, idx []int32) error {
		colFirst, colCount, colOff := idx[0:rw], idx[rw:2*rw], idx[2*rw:3*rw]
		rows := idx[3*rw:]
		rowFirst, rowCount, rowOff := rows[0:rh], rows[rh:2*rh], rows[2*rh:3*rh]

		nx := coverageSpans(colFirst, colCount, colOff, w, r.Min.X, r.Max.X, sw, dw)
		colW, rowW := w[:nx], w[nx:]
		coverageSpans(rowFirst, rowCount, rowOff, rowW, r.Min.Y, r.Max.Y, sh, dh)

		area := float64(sw) * float64(sh) / (float64(dw) * float64(dh))

		l := layoutOf(src)
		ch := l.channels
		srcRow := rowFunc[T](src)
		dstRow := rowFunc[T](dst)

		var ac accum
		for dy := r.Min.Y; dy < r.Max.Y; dy++ {
			j := dy - r.Min.Y
			out := dstRow(dy)
			for dx := r.Min.X; dx < r.Max.X; dx++ {
				i := dx - r.Min.X
				ac.reset()
				for ty := 0; ty < int(rowCount[j]); ty++ {
					wy := rowW[int(rowOff[j])+ty]
					row := srcRow(int(rowFirst[j]) + ty)
					for tx := 0; tx < int(colCount[i]); tx++ {
						wx := colW[int(colOff[i])+tx]
						p := (int(colFirst[i]) + tx) * ch
						addPixel(&ac, row[p:p+ch], wx*wy, l)
					}
				}
				storePixel(out[dx*ch:dx*ch+ch], &ac, area, l)
			}
		}
		return nil
	})
}
