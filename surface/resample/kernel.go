package resample

// cube is t^3 for positive t and 0 otherwise.
func cube(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return t * t * t
}

// bspline is the cubic B-spline kernel. It is non-negative, symmetric,
// supported on (-2, 2), and its integer translates sum to 1.
func bspline(x float64) float64 {
	if x <= -2 || x >= 2 {
		return 0
	}
	return (cube(x+2) - 4*cube(x+1) + 6*cube(x) - 4*cube(x-1)) / 6
}

// ceilDiv returns ceil(a/b) for a >= 0, b > 0.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// interiorSpan returns the destination range [lo, hi) whose four bicubic
// taps along one axis all land inside a source of srcN pixels.
func interiorSpan(srcN, dstN int) (lo, hi int) {
	if srcN < 4 || dstN < 2 {
		return 0, 0
	}
	lo = ceilDiv(dstN-1, srcN-1)
	hi = ceilDiv((srcN-2)*(dstN-1), srcN-1)
	if hi < lo {
		return 0, 0
	}
	return lo, hi
}

// bicubicTaps fills, for each destination index in [lo, hi), the first of
// its four source taps and their kernel weights.
func bicubicTaps(first []int32, w []float64, lo, hi, srcN, dstN int) {
	for d := lo; d < hi; d++ {
		i := d - lo
		var (
			base int
			frac float64
		)
		if dstN > 1 {
			num := d * (srcN - 1)
			base = num / (dstN - 1)
			frac = float64(num%(dstN-1)) / float64(dstN-1)
		}
		first[i] = int32(base - 1)
		for k := 0; k < 4; k++ {
			w[4*i+k] = bspline(float64(k-1) - frac)
		}
	}
}

// coverageSpans fills, for each destination index in [lo, hi), the first
// source pixel under it, how many source pixels it covers, where their
// weights start in w, and each pixel's coverage in source-pixel units.
// It returns the number of weights written.
func coverageSpans(first, count, off []int32, w []float64, lo, hi, srcN, dstN int) int {
	pos := 0
	for d := lo; d < hi; d++ {
		i := d - lo
		// Work in units of 1/dstN source pixels so every bound is an integer.
		start, end := d*srcN, (d+1)*srcN
		s0, s1 := start/dstN, (end-1)/dstN
		first[i] = int32(s0)
		count[i] = int32(s1 - s0 + 1)
		off[i] = int32(pos)
		for s := s0; s <= s1; s++ {
			covered := min(end, (s+1)*dstN) - max(start, s*dstN)
			w[pos] = float64(covered) / float64(dstN)
			pos++
		}
	}
	return pos
}
