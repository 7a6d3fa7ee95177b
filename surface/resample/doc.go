// Package resample fits one pixel surface into another of the same format.
//
// Two algorithms are provided:
//
//   - Bicubic interpolates with a cubic B-spline over a 4x4 neighborhood.
//     Destination pixel d samples the source at d*(srcN-1)/(dstN-1), so the
//     first and last pixels of each axis line up. Pixels whose taps all land
//     inside the source take a fast path with no per-tap checks; pixels near
//     the edges skip taps that fall outside and renormalize by the weights
//     that remain. The four destination corners copy the source corners.
//   - Supersample averages the exact source area under each destination
//     pixel. Whole pixels weigh 1, partially covered edge pixels weigh their
//     coverage. It only shrinks.
//
// Both algorithms weight color channels by alpha, so fully transparent
// source pixels contribute nothing to color, and a pixel whose alpha sum is
// zero comes out all zero. Results are rounded by adding 0.5 and truncating.
//
// Fit picks an algorithm and takes a bulk copy when sizes already match.
package resample
