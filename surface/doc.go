// Package surface implements pixel surfaces: rectangular pixel buffers in
// native memory that plugins read and write through raw addresses.
//
// # Formats
//
//	Format        bytes/px  channels  bits  alpha  stride
//	FormatGray8   1         1         8     no     width
//	FormatGray16  2         1         16    no     width*2
//	FormatBGR24   3         3         8     no     width*3 rounded up to 4
//	FormatBGRA32  4         4         8     yes    width*4
//	FormatBGRA64  8         4         16    yes    width*8
//	FormatCMYK32  4         4         8     no     width*4
//
// 16-bit surfaces hold plugin-native values in [0,32768]; see package depth.
// Alpha is straight (not premultiplied).
//
// # Addressing
//
// RowAddress and PointAddressClamped never fail and never check bounds
// beyond the clamp; PointAddress returns types.ErrOutOfRange for pixels
// outside the surface. Raw exposes the base address for plugin calls.
// Addresses stay valid until Close.
//
// # Host Images
//
// FromImage and ToImage convert between surfaces and the standard library's
// image types, which serve as the host bitmap representation.
package surface
