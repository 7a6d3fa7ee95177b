// Package buf contains size arithmetic and big-endian sample helpers for pixel buffers.
package buf

import "encoding/binary"

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
// Go's 16-bit image types store samples big-endian.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// PutU16BE writes v big-endian into b. Does nothing when b is too short.
func PutU16BE(b []byte, v uint16) {
	if len(b) < 2 {
		return
	}
	binary.BigEndian.PutUint16(b, v)
}
