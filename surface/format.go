package surface

import (
	"fmt"
	"strings"

	"github.com/joshuapare/filterhost/pkg/types"
)

// Format represents a pixel storage format. Multi-channel formats store
// channels in the byte order their name spells, blue first for BGR*.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota + 1

	// FormatGray16 is 16-bit grayscale in the native [0,32768] range
	// (2 bytes per pixel).
	FormatGray16

	// FormatBGR24 is 24-bit BGR (3 bytes per pixel, no alpha).
	// Rows are padded to a multiple of 4 bytes.
	FormatBGR24

	// FormatBGRA32 is 32-bit BGRA with straight alpha (4 bytes per pixel).
	FormatBGRA32

	// FormatBGRA64 is 64-bit BGRA in the native [0,32768] range with
	// straight alpha (8 bytes per pixel).
	FormatBGRA64

	// FormatCMYK32 is 32-bit CMYK (4 bytes per pixel, no alpha).
	FormatCMYK32

	formatEnd
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	Name string

	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of channels, alpha included.
	Channels int

	// BitsPerChannel is 8 or 16.
	BitsPerChannel int

	// AlphaIndex is the channel index of alpha, or -1.
	AlphaIndex int

	// AlignStride rounds the row stride up to a multiple of 4.
	AlignStride bool

	// Max is the largest channel value stored in a surface.
	Max int
}

// HasAlpha indicates if the format has an alpha channel.
func (fi FormatInfo) HasAlpha() bool { return fi.AlphaIndex >= 0 }

var formatInfoTable = [formatEnd]FormatInfo{
	FormatGray8: {
		Name:           "gray8",
		BytesPerPixel:  1,
		Channels:       1,
		BitsPerChannel: 8,
		AlphaIndex:     -1,
		Max:            types.Max8,
	},
	FormatGray16: {
		Name:           "gray16",
		BytesPerPixel:  2,
		Channels:       1,
		BitsPerChannel: 16,
		AlphaIndex:     -1,
		Max:            types.NativeMax16,
	},
	FormatBGR24: {
		Name:           "bgr24",
		BytesPerPixel:  3,
		Channels:       3,
		BitsPerChannel: 8,
		AlphaIndex:     -1,
		AlignStride:    true,
		Max:            types.Max8,
	},
	FormatBGRA32: {
		Name:           "bgra32",
		BytesPerPixel:  4,
		Channels:       4,
		BitsPerChannel: 8,
		AlphaIndex:     3,
		Max:            types.Max8,
	},
	FormatBGRA64: {
		Name:           "bgra64",
		BytesPerPixel:  8,
		Channels:       4,
		BitsPerChannel: 16,
		AlphaIndex:     3,
		Max:            types.NativeMax16,
	},
	FormatCMYK32: {
		Name:           "cmyk32",
		BytesPerPixel:  4,
		Channels:       4,
		BitsPerChannel: 8,
		AlphaIndex:     -1,
		Max:            types.Max8,
	},
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f > 0 && f < formatEnd
}

// Info returns the FormatInfo for this format.
func (f Format) Info() (FormatInfo, bool) {
	if !f.Valid() {
		return FormatInfo{}, false
	}
	return formatInfoTable[f], true
}

// String implements the Stringer interface for Format.
func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formatInfoTable[f].Name
}

// Formats lists every supported format.
func Formats() []Format {
	out := make([]Format, 0, formatEnd-1)
	for f := Format(1); f < formatEnd; f++ {
		out = append(out, f)
	}
	return out
}

// ParseFormat resolves a format name such as "bgra32". Matching is
// case-insensitive.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f := Format(1); f < formatEnd; f++ {
		if formatInfoTable[f].Name == name {
			return f, nil
		}
	}
	return 0, types.Errorf(types.ErrKindInvalidArgument, "surface: unknown format %q", name)
}
