// Package depth remaps 16-bit channel values between the host range
// [0,65535] and the plugin-native range [0,32768].
//
// The forward direction uses a precomputed table so every host value lands on
// the native value a plugin expects; the inverse doubles and saturates.
// Native-to-host-to-native is exact for every native value.
package depth

import (
	"sync"

	"github.com/joshuapare/filterhost/pkg/types"
)

const (
	// HostMax is the largest host-side 16-bit value.
	HostMax = types.HostMax16
	// NativeMax is the largest plugin-native 16-bit value.
	NativeMax = types.NativeMax16
)

var (
	tableOnce sync.Once
	table     *[HostMax + 1]uint16
)

func lookup() *[HostMax + 1]uint16 {
	tableOnce.Do(func() {
		t := new([HostMax + 1]uint16)
		for i := range t {
			t[i] = uint16((uint32(i)*NativeMax + NativeMax - 1) / HostMax)
		}
		table = t
	})
	return table
}

// ToNative maps a host value to the native range.
func ToNative(v uint16) uint16 {
	return lookup()[v]
}

// FromNative maps a native value back to the host range.
// Values above NativeMax saturate at HostMax.
func FromNative(v uint16) uint16 {
	w := uint32(v) * 2
	if w > HostMax {
		return HostMax
	}
	return uint16(w)
}

// ToNativeRow maps len(dst) host values from src. dst and src may alias.
func ToNativeRow(dst, src []uint16) {
	t := lookup()
	src = src[:len(dst)]
	for i, v := range src {
		dst[i] = t[v]
	}
}

// FromNativeRow maps len(dst) native values from src. dst and src may alias.
func FromNativeRow(dst, src []uint16) {
	src = src[:len(dst)]
	for i, v := range src {
		dst[i] = FromNative(v)
	}
}
