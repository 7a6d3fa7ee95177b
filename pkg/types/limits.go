package types

// ============================================================================
// Pixel Surface Limits
// ============================================================================
// These constants are shared by the arena, the surfaces and the resampler.
// They are fixed by the plugin ABI and must not be tuned per host.

const (
	// LargeBlockThreshold is the request size, in bytes, at and above which
	// the arena serves memory from OS pages instead of its small heap.
	LargeBlockThreshold = 64 << 10 // 65,536 bytes

	// DefaultDPI is the resolution assigned to surfaces created without one.
	DefaultDPI = 96.0

	// HostMax16 is the maximum 16-bit channel value on the host side.
	HostMax16 = 65535

	// NativeMax16 is the maximum 16-bit channel value inside a surface.
	// Plugins use a 15-bit-plus-one range where 32768 means fully on.
	NativeMax16 = 32768

	// Max8 is the maximum 8-bit channel value.
	Max8 = 255

	// StrideAlign is the row alignment, in bytes, of 3-byte-per-pixel surfaces.
	StrideAlign = 4
)
