package resample

import (
	"fmt"
	"strings"

	"github.com/joshuapare/filterhost/pkg/types"
)

// Mode selects the resampling algorithm used by Fit.
type Mode uint8

const (
	// ModeAuto supersamples when the destination is no larger than the
	// source on both axes and interpolates bicubically otherwise.
	ModeAuto Mode = iota
	// ModeBicubic always interpolates.
	ModeBicubic
	// ModeSupersample always averages; it fails when either axis grows.
	ModeSupersample
)

// String implements the Stringer interface for Mode.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeBicubic:
		return "bicubic"
	case ModeSupersample:
		return "supersample"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode resolves a mode name. Matching is case-insensitive.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ModeAuto, nil
	case "bicubic", "cubic":
		return ModeBicubic, nil
	case "supersample", "area":
		return ModeSupersample, nil
	}
	return 0, types.Errorf(types.ErrKindInvalidArgument, "resample: unknown mode %q", name)
}
