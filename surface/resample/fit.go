package resample

import (
	"github.com/joshuapare/filterhost/internal/logger"
	"github.com/joshuapare/filterhost/pkg/types"
	"github.com/joshuapare/filterhost/surface"
)

// Fit resizes src into all of dst. Surfaces of identical size are copied
// byte for byte.
func Fit(src, dst *surface.Surface, mode Mode) error {
	if err := checkPair(src, dst); err != nil {
		return err
	}
	if src.Width() == dst.Width() && src.Height() == dst.Height() {
		logger.Debug("resample: fit", "src", src.String(), "dst", dst.String(), "mode", "copy")
		return dst.CopyFrom(src)
	}

	if mode == ModeAuto {
		mode = ModeBicubic
		if dst.Width() <= src.Width() && dst.Height() <= src.Height() {
			mode = ModeSupersample
		}
	}
	logger.Debug("resample: fit", "src", src.String(), "dst", dst.String(), "mode", mode.String())

	switch mode {
	case ModeBicubic:
		return Bicubic(src, dst, dst.Bounds())
	case ModeSupersample:
		return Supersample(src, dst, dst.Bounds())
	default:
		return types.Errorf(types.ErrKindInvalidArgument, "resample: unknown mode %d", uint8(mode))
	}
}
