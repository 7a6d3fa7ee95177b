package host

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/joshuapare/filterhost/internal/logger"
	"github.com/joshuapare/filterhost/pkg/types"
	"github.com/joshuapare/filterhost/surface"
	"github.com/joshuapare/filterhost/surface/arena"
	"github.com/joshuapare/filterhost/surface/resample"
)

// Options controls a Host. A nil *Options selects the defaults.
type Options struct {
	// Policy routes arena requests. A zero Policy selects arena.DefaultPolicy.
	Policy arena.Policy

	// SizeClasses shapes the arena's small heap.
	// Zero selects arena.ConfigDefault.
	SizeClasses arena.SizeClassConfig

	// Logger, if set, replaces the process-wide logger.
	Logger *slog.Logger

	// MemoryLimitBase anchors the runtime soft memory limit.
	// Zero leaves the limit alone; a negative value anchors at the limit
	// currently in effect.
	MemoryLimitBase int64

	// DPI is assigned to surfaces created by the Host. Zero selects 96.
	DPI float64
}

// Host owns an arena and the surfaces allocated from it.
type Host struct {
	arena    *arena.Arena
	reporter *arena.MemoryLimitReporter
	dpi      float64
	closed   bool
}

// New creates a Host.
func New(opts *Options) *Host {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Logger != nil {
		logger.Set(opts.Logger)
	}

	h := &Host{dpi: opts.DPI}
	if h.dpi <= 0 {
		h.dpi = types.DefaultDPI
	}

	aopts := arena.Options{
		Policy:      opts.Policy,
		SizeClasses: opts.SizeClasses,
	}
	if opts.MemoryLimitBase != 0 {
		h.reporter = arena.NewMemoryLimitReporter(max(opts.MemoryLimitBase, 0))
		aopts.Reporter = h.reporter
	}
	h.arena = arena.New(aopts)
	h.arena.Init()

	logger.Debug("host: created",
		"threshold", h.arena.Policy().LargeThreshold,
		"retry", h.arena.Policy().RetryOnOOM,
		"memoryLimit", opts.MemoryLimitBase)
	return h
}

// Arena returns the arena backing the Host's surfaces.
func (h *Host) Arena() *arena.Arena { return h.arena }

func (h *Host) surfaceOptions() *surface.Options {
	return &surface.Options{DPIX: h.dpi, DPIY: h.dpi}
}

func (h *Host) check(op string) error {
	if h.closed {
		return types.Errorf(types.ErrKindDisposed, "host: %s after close", op)
	}
	return nil
}

// NewSurface allocates a zeroed surface.
func (h *Host) NewSurface(f surface.Format, width, height int) (*surface.Surface, error) {
	if err := h.check("new surface"); err != nil {
		return nil, err
	}
	return surface.New(h.arena, f, width, height, h.surfaceOptions())
}

// FromImage copies img into a new surface of format f.
func (h *Host) FromImage(f surface.Format, img image.Image) (*surface.Surface, error) {
	if err := h.check("from image"); err != nil {
		return nil, err
	}
	return surface.FromImage(h.arena, f, img, h.surfaceOptions())
}

// ToImage copies s into a new host image.
func (h *Host) ToImage(s *surface.Surface) (image.Image, error) {
	if err := h.check("to image"); err != nil {
		return nil, err
	}
	return s.ToImage()
}

// Fit allocates a width x height surface of src's format and DPI and
// resamples src into it. The new surface is released if resampling fails.
func (h *Host) Fit(src *surface.Surface, width, height int, mode resample.Mode) (*surface.Surface, error) {
	if err := h.check("fit"); err != nil {
		return nil, err
	}
	if src.Closed() {
		return nil, types.Errorf(types.ErrKindDisposed, "host: fit from closed %s", src)
	}

	dx, dy := src.DPI()
	dst, err := surface.New(h.arena, src.Format(), width, height, &surface.Options{DPIX: dx, DPIY: dy})
	if err != nil {
		return nil, err
	}
	if err := resample.Fit(src, dst, mode); err != nil {
		return nil, errors.Join(err, dst.Close())
	}
	return dst, nil
}

// Metrics returns a snapshot of the Host's arena usage.
func (h *Host) Metrics() arena.Metrics {
	return h.arena.Metrics()
}

// Close destroys the arena. Surfaces still open are unmapped and reported
// as an error matching types.ErrLeaked. Calling Close more than once is a
// no-op.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	m := h.arena.Metrics()
	err := h.arena.Destroy()
	if h.reporter != nil {
		h.reporter.Restore()
	}
	if err != nil {
		logger.Warn("host: closed with live surfaces",
			"blocks", m.Blocks(), "bytes", m.LiveBytes)
		return fmt.Errorf("host: close: %w", err)
	}
	logger.Debug("host: closed", "allocations", m.Allocations, "peak", m.PeakBytes)
	return nil
}
