/*
Package host is the entry point a plugin host uses to hand pixel data to
filters and take results back.

# Quick Start

Load an image, resize it and read it back:

	h := host.New(nil)
	defer h.Close()

	src, err := h.FromImage(surface.FormatBGRA32, img)
	if err != nil {
	    return err
	}
	defer src.Close()

	dst, err := h.Fit(src, 640, 480, resample.ModeAuto)
	if err != nil {
	    return err
	}
	defer dst.Close()

	out, err := dst.ToImage()

# Memory

Every surface a Host creates lives in the Host's own arena. Close destroys
the arena and reports, as an error matching types.ErrLeaked, any surface
that was never closed. When Options.MemoryLimitBase is set, the Go
runtime's soft memory limit shrinks by the native bytes the arena holds.
*/
package host
