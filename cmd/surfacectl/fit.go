package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/filterhost/pkg/host"
	"github.com/joshuapare/filterhost/surface/resample"
)

var (
	fitWidth  int
	fitHeight int
	fitMode   string
	fitFormat string
	fitDPI    float64
)

func init() {
	cmd := newFitCmd()
	cmd.Flags().IntVar(&fitWidth, "width", 0, "Output width in pixels (0 keeps the aspect ratio)")
	cmd.Flags().IntVar(&fitHeight, "height", 0, "Output height in pixels (0 keeps the aspect ratio)")
	cmd.Flags().StringVar(&fitMode, "mode", "auto", "Resampling mode (auto, bicubic, supersample)")
	cmd.Flags().StringVar(&fitFormat, "format", "auto", "Surface format used while resizing")
	cmd.Flags().Float64Var(&fitDPI, "dpi", 0, "Resolution recorded on the surfaces (0 selects 96)")
	rootCmd.AddCommand(cmd)
}

func newFitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit <input> <output>",
		Short: "Resize an image through a native surface",
		Long: `The fit command decodes an image, loads it into a surface of the chosen
format and resamples it to the requested size. The output format follows the
output file extension (png, jpg, bmp, tif); anything else is written as PNG.

Example:
  surfacectl fit photo.jpg thumb.png --width 320
  surfacectl fit scan.tif out.tif --width 2000 --height 1500 --mode bicubic
  surfacectl fit icon.png small.png --width 16 --format bgra64`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(args)
		},
	}
	return cmd
}

// fitResult is the JSON form of a fit run.
type fitResult struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Format    string `json:"format"`
	Mode      string `json:"mode"`
	SrcWidth  int    `json:"src_width"`
	SrcHeight int    `json:"src_height"`
	DstWidth  int    `json:"dst_width"`
	DstHeight int    `json:"dst_height"`
	PeakBytes int64  `json:"peak_bytes"`
	Elapsed   string `json:"elapsed"`
}

func runFit(args []string) error {
	inPath, outPath := args[0], args[1]

	mode, err := resample.ParseMode(fitMode)
	if err != nil {
		return err
	}

	img, kind, err := decodeFile(inPath)
	if err != nil {
		return err
	}
	format, err := resolveFormat(fitFormat, img)
	if err != nil {
		return err
	}
	b := img.Bounds()
	w, h, err := targetSize(b.Dx(), b.Dy(), fitWidth, fitHeight)
	if err != nil {
		return err
	}
	printVerbose("Loaded %s (%s, %dx%d) as %s\n", inPath, kind, b.Dx(), b.Dy(), format)

	hst := host.New(&host.Options{DPI: fitDPI})
	defer hst.Close()

	start := time.Now()
	src, err := hst.FromImage(format, img)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	defer src.Close()

	dst, err := hst.Fit(src, w, h, mode)
	if err != nil {
		return fmt.Errorf("failed to resize: %w", err)
	}
	defer dst.Close()

	out, err := hst.ToImage(dst)
	if err != nil {
		return fmt.Errorf("failed to read surface: %w", err)
	}
	elapsed := time.Since(start)

	if err := encodeFile(outPath, out); err != nil {
		return err
	}

	res := fitResult{
		Input:     inPath,
		Output:    outPath,
		Format:    format.String(),
		Mode:      mode.String(),
		SrcWidth:  b.Dx(),
		SrcHeight: b.Dy(),
		DstWidth:  w,
		DstHeight: h,
		PeakBytes: hst.Metrics().PeakBytes,
		Elapsed:   elapsed.String(),
	}
	if jsonOut {
		return printJSON(res)
	}
	printInfo("%s -> %s: %dx%d -> %dx%d (%s, %s) in %s\n",
		inPath, outPath, res.SrcWidth, res.SrcHeight, w, h, res.Format, res.Mode, res.Elapsed)
	printVerbose("Peak native memory: %s\n", formatSize(res.PeakBytes))
	return nil
}

// targetSize resolves the output size. A zero side follows the source
// aspect ratio; both zero keeps the source size.
func targetSize(sw, sh, w, h int) (int, int, error) {
	if w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("invalid size %dx%d", w, h)
	}
	switch {
	case w == 0 && h == 0:
		return sw, sh, nil
	case w == 0:
		w = max(1, (sw*h+sh/2)/sh)
	case h == 0:
		h = max(1, (sh*w+sw/2)/sw)
	}
	return w, h, nil
}
