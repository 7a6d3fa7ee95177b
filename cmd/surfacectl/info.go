package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/filterhost/pkg/host"
	"github.com/joshuapare/filterhost/surface/arena"
)

var infoFormat string

func init() {
	cmd := newInfoCmd()
	cmd.Flags().StringVar(&infoFormat, "format", "auto", "Surface format to load the image as")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Load an image into a surface and report its layout",
		Long: `The info command decodes an image, loads it into a native surface and
displays the surface layout: format, stride, buffer size, the arena strategy
that served it and whether any pixel is transparent.

Example:
  surfacectl info photo.png
  surfacectl info scan.tif --format gray16 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// surfaceInfo is the JSON form of the info command.
type surfaceInfo struct {
	File            string  `json:"file"`
	FileSize        int64   `json:"file_size"`
	Decoder         string  `json:"decoder"`
	Format          string  `json:"format"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Stride          int     `json:"stride"`
	BytesPerPixel   int     `json:"bytes_per_pixel"`
	BufferBytes     int     `json:"buffer_bytes"`
	Strategy        string  `json:"strategy"`
	DPIX            float64 `json:"dpi_x"`
	DPIY            float64 `json:"dpi_y"`
	HasTransparency bool    `json:"has_transparency"`
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Decoding image: %s\n", path)
	img, kind, err := decodeFile(path)
	if err != nil {
		return err
	}
	format, err := resolveFormat(infoFormat, img)
	if err != nil {
		return err
	}

	hst := host.New(nil)
	defer hst.Close()

	s, err := hst.FromImage(format, img)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	defer s.Close()

	size := s.Stride() * s.Height()
	dx, dy := s.DPI()
	info := surfaceInfo{
		File:            path,
		Decoder:         kind,
		Format:          format.String(),
		Width:           s.Width(),
		Height:          s.Height(),
		Stride:          s.Stride(),
		BytesPerPixel:   s.BytesPerPixel(),
		BufferBytes:     size,
		Strategy:        s.Strategy().String(),
		DPIX:            dx,
		DPIY:            dy,
		HasTransparency: s.HasTransparency(),
	}
	if stat, err := os.Stat(path); err == nil {
		info.FileSize = stat.Size()
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nSurface Information:\n")
	printInfo("  File: %s (%s, %s)\n", info.File, info.Decoder, formatSize(info.FileSize))
	printInfo("  Format: %s\n", info.Format)
	printInfo("  Size: %dx%d\n", info.Width, info.Height)
	printInfo("  Stride: %d bytes (%d per pixel)\n", info.Stride, info.BytesPerPixel)
	printInfo("  Buffer: %s\n", formatSize(int64(info.BufferBytes)))
	printInfo("  Strategy: %s\n", info.Strategy)
	printInfo("  DPI: %.0fx%.0f\n", info.DPIX, info.DPIY)
	printInfo("  Transparency: %t\n", info.HasTransparency)
	if info.Strategy == arena.StrategyLarge.String() {
		printVerbose("  Buffer is mapped directly from OS pages\n")
	}
	return nil
}
