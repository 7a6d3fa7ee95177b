package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/filterhost/surface"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported surface formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormats()
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

type formatRow struct {
	Name           string `json:"name"`
	BytesPerPixel  int    `json:"bytes_per_pixel"`
	Channels       int    `json:"channels"`
	BitsPerChannel int    `json:"bits_per_channel"`
	Alpha          bool   `json:"alpha"`
	AlignedStride  bool   `json:"aligned_stride"`
	Max            int    `json:"max"`
}

func runFormats() error {
	var rows []formatRow
	for _, f := range surface.Formats() {
		fi, _ := f.Info()
		rows = append(rows, formatRow{
			Name:           fi.Name,
			BytesPerPixel:  fi.BytesPerPixel,
			Channels:       fi.Channels,
			BitsPerChannel: fi.BitsPerChannel,
			Alpha:          fi.HasAlpha(),
			AlignedStride:  fi.AlignStride,
			Max:            fi.Max,
		})
	}

	if jsonOut {
		return printJSON(rows)
	}
	printInfo("%-8s %5s %4s %4s %6s %7s %6s\n", "FORMAT", "BYTES", "CH", "BITS", "ALPHA", "ALIGN4", "MAX")
	for _, r := range rows {
		printInfo("%-8s %5d %4d %4d %6t %7t %6d\n",
			r.Name, r.BytesPerPixel, r.Channels, r.BitsPerChannel, r.Alpha, r.AlignedStride, r.Max)
	}
	return nil
}
