package main

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/filterhost/surface"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = ""
	commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the build and the surface formats it supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

type buildSummary struct {
	Version   string   `json:"version"`
	Revision  string   `json:"revision,omitempty"`
	GoVersion string   `json:"go_version"`
	Platform  string   `json:"platform"`
	Formats   []string `json:"formats"`
}

// currentBuild fills in whatever the linker flags left empty from the
// module build info.
func currentBuild() buildSummary {
	b := buildSummary{
		Version:   version,
		Revision:  commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if b.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			b.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && b.Revision == "" {
				b.Revision = s.Value
			}
		}
	}
	if b.Version == "" {
		b.Version = "devel"
	}
	if len(b.Revision) > 12 {
		b.Revision = b.Revision[:12]
	}
	for _, f := range surface.Formats() {
		b.Formats = append(b.Formats, f.String())
	}
	return b
}

func runVersion() error {
	b := currentBuild()
	if jsonOut {
		return printJSON(b)
	}
	line := "surfacectl " + b.Version
	if b.Revision != "" {
		line += " (" + b.Revision + ")"
	}
	printInfo("%s %s %s\n", line, b.GoVersion, b.Platform)
	printInfo("formats: %s\n", strings.Join(b.Formats, ", "))
	return nil
}
