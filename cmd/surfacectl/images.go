package main

import (
	"fmt"
	"image"
	_ "image/gif" // register GIF decoding
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoding

	"github.com/joshuapare/filterhost/surface"
)

// decodeFile reads any registered image format and reports which one it was.
func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, kind, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, kind, nil
}

// encodeFile writes img in the format implied by the path's extension.
// Unknown extensions are written as PNG.
func encodeFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// formatFor picks the surface format that holds img without losing depth.
func formatFor(img image.Image) surface.Format {
	switch img.(type) {
	case *image.Gray:
		return surface.FormatGray8
	case *image.Gray16:
		return surface.FormatGray16
	case *image.CMYK:
		return surface.FormatCMYK32
	case *image.RGBA64, *image.NRGBA64:
		return surface.FormatBGRA64
	case *image.YCbCr:
		return surface.FormatBGR24
	default:
		return surface.FormatBGRA32
	}
}

// resolveFormat parses a --format value; "auto" defers to formatFor.
func resolveFormat(name string, img image.Image) (surface.Format, error) {
	if name == "" || strings.EqualFold(name, "auto") {
		return formatFor(img), nil
	}
	return surface.ParseFormat(name)
}
