package surface

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/joshuapare/filterhost/internal/buf"
	"github.com/joshuapare/filterhost/pkg/types"
	"github.com/joshuapare/filterhost/surface/arena"
	"github.com/joshuapare/filterhost/surface/depth"
)

// FromImage allocates a surface of format f holding img. Images of other
// types are first normalized with golang.org/x/image/draw; 16-bit samples
// are remapped into the native range.
func FromImage(a *arena.Arena, f Format, img image.Image, opts *Options) (*Surface, error) {
	if img == nil {
		return nil, types.Errorf(types.ErrKindInvalidArgument, "surface: nil image")
	}
	b := img.Bounds()
	s, err := New(a, f, b.Dx(), b.Dy(), opts)
	if err != nil {
		return nil, err
	}

	switch f {
	case FormatGray8:
		g := toGray(img)
		for y := 0; y < s.height; y++ {
			off := g.PixOffset(b.Min.X, b.Min.Y+y)
			copy(s.Row(y), g.Pix[off:off+s.width])
		}

	case FormatGray16:
		g := toGray16(img)
		for y := 0; y < s.height; y++ {
			src := g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):]
			row := s.Row16(y)
			for x := range row {
				row[x] = buf.U16BE(src[2*x:])
			}
			depth.ToNativeRow(row, row)
		}

	case FormatBGR24:
		n := toNRGBA(img)
		for y := 0; y < s.height; y++ {
			src := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			row := s.Row(y)
			for x := 0; x < s.width; x++ {
				p := src[4*x : 4*x+3 : 4*x+3]
				row[3*x+0] = p[2]
				row[3*x+1] = p[1]
				row[3*x+2] = p[0]
			}
		}

	case FormatBGRA32:
		n := toNRGBA(img)
		for y := 0; y < s.height; y++ {
			src := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			swapRB8(s.Row(y), src[:4*s.width])
		}

	case FormatBGRA64:
		n := toNRGBA64(img)
		for y := 0; y < s.height; y++ {
			src := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			row := s.Row16(y)
			for x := 0; x < s.width; x++ {
				p := src[8*x : 8*x+8 : 8*x+8]
				row[4*x+0] = buf.U16BE(p[4:])
				row[4*x+1] = buf.U16BE(p[2:])
				row[4*x+2] = buf.U16BE(p[0:])
				row[4*x+3] = buf.U16BE(p[6:])
			}
			depth.ToNativeRow(row, row)
		}

	case FormatCMYK32:
		c := toCMYK(img)
		for y := 0; y < s.height; y++ {
			off := c.PixOffset(b.Min.X, b.Min.Y+y)
			copy(s.Row(y), c.Pix[off:off+4*s.width])
		}
	}
	return s, nil
}

// ToImage copies the surface into a new host image:
//
//	gray8  -> *image.Gray
//	gray16 -> *image.Gray16 (samples remapped to [0,65535])
//	bgr24  -> *image.RGBA (opaque)
//	bgra32 -> *image.NRGBA, or *image.RGBA when every pixel is opaque
//	bgra64 -> *image.NRGBA64 (samples remapped to [0,65535])
//	cmyk32 -> *image.CMYK
func (s *Surface) ToImage() (image.Image, error) {
	if s.closed {
		return nil, s.errClosed("to image")
	}
	r := s.Bounds()

	switch s.format {
	case FormatGray8:
		img := image.NewGray(r)
		for y := 0; y < s.height; y++ {
			copy(img.Pix[y*img.Stride:], s.Row(y))
		}
		return img, nil

	case FormatGray16:
		img := image.NewGray16(r)
		host := make([]uint16, s.width)
		for y := 0; y < s.height; y++ {
			dst := img.Pix[y*img.Stride:]
			depth.FromNativeRow(host, s.Row16(y))
			for x, v := range host {
				buf.PutU16BE(dst[2*x:], v)
			}
		}
		return img, nil

	case FormatBGR24:
		img := image.NewRGBA(r)
		for y := 0; y < s.height; y++ {
			dst := img.Pix[y*img.Stride:]
			row := s.Row(y)
			for x := 0; x < s.width; x++ {
				dst[4*x+0] = row[3*x+2]
				dst[4*x+1] = row[3*x+1]
				dst[4*x+2] = row[3*x+0]
				dst[4*x+3] = 0xff
			}
		}
		return img, nil

	case FormatBGRA32:
		if !s.HasTransparency() {
			// Premultiplied and straight alpha agree when alpha is 255.
			img := image.NewRGBA(r)
			for y := 0; y < s.height; y++ {
				swapRB8(img.Pix[y*img.Stride:y*img.Stride+4*s.width], s.Row(y))
			}
			return img, nil
		}
		img := image.NewNRGBA(r)
		for y := 0; y < s.height; y++ {
			swapRB8(img.Pix[y*img.Stride:y*img.Stride+4*s.width], s.Row(y))
		}
		return img, nil

	case FormatBGRA64:
		img := image.NewNRGBA64(r)
		host := make([]uint16, 4*s.width)
		for y := 0; y < s.height; y++ {
			dst := img.Pix[y*img.Stride:]
			depth.FromNativeRow(host, s.Row16(y))
			for x := 0; x < s.width; x++ {
				p := dst[8*x : 8*x+8 : 8*x+8]
				buf.PutU16BE(p[0:], host[4*x+2])
				buf.PutU16BE(p[2:], host[4*x+1])
				buf.PutU16BE(p[4:], host[4*x+0])
				buf.PutU16BE(p[6:], host[4*x+3])
			}
		}
		return img, nil

	case FormatCMYK32:
		img := image.NewCMYK(r)
		for y := 0; y < s.height; y++ {
			copy(img.Pix[y*img.Stride:], s.Row(y))
		}
		return img, nil
	}
	return nil, types.Errorf(types.ErrKindInvalidArgument, "surface: unknown format %d", uint8(s.format))
}

// swapRB8 copies 4-byte pixels from src to dst exchanging bytes 0 and 2,
// which converts RGBA to BGRA and back.
func swapRB8(dst, src []byte) {
	for i := 0; i+3 < len(dst) && i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(b)
	draw.Copy(g, b.Min, img, b, draw.Src, nil)
	return g
}

func toGray16(img image.Image) *image.Gray16 {
	if g, ok := img.(*image.Gray16); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray16(b)
	draw.Copy(g, b.Min, img, b, draw.Src, nil)
	return g
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(b)
	draw.Copy(n, b.Min, img, b, draw.Src, nil)
	return n
}

func toNRGBA64(img image.Image) *image.NRGBA64 {
	if n, ok := img.(*image.NRGBA64); ok {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA64(b)
	draw.Copy(n, b.Min, img, b, draw.Src, nil)
	return n
}

func toCMYK(img image.Image) *image.CMYK {
	if c, ok := img.(*image.CMYK); ok {
		return c
	}
	b := img.Bounds()
	c := image.NewCMYK(b)
	draw.Copy(c, b.Min, img, b, draw.Src, nil)
	return c
}
