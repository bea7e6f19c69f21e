// Package imagemeta reads lightweight image metadata and per-channel
// extrema for texture validation.
//
// Decoding is limited to the formats registered below; anything else
// (notably EXR) fails with image.ErrFormat and is reported by the caller.
package imagemeta

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	_ "image/jpeg" // JPEG decode support
	_ "image/png"  // PNG decode support

	_ "golang.org/x/image/tiff" // TIFF decode support
)

// Info is decoded image metadata. Mode follows the familiar shorthand
// ("L", "RGB", "RGBA", "P", "CMYK") so messages read the same across tools.
type Info struct {
	Width    int
	Height   int
	Mode     string
	Format   string
	HasAlpha bool
	Channels int
}

// ChannelRange is the min/max value observed in one 8-bit channel.
type ChannelRange struct {
	Min uint8
	Max uint8
}

// Flat reports whether the channel carries a single value across the image.
func (c ChannelRange) Flat() bool {
	return c.Min == c.Max
}

// Extrema holds per-channel ranges after forced RGB conversion.
type Extrema struct {
	R ChannelRange
	G ChannelRange
	B ChannelRange
}

// Reader resolves texture files to metadata and channel extrema. The
// validators depend on this interface so tests can substitute fixed data
// for real decoding.
type Reader interface {
	Info(ctx context.Context, path string) (Info, error)
	Extrema(ctx context.Context, path string) (Extrema, error)
}

// FileReader is the filesystem-backed Reader.
type FileReader struct{}

// Info decodes just the image header.
func (FileReader) Info(ctx context.Context, path string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("decode image header: %w", err)
	}

	mode, channels, hasAlpha := describeModel(cfg.ColorModel)
	return Info{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Mode:     mode,
		Format:   strings.ToUpper(format),
		HasAlpha: hasAlpha,
		Channels: channels,
	}, nil
}

// Extrema decodes the full image and computes per-channel min/max after
// converting every pixel to straight (non-premultiplied) RGB.
func (FileReader) Extrema(ctx context.Context, path string) (Extrema, error) {
	if err := ctx.Err(); err != nil {
		return Extrema{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Extrema{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Extrema{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return Extrema{}, fmt.Errorf("image has no pixels")
	}

	ex := Extrema{
		R: ChannelRange{Min: 0xff},
		G: ChannelRange{Min: 0xff},
		B: ChannelRange{Min: 0xff},
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return Extrema{}, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			ex.R.extend(c.R)
			ex.G.extend(c.G)
			ex.B.extend(c.B)
		}
	}
	return ex, nil
}

func (c *ChannelRange) extend(v uint8) {
	if v < c.Min {
		c.Min = v
	}
	if v > c.Max {
		c.Max = v
	}
}

// describeModel maps a decoded color model to a mode string, channel count
// and alpha flag. DecodeConfig only exposes the model, so gray+alpha images
// are indistinguishable from RGBA here; both report as "RGBA".
func describeModel(m color.Model) (mode string, channels int, hasAlpha bool) {
	switch m {
	case color.GrayModel, color.Gray16Model:
		return "L", 1, false
	case color.RGBAModel, color.RGBA64Model:
		return "RGB", 3, false
	case color.NRGBAModel, color.NRGBA64Model:
		return "RGBA", 4, true
	case color.YCbCrModel:
		return "RGB", 3, false
	case color.NYCbCrAModel:
		return "RGBA", 4, true
	case color.CMYKModel:
		return "CMYK", 4, false
	}
	if _, ok := m.(color.Palette); ok {
		return "P", 1, false
	}
	return "unknown", 0, false
}
