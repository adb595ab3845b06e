package document

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/wudi/formkit/ir/raw"
)

// Image is an embedded image XObject.
type Image struct {
	Ref        raw.ObjectRef
	Width      int
	Height     int
	ColorSpace string
}

// Size is a width/height pair in user space units.
type Size struct {
	Width, Height float64
}

// Scale returns the image size multiplied by factor, one pixel per unit at factor 1.
func (img *Image) Scale(factor float64) Size {
	return Size{Width: float64(img.Width) * factor, Height: float64(img.Height) * factor}
}

// ProbeJPEG reads the JPEG header without decoding pixel data.
func ProbeJPEG(data []byte) (image.Config, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, fmt.Errorf("decode jpeg header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Config{}, fmt.Errorf("decode jpeg header: empty image %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

func colorSpaceOf(m color.Model) (string, bool) {
	switch m {
	case color.GrayModel:
		return "DeviceGray", true
	case color.CMYKModel:
		return "DeviceCMYK", true
	case color.YCbCrModel, color.RGBAModel:
		return "DeviceRGB", true
	}
	return "", false
}

// EmbedJPEG stores data unchanged as a DCTDecode image XObject.
func (d *Document) EmbedJPEG(ctx context.Context, data []byte) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := ProbeJPEG(data)
	if err != nil {
		return nil, err
	}
	cs, ok := colorSpaceOf(cfg.ColorModel)
	if !ok {
		return nil, fmt.Errorf("unsupported jpeg color model %T", cfg.ColorModel)
	}

	dict := raw.Dict()
	dict.Set(raw.NameLiteral("Type"), raw.NameLiteral("XObject"))
	dict.Set(raw.NameLiteral("Subtype"), raw.NameLiteral("Image"))
	dict.Set(raw.NameLiteral("Width"), raw.NumberInt(int64(cfg.Width)))
	dict.Set(raw.NameLiteral("Height"), raw.NumberInt(int64(cfg.Height)))
	dict.Set(raw.NameLiteral("ColorSpace"), raw.NameLiteral(cs))
	dict.Set(raw.NameLiteral("BitsPerComponent"), raw.NumberInt(8))
	dict.Set(raw.NameLiteral("Filter"), raw.NameLiteral("DCTDecode"))
	if cs == "DeviceCMYK" {
		// Adobe writes CMYK JPEGs inverted.
		dict.Set(raw.NameLiteral("Decode"), raw.Numbers(1, 0, 1, 0, 1, 0, 1, 0))
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	ref := d.ctx.Register(raw.NewStream(dict, buf))
	return &Image{Ref: ref, Width: cfg.Width, Height: cfg.Height, ColorSpace: cs}, nil
}
