package builder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"

	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
	"github.com/wudi/formkit/observability"
)

type ImageOptions struct {
	X, Y          float64
	Width, Height float64
	// Actions, when present, are bound to a link annotation over the box.
	Actions Actions
	// MaxPPI caps the embedded resolution; 0 embeds the bytes unchanged.
	MaxPPI float64
	// Quality is the JPEG quality used when MaxPPI forces a re-encode;
	// 0 selects Config.JPEGQuality.
	Quality int
}

// PlaceImage embeds a JPEG and draws it on the first page, scaled uniformly
// to fit the target box with its lower-left corner at (X, Y). With actions it
// returns the link annotation carrying them, otherwise nil.
func (b *Builder) PlaceImage(ctx context.Context, data []byte, opts ImageOptions) (_ *document.Node, err error) {
	ctx, span := b.tracer.StartSpan(ctx, observability.SpanPlaceImage)
	defer func() {
		if err != nil {
			span.SetError(err)
			b.log.Error("image placement failed", observability.Error("error", err))
		}
		span.Finish()
	}()

	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, fmt.Errorf("failed to process image: %w", ErrInvalidFormat)
	}
	if err := validateImageOptions(opts); err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}
	if err := b.checkScripts(opts.Actions); err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}
	page, err := b.doc.FirstPage()
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}

	hdr, err := document.ProbeJPEG(data)
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w: %w", ErrEmbedFailure, err)
	}
	natW, natH := float64(hdr.Width), float64(hdr.Height)
	scale := math.Min(opts.Width/natW, opts.Height/natH)
	drawW, drawH := natW*scale, natH*scale
	span.SetTag("scale", scale)

	payload := data
	if opts.MaxPPI > 0 {
		quality := opts.Quality
		if quality == 0 {
			quality = b.cfg.JPEGQuality
		}
		payload, err = downsample(data, hdr, opts.MaxPPI*drawW/72, opts.MaxPPI*drawH/72, quality)
		if err != nil {
			return nil, fmt.Errorf("failed to process image: %w: %w", ErrEmbedFailure, err)
		}
	}

	img, err := b.doc.EmbedJPEG(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w: %w", ErrEmbedFailure, err)
	}
	name := page.DrawImage(img, document.DrawImageOptions{X: opts.X, Y: opts.Y, Width: drawW, Height: drawH})
	b.log.Debug("image placed",
		observability.String("resource", name),
		observability.Int("ref", img.Ref.Num),
		observability.Float64("scale", scale),
	)

	if len(opts.Actions) == 0 {
		return nil, nil
	}
	link := raw.Dict()
	link.Set(raw.NameLiteral("Type"), raw.NameLiteral("Annot"))
	link.Set(raw.NameLiteral("Subtype"), raw.NameLiteral("Link"))
	link.Set(raw.NameLiteral("Rect"), raw.Numbers(opts.X, opts.Y, opts.X+opts.Width, opts.Y+opts.Height))
	link.Set(raw.NameLiteral("F"), raw.NumberInt(4))
	link.Set(raw.NameLiteral("Border"), raw.Numbers(0, 0, 0))
	node := document.NewNode(b.context(), link)
	page.AddAnnotation(node)
	b.AttachAll(node, opts.Actions)
	return node, nil
}

func validateImageOptions(opts ImageOptions) error {
	for _, v := range [...]float64{opts.X, opts.Y, opts.Width, opts.Height, opts.MaxPPI} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite image geometry", ErrInvalidOptions)
		}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("%w: image box %vx%v", ErrInvalidOptions, opts.Width, opts.Height)
	}
	if opts.MaxPPI < 0 || opts.Quality < 0 || opts.Quality > 100 {
		return fmt.Errorf("%w: MaxPPI %v Quality %d", ErrInvalidOptions, opts.MaxPPI, opts.Quality)
	}
	return nil
}

// downsample re-encodes data at no more than maxW x maxH pixels. Images
// already within the limit are returned unchanged.
func downsample(data []byte, hdr image.Config, maxW, maxH float64, quality int) ([]byte, error) {
	if float64(hdr.Width) <= maxW && float64(hdr.Height) <= maxH {
		return data, nil
	}
	src, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode jpeg: %w", err)
	}
	scale := math.Min(maxW/float64(hdr.Width), maxH/float64(hdr.Height))
	targetW := max(1, int(float64(hdr.Width)*scale))
	targetH := max(1, int(float64(hdr.Height)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
