package builder

import (
	"github.com/wudi/formkit/contentstream"
	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
	"github.com/wudi/formkit/observability"
)

// FontResource is the resource name of the page text font.
const FontResource = "F1"

type PageOptions struct {
	// Width and Height default to Config.PageWidth and Config.PageHeight when zero.
	Width, Height float64
	Actions       Actions
}

// CreatePage appends a page whose resources declare the text font as /F1.
func (b *Builder) CreatePage(opts PageOptions) (*document.Page, error) {
	if opts.Width == 0 {
		opts.Width = b.cfg.PageWidth
	}
	if opts.Height == 0 {
		opts.Height = b.cfg.PageHeight
	}
	if err := b.checkScripts(opts.Actions); err != nil {
		return nil, err
	}
	page, err := b.doc.AddPage(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	fonts := raw.Dict()
	fonts.Set(raw.NameLiteral(FontResource), raw.RefTo(b.fontRef()))
	res := raw.Dict()
	res.Set(raw.NameLiteral("Font"), fonts)
	page.Set("Resources", res)

	b.AttachAll(&page.Node, opts.Actions)
	b.log.Debug("page created",
		observability.Int("ref", page.Ref.Num),
		observability.Float64("width", opts.Width),
		observability.Float64("height", opts.Height),
	)
	return page, nil
}

// fontRef returns the shared Type1 font, registering it on first use.
func (b *Builder) fontRef() raw.ObjectRef {
	if !b.font.IsZero() {
		if _, ok := b.context().Lookup(b.font); ok {
			return b.font
		}
	}
	font := raw.Dict()
	font.Set(raw.NameLiteral("Type"), raw.NameLiteral("Font"))
	font.Set(raw.NameLiteral("Subtype"), raw.NameLiteral("Type1"))
	font.Set(raw.NameLiteral("BaseFont"), raw.NameLiteral(b.cfg.FontName))
	b.font = b.context().Register(font)
	return b.font
}

// TextContent returns a text object showing text at (x, y) in the page font.
func TextContent(x, y, size float64, text string) []contentstream.Operation {
	return []contentstream.Operation{
		contentstream.BeginText(),
		contentstream.SetFont(FontResource, size),
		contentstream.MoveText(x, y),
		contentstream.ShowText(text),
		contentstream.EndText(),
	}
}

func (b *Builder) DrawText(page *document.Page, x, y, size float64, text string) {
	page.AppendContent(TextContent(x, y, size, text))
}
