package builder

import (
	"github.com/wudi/formkit/contentstream"
	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
	"github.com/wudi/formkit/observability"
)

type AppearanceFieldOptions struct {
	Name          string
	X, Y          float64
	Width, Height float64
	RGB           Color
	Value         string
	Actions       Actions
}

// CreateAppearanceField creates a text field whose normal appearance is a
// Form XObject filling the field rectangle with opts.RGB.
func (b *Builder) CreateAppearanceField(opts AppearanceFieldOptions) (*document.Node, error) {
	if err := opts.RGB.Validate(); err != nil {
		return nil, err
	}
	if err := b.checkScripts(opts.Actions); err != nil {
		return nil, err
	}

	w := NewWidget(FieldText).
		Flags(FlagNoExport).
		Rect(opts.X, opts.Y, opts.Width, opts.Height).
		MaxLen(b.cfg.MaxLen).
		DefaultAppearance(b.defaultAppearance()).
		Name(opts.Name).
		Value(opts.Value).
		Background(opts.RGB).
		SolidBorder(1)
	if _, err := w.Build(); err != nil {
		return nil, err
	}

	ap := b.appearanceStream(opts.RGB, opts.Width, opts.Height)
	dict, err := w.NormalAppearance(ap).Build()
	if err != nil {
		b.context().Delete(ap)
		return nil, err
	}
	node := document.NewNode(b.context(), dict)
	b.AttachAll(node, opts.Actions)

	b.log.Debug("appearance field created",
		observability.String("name", opts.Name),
		observability.Int("ref", node.Ref.Num),
		observability.Int("appearance", ap.Num),
	)
	return node, nil
}

// FillContent returns the operations painting a width x height box in c.
func FillContent(c Color, width, height float64) []contentstream.Operation {
	return []contentstream.Operation{
		contentstream.SetFillRGB(c.R, c.G, c.B),
		contentstream.Rectangle(0, 0, width, height),
		contentstream.Fill(),
	}
}

func (b *Builder) appearanceStream(c Color, width, height float64) raw.ObjectRef {
	dict := raw.Dict()
	dict.Set(raw.NameLiteral("Type"), raw.NameLiteral("XObject"))
	dict.Set(raw.NameLiteral("Subtype"), raw.NameLiteral("Form"))
	dict.Set(raw.NameLiteral("FormType"), raw.NumberInt(1))
	dict.Set(raw.NameLiteral("BBox"), raw.Numbers(0, 0, width, height))
	dict.Set(raw.NameLiteral("Matrix"), raw.Numbers(1, 0, 0, 1, 0, 0))
	return b.context().Register(raw.NewStream(dict, contentstream.Serialize(FillContent(c, width, height))))
}
