package builder

import (
	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
	"github.com/wudi/formkit/observability"
)

// Field types.
const (
	FieldText   = "Tx"
	FieldButton = "Btn"
)

type FieldOptions struct {
	Name          string
	X, Y          float64
	Width, Height float64
	Value         string
	// Type defaults to FieldText.
	Type string
	// Color is a #RRGGBB background; empty selects Config.FieldColor.
	Color   string
	Actions Actions
}

type ButtonOptions struct {
	Name          string
	X, Y          float64
	Width, Height float64
	Label         string
	Color         string
	Actions       Actions
}

// CreateField registers a widget annotation for a form field. The widget is
// not placed on a page; see AddField.
func (b *Builder) CreateField(opts FieldOptions) (*document.Node, error) {
	if opts.Type == "" {
		opts.Type = FieldText
	}
	if opts.Color == "" {
		opts.Color = b.cfg.FieldColor
	}
	bg, err := ParseHexColor(opts.Color)
	if err != nil {
		return nil, err
	}
	return b.createField(opts, bg)
}

func (b *Builder) createField(opts FieldOptions, bg Color) (*document.Node, error) {
	if err := b.checkScripts(opts.Actions); err != nil {
		return nil, err
	}

	w := NewWidget(opts.Type).
		Flags(FlagNoExport).
		Rect(opts.X, opts.Y, opts.Width, opts.Height).
		Name(opts.Name).
		Value(opts.Value).
		Background(bg).
		SolidBorder(1)
	if opts.Type == FieldText {
		w.DefaultAppearance(b.defaultAppearance())
	}
	dict, err := w.Build()
	if err != nil {
		return nil, err
	}
	node := document.NewNode(b.context(), dict)
	b.AttachAll(node, opts.Actions)

	b.log.Debug("field created",
		observability.String("name", opts.Name),
		observability.String("type", opts.Type),
		observability.Int("ref", node.Ref.Num),
	)
	return node, nil
}

// CreateButton creates a push button showing label.
func (b *Builder) CreateButton(opts ButtonOptions) (*document.Node, error) {
	if opts.Color == "" {
		opts.Color = b.cfg.FieldColor
	}
	bg, err := ParseHexColor(opts.Color)
	if err != nil {
		return nil, err
	}
	node, err := b.createField(FieldOptions{
		Name:    opts.Name,
		X:       opts.X,
		Y:       opts.Y,
		Width:   opts.Width,
		Height:  opts.Height,
		Type:    FieldButton,
		Color:   opts.Color,
		Actions: opts.Actions,
	}, bg)
	if err != nil {
		return nil, err
	}

	mk := raw.Dict()
	mk.Set(raw.NameLiteral("BG"), bg.array())
	mk.Set(raw.NameLiteral("CA"), raw.TextString(opts.Label))
	node.Set("Ff", raw.NumberInt(FlagPushButton))
	node.Set("MK", mk)
	node.Set("BS", borderStyle(1))
	return node, nil
}
