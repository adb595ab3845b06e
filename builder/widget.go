package builder

import (
	"fmt"
	"math"

	"github.com/wudi/formkit/ir/raw"
)

// Widget flag values.
const (
	FlagNoExport   = 2
	FlagPushButton = 65536
)

// widgetRequired lists the keys every field widget carries.
var widgetRequired = []string{"Type", "Subtype", "FT", "Ff", "Rect", "T", "V"}

// WidgetBuilder assembles a widget annotation dictionary key by key.
type WidgetBuilder struct {
	dict *raw.DictObj
	mk   *raw.DictObj
	err  error
}

func NewWidget(fieldType string) *WidgetBuilder {
	w := &WidgetBuilder{dict: raw.Dict()}
	w.set("Type", raw.NameLiteral("Annot"))
	w.set("Subtype", raw.NameLiteral("Widget"))
	if fieldType == "" {
		w.fail("empty field type")
	}
	w.set("FT", raw.NameLiteral(fieldType))
	return w
}

func (w *WidgetBuilder) set(key string, v raw.Object) *WidgetBuilder {
	w.dict.Set(raw.NameLiteral(key), v)
	return w
}

func (w *WidgetBuilder) fail(format string, args ...any) {
	if w.err == nil {
		w.err = fmt.Errorf("%w: "+format, append([]any{ErrInvalidOptions}, args...)...)
	}
}

func (w *WidgetBuilder) Flags(ff int) *WidgetBuilder {
	return w.set("Ff", raw.NumberInt(int64(ff)))
}

// Rect sets /Rect to [x y x+width y+height].
func (w *WidgetBuilder) Rect(x, y, width, height float64) *WidgetBuilder {
	for _, v := range [...]float64{x, y, width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			w.fail("non-finite rectangle %v %v %v %v", x, y, width, height)
			break
		}
	}
	return w.set("Rect", raw.Numbers(x, y, x+width, y+height))
}

func (w *WidgetBuilder) Name(name string) *WidgetBuilder {
	return w.set("T", raw.TextString(name))
}

func (w *WidgetBuilder) Value(value string) *WidgetBuilder {
	return w.set("V", raw.TextString(value))
}

func (w *WidgetBuilder) MaxLen(n int) *WidgetBuilder {
	return w.set("MaxLen", raw.NumberInt(int64(n)))
}

func (w *WidgetBuilder) markup() *raw.DictObj {
	if w.mk == nil {
		w.mk = raw.Dict()
		w.set("MK", w.mk)
	}
	return w.mk
}

// DefaultAppearance sets /DA, the text state used when a viewer
// regenerates the appearance.
func (w *WidgetBuilder) DefaultAppearance(da string) *WidgetBuilder {
	return w.set("DA", raw.Str([]byte(da)))
}

// Background sets /MK /BG.
func (w *WidgetBuilder) Background(c Color) *WidgetBuilder {
	w.markup().Set(raw.NameLiteral("BG"), c.array())
	return w
}

// Caption sets /MK /CA.
func (w *WidgetBuilder) Caption(label string) *WidgetBuilder {
	w.markup().Set(raw.NameLiteral("CA"), raw.TextString(label))
	return w
}

// SolidBorder sets /BS << /W width /S /S >>.
func (w *WidgetBuilder) SolidBorder(width float64) *WidgetBuilder {
	return w.set("BS", borderStyle(width))
}

// NormalAppearance sets /AP << /N ref >>.
func (w *WidgetBuilder) NormalAppearance(ref raw.ObjectRef) *WidgetBuilder {
	ap := raw.Dict()
	ap.Set(raw.NameLiteral("N"), raw.RefTo(ref))
	return w.set("AP", ap)
}

// Build returns the dictionary once every required key is present.
func (w *WidgetBuilder) Build() (*raw.DictObj, error) {
	if w.err != nil {
		return nil, w.err
	}
	for _, key := range widgetRequired {
		if _, ok := w.dict.Get(raw.NameLiteral(key)); !ok {
			return nil, fmt.Errorf("%w: widget missing /%s", ErrInvalidOptions, key)
		}
	}
	return w.dict, nil
}

func borderStyle(width float64) *raw.DictObj {
	bs := raw.Dict()
	bs.Set(raw.NameLiteral("W"), raw.Real(width))
	bs.Set(raw.NameLiteral("S"), raw.NameLiteral("S"))
	return bs
}
