package builder

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wudi/formkit/contentstream"
	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
)

func numbers(t *testing.T, obj raw.Object) []float64 {
	t.Helper()
	arr, ok := obj.(*raw.ArrayObj)
	if !ok {
		t.Fatalf("expected array, got %T", obj)
	}
	var out []float64
	for _, it := range arr.Items {
		out = append(out, it.(raw.NumberObj).Float())
	}
	return out
}

func TestCreateFieldDefaults(t *testing.T) {
	b := newBuilder(t, nil)
	node, err := b.CreateField(FieldOptions{Name: "plain"})
	if err != nil {
		t.Fatalf("create field: %v", err)
	}
	for _, key := range []string{"Type", "Subtype", "FT", "Ff", "Rect", "T", "V", "MK", "BS"} {
		if _, ok := node.Get(key); !ok {
			t.Errorf("missing /%s", key)
		}
	}
	ft, _ := node.Get("FT")
	if ft.(raw.NameObj).Value() != FieldText {
		t.Errorf("default type %v", ft)
	}
	ff, _ := node.Get("Ff")
	if ff.(raw.NumberObj).Int() != 2 {
		t.Errorf("flags %v", ff)
	}
	v, _ := node.Get("V")
	if str(t, v) != "" {
		t.Errorf("default value %q", str(t, v))
	}
	mk, _ := node.Get("MK")
	bg, _ := dictAt(t, b, mk).Get(raw.NameLiteral("BG"))
	want := []float64{230.0 / 255, 230.0 / 255, 230.0 / 255}
	if diff := cmp.Diff(want, numbers(t, bg)); diff != "" {
		t.Errorf("default background (-want +got):\n%s", diff)
	}
	bs, _ := node.Get("BS")
	w, _ := dictAt(t, b, bs).Get(raw.NameLiteral("W"))
	if w.(raw.NumberObj).Int() != 1 {
		t.Errorf("border width %v", w)
	}
	if _, ok := b.context().Lookup(node.Ref); !ok {
		t.Errorf("field not registered")
	}
}

func TestCreateFieldGeometryAndColor(t *testing.T) {
	b := newBuilder(t, nil)
	node, err := b.CreateField(FieldOptions{Name: "n", X: 5, Y: 7.5, Width: 20, Height: 10, Type: "Ch", Color: "#FF0080"})
	if err != nil {
		t.Fatalf("create field: %v", err)
	}
	rect, _ := node.Get("Rect")
	if diff := cmp.Diff([]float64{5, 7.5, 25, 17.5}, numbers(t, rect)); diff != "" {
		t.Errorf("rect (-want +got):\n%s", diff)
	}
	mk, _ := node.Get("MK")
	bg, _ := dictAt(t, b, mk).Get(raw.NameLiteral("BG"))
	if diff := cmp.Diff([]float64{1, 0, 128.0 / 255}, numbers(t, bg)); diff != "" {
		t.Errorf("background (-want +got):\n%s", diff)
	}
}

func TestCreateFieldRejectsBadInput(t *testing.T) {
	b := newBuilder(t, nil)
	before := b.context().Len()
	if _, err := b.CreateField(FieldOptions{Name: "c", Color: "#zzzzzz"}); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if _, err := b.CreateField(FieldOptions{Name: "r", Width: math.NaN()}); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
	if _, err := b.CreateButton(ButtonOptions{Name: "b", Color: "red"}); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if b.context().Len() != before {
		t.Fatalf("failed builds registered objects")
	}
}

func TestCreateButton(t *testing.T) {
	b := newBuilder(t, nil)
	node, err := b.CreateButton(ButtonOptions{Name: "go", Width: 40, Height: 20, Label: "Go", Color: "#000000"})
	if err != nil {
		t.Fatalf("create button: %v", err)
	}
	ft, _ := node.Get("FT")
	ff, _ := node.Get("Ff")
	v, _ := node.Get("V")
	if ft.(raw.NameObj).Value() != FieldButton || ff.(raw.NumberObj).Int() != FlagPushButton || str(t, v) != "" {
		t.Fatalf("button dict FT=%v Ff=%v V=%v", ft, ff, v)
	}
	mk, _ := node.Get("MK")
	mkDict := dictAt(t, b, mk)
	ca, _ := mkDict.Get(raw.NameLiteral("CA"))
	if str(t, ca) != "Go" {
		t.Fatalf("caption %v", ca)
	}
	bg, _ := mkDict.Get(raw.NameLiteral("BG"))
	if diff := cmp.Diff([]float64{0, 0, 0}, numbers(t, bg)); diff != "" {
		t.Fatalf("background (-want +got):\n%s", diff)
	}
}

func TestCreateButtonColorParsedOnce(t *testing.T) {
	b := newBuilder(t, nil)
	before := b.context().Len()
	for _, c := range []string{"#12345", "#GG0000", "000000"} {
		if _, err := b.CreateButton(ButtonOptions{Name: "b", Color: c}); !errors.Is(err, ErrInvalidColor) {
			t.Fatalf("%q: expected ErrInvalidColor, got %v", c, err)
		}
	}
	if b.context().Len() != before {
		t.Fatalf("rejected buttons registered objects")
	}

	node, err := b.CreateButton(ButtonOptions{Name: "b", Label: "x"})
	if err != nil {
		t.Fatalf("create button: %v", err)
	}
	mk, _ := node.Get("MK")
	bg, _ := dictAt(t, b, mk).Get(raw.NameLiteral("BG"))
	want := []float64{230.0 / 255, 230.0 / 255, 230.0 / 255}
	if diff := cmp.Diff(want, numbers(t, bg)); diff != "" {
		t.Fatalf("default button background (-want +got):\n%s", diff)
	}
}

func TestTextFieldsCarryDefaultAppearance(t *testing.T) {
	b := newBuilder(t, nil)
	page, _ := b.CreatePage(PageOptions{})
	text, _ := b.CreateField(FieldOptions{Name: "t"})
	styled, err := b.CreateAppearanceField(AppearanceFieldOptions{Name: "s", Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("create appearance field: %v", err)
	}
	button, _ := b.CreateButton(ButtonOptions{Name: "b"})

	for _, node := range []*document.Node{text, styled} {
		da, ok := node.Get("DA")
		if !ok || str(t, da) != "/F1 0 Tf 0 g" {
			t.Fatalf("field /DA = %v", da)
		}
	}
	if _, ok := button.Get("DA"); ok {
		t.Fatalf("push button should not carry /DA")
	}

	b.AddField(page, text)
	b.AddField(page, styled)
	form := b.Document().AcroForm()
	dr, ok := form.Get("DR")
	if !ok {
		t.Fatalf("AcroForm without /DR")
	}
	fonts, _ := dictAt(t, b, dr).Get(raw.NameLiteral("Font"))
	f1, _ := dictAt(t, b, fonts).Get(raw.NameLiteral(FontResource))
	if f1.(raw.RefObj).R != b.fontRef() {
		t.Fatalf("/DR /F1 does not point at the page font")
	}
	if da, _ := form.Get("DA"); str(t, da) != "/F1 0 Tf 0 g" {
		t.Fatalf("AcroForm /DA = %v", da)
	}
}

func TestCreateAppearanceField(t *testing.T) {
	b := newBuilder(t, nil)
	rgb := Color{R: 0.25, G: 0.5, B: 1}
	node, err := b.CreateAppearanceField(AppearanceFieldOptions{Name: "ap", X: 10, Y: 20, Width: 120, Height: 24, RGB: rgb, Value: "v"})
	if err != nil {
		t.Fatalf("create appearance field: %v", err)
	}
	maxLen, _ := node.Get("MaxLen")
	if maxLen.(raw.NumberObj).Int() != DefaultMaxLen {
		t.Fatalf("MaxLen %v", maxLen)
	}
	ft, _ := node.Get("FT")
	if ft.(raw.NameObj).Value() != FieldText {
		t.Fatalf("FT %v", ft)
	}

	ap, _ := node.Get("AP")
	n, _ := dictAt(t, b, ap).Get(raw.NameLiteral("N"))
	obj, ok := b.context().Lookup(n.(raw.RefObj).R)
	if !ok {
		t.Fatalf("appearance stream not registered")
	}
	stream := obj.(*raw.StreamObj)
	subtype, _ := stream.Dict.Get(raw.NameLiteral("Subtype"))
	if subtype.(raw.NameObj).Value() != "Form" {
		t.Fatalf("appearance subtype %v", subtype)
	}
	bbox, _ := stream.Dict.Get(raw.NameLiteral("BBox"))
	if diff := cmp.Diff([]float64{0, 0, 120, 24}, numbers(t, bbox)); diff != "" {
		t.Fatalf("bbox (-want +got):\n%s", diff)
	}
	matrix, _ := stream.Dict.Get(raw.NameLiteral("Matrix"))
	if diff := cmp.Diff([]float64{1, 0, 0, 1, 0, 0}, numbers(t, matrix)); diff != "" {
		t.Fatalf("matrix (-want +got):\n%s", diff)
	}

	ops, err := contentstream.Parse(stream.Data)
	if err != nil {
		t.Fatalf("parse appearance: %v", err)
	}
	if diff := cmp.Diff(FillContent(rgb, 120, 24), ops); diff != "" {
		t.Fatalf("appearance content (-want +got):\n%s", diff)
	}
	if string(stream.Data) != "0.25 0.5 1 rg\n0 0 120 24 re\nf\n" {
		t.Fatalf("appearance bytes %q", stream.Data)
	}
	if err := b.context().CheckReferences(); err != nil {
		t.Fatalf("dangling references: %v", err)
	}
}

func TestCreateAppearanceFieldRejectsComponents(t *testing.T) {
	b := newBuilder(t, nil)
	before := b.context().Len()
	for _, c := range []Color{{R: -0.1}, {G: 1.5}, {B: math.NaN()}} {
		if _, err := b.CreateAppearanceField(AppearanceFieldOptions{Name: "x", Width: 1, Height: 1, RGB: c}); !errors.Is(err, ErrInvalidColor) {
			t.Fatalf("%+v: expected ErrInvalidColor, got %v", c, err)
		}
	}
	if _, err := b.CreateAppearanceField(AppearanceFieldOptions{Name: "x", Width: math.Inf(1)}); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
	if b.context().Len() != before {
		t.Fatalf("rejected fields registered objects")
	}
}

func TestAddFieldWiresPageAndForm(t *testing.T) {
	b := newBuilder(t, nil)
	page, _ := b.CreatePage(PageOptions{})
	node, _ := b.CreateField(FieldOptions{Name: "f"})
	b.AddField(page, node)

	annots, _ := page.Get("Annots")
	if annots.(*raw.ArrayObj).Len() != 1 {
		t.Fatalf("annotation not on page")
	}
	p, _ := node.Get("P")
	if p.(raw.RefObj).R != page.Ref {
		t.Fatalf("/P not set")
	}
	if got, ok := b.Document().Field("f"); !ok || got.Ref != node.Ref {
		t.Fatalf("field not listed in AcroForm")
	}
}

func TestWidgetBuilderRequiresKeys(t *testing.T) {
	if _, err := NewWidget(FieldText).Name("x").Build(); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected missing key error, got %v", err)
	}
	if _, err := NewWidget("").Flags(0).Rect(0, 0, 1, 1).Name("x").Value("").Build(); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected empty type error, got %v", err)
	}
	d, err := NewWidget(FieldText).Flags(0).Rect(0, 0, 1, 1).Name("x").Value("").Caption("c").Build()
	if err != nil {
		t.Fatalf("complete widget rejected: %v", err)
	}
	mk, _ := d.Get(raw.NameLiteral("MK"))
	if _, ok := mk.(*raw.DictObj).Get(raw.NameLiteral("CA")); !ok {
		t.Fatalf("caption missing")
	}
}

func TestCreateFieldUnicodeText(t *testing.T) {
	b := newBuilder(t, nil)
	page, _ := b.CreatePage(PageOptions{})
	node, err := b.CreateField(FieldOptions{Name: "Straße", Value: "Grüße"})
	if err != nil {
		t.Fatalf("create field: %v", err)
	}
	b.AddField(page, node)

	v, _ := node.Get("V")
	if data := v.(raw.String).Value(); data[0] != 0xFE || data[1] != 0xFF {
		t.Fatalf("non-ASCII value not stored as UTF-16BE: % x", data)
	}
	if _, ok := b.Document().Field("Straße"); !ok {
		t.Fatalf("lookup by decoded name failed")
	}
}
