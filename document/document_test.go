package document

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"testing"

	"github.com/wudi/formkit/contentstream"
	"github.com/wudi/formkit/coords"
	"github.com/wudi/formkit/ir/raw"
)

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func rgbaImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestContextRegisterResolveDelete(t *testing.T) {
	ctx := NewContext()
	inner := raw.Dict()
	inner.Set(raw.NameLiteral("S"), raw.NameLiteral("JavaScript"))
	innerRef := ctx.Register(inner)

	outerRef := ctx.Register(raw.RefTo(innerRef))
	if got := ctx.Resolve(raw.RefTo(outerRef)); got != inner {
		t.Fatalf("resolve through two references returned %v", got)
	}
	if ctx.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", ctx.Len())
	}

	ctx.Delete(innerRef)
	if got := ctx.Resolve(raw.RefTo(outerRef)); got != nil {
		t.Fatalf("dangling reference should resolve to nil, got %v", got)
	}
	if err := ctx.CheckReferences(); !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("expected dangling reference error, got %v", err)
	}
}

func TestContextPutAdvancesCounter(t *testing.T) {
	ctx := NewContext()
	ctx.Put(raw.ObjectRef{Num: 10}, raw.NullObj{})
	if ref := ctx.Alloc(); ref.Num != 11 {
		t.Fatalf("expected next object 11, got %d", ref.Num)
	}
	refs := ctx.Refs()
	if len(refs) != 1 || refs[0].Num != 10 {
		t.Fatalf("unexpected refs %v", refs)
	}
}

func TestNewDocumentIsConsistent(t *testing.T) {
	doc := New()
	if err := doc.Context().CheckReferences(); err != nil {
		t.Fatalf("fresh document has dangling references: %v", err)
	}
	if _, err := doc.FirstPage(); !errors.Is(err, ErrNoPages) {
		t.Fatalf("expected ErrNoPages, got %v", err)
	}
	if typ, _ := doc.Catalog().Get("Type"); typ.(raw.NameObj).Value() != "Catalog" {
		t.Fatalf("catalog type is %v", typ)
	}
}

func TestAddPage(t *testing.T) {
	doc := New()
	p1, err := doc.AddPage(500, 500)
	if err != nil {
		t.Fatalf("add page: %v", err)
	}
	if _, err := doc.AddPage(200, 300.5); err != nil {
		t.Fatalf("add page: %v", err)
	}
	if len(doc.Pages()) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages()))
	}
	first, _ := doc.FirstPage()
	if first != p1 {
		t.Fatalf("first page mismatch")
	}
	w, h := p1.Size()
	if w != 500 || h != 500 {
		t.Fatalf("unexpected size %vx%v", w, h)
	}
	count, _ := doc.pageTree.Get("Count")
	if count.(raw.NumberObj).Int() != 2 {
		t.Fatalf("page tree count = %v", count)
	}
	if err := doc.Context().CheckReferences(); err != nil {
		t.Fatalf("dangling references: %v", err)
	}

	for _, dims := range [][2]float64{{0, 10}, {10, -1}, {math.NaN(), 10}, {10, math.Inf(1)}} {
		if _, err := doc.AddPage(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("AddPage(%v) error = %v, want ErrInvalidDimensions", dims, err)
		}
	}
	if len(doc.Pages()) != 2 {
		t.Fatalf("rejected pages must not be added")
	}
}

func TestAcroFormFields(t *testing.T) {
	doc := New()
	page, _ := doc.AddPage(100, 100)

	dict := raw.Dict()
	dict.Set(raw.NameLiteral("T"), raw.Str([]byte("f1")))
	field := NewNode(doc.Context(), dict)
	page.AddAnnotation(field)
	doc.AddField(field)
	doc.AddField(field)

	if _, ok := doc.Catalog().Get("AcroForm"); !ok {
		t.Fatalf("catalog missing AcroForm")
	}
	if doc.fields.Len() != 1 {
		t.Fatalf("field registered %d times", doc.fields.Len())
	}
	got, ok := doc.Field("f1")
	if !ok || got.Ref != field.Ref {
		t.Fatalf("field lookup failed: %v %v", got, ok)
	}
	if _, ok := doc.Field("missing"); ok {
		t.Fatalf("unexpected field match")
	}
	p, _ := field.Get("P")
	if p.(raw.RefObj).R != page.Ref {
		t.Fatalf("annotation /P does not point at page")
	}
	annots, _ := page.Get("Annots")
	if annots.(*raw.ArrayObj).Len() != 1 {
		t.Fatalf("expected one annotation")
	}
}

func TestEmbedAndDrawJPEG(t *testing.T) {
	doc := New()
	page, _ := doc.AddPage(500, 500)
	data := encodeJPEG(t, rgbaImage(40, 20))

	img, err := doc.EmbedJPEG(context.Background(), data)
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if img.Width != 40 || img.Height != 20 || img.ColorSpace != "DeviceRGB" {
		t.Fatalf("unexpected image %+v", img)
	}
	if s := img.Scale(2); s.Width != 80 || s.Height != 40 {
		t.Fatalf("unexpected scaled size %+v", s)
	}

	obj, _ := doc.Context().Lookup(img.Ref)
	stream := obj.(*raw.StreamObj)
	if !bytes.Equal(stream.Data, data) {
		t.Fatalf("jpeg bytes must be embedded unchanged")
	}
	filter, _ := stream.Dict.Get(raw.NameLiteral("Filter"))
	if filter.(raw.NameObj).Value() != "DCTDecode" {
		t.Fatalf("unexpected filter %v", filter)
	}

	name := page.DrawImage(img, DrawImageOptions{X: 10, Y: 20, Width: 80, Height: 40})
	if again := page.DrawImage(img, DrawImageOptions{X: 0, Y: 0, Width: 8, Height: 4}); again != name {
		t.Fatalf("same image should reuse resource name, got %s and %s", name, again)
	}
	xobjects, _ := page.Resources().Get(raw.NameLiteral("XObject"))
	if ref, _ := xobjects.(*raw.DictObj).Get(raw.NameLiteral(name)); ref.(raw.RefObj).R != img.Ref {
		t.Fatalf("resource %s does not reference the image", name)
	}

	var ctms []coords.Matrix
	p := contentstream.NewProcessor()
	p.RegisterHandler("Do", contentstream.HandlerFunc(func(ec *contentstream.ExecutionContext, _ []contentstream.Operand) error {
		ctms = append(ctms, ec.GraphicsState.CTM)
		return nil
	}))
	if err := p.Process(context.Background(), page.Content(), contentstream.NewGraphicsState()); err != nil {
		t.Fatalf("process content: %v", err)
	}
	if len(ctms) != 2 || ctms[0] != (coords.Matrix{80, 0, 0, 40, 10, 20}) {
		t.Fatalf("unexpected image placement %v", ctms)
	}
	if err := doc.Context().CheckReferences(); err != nil {
		t.Fatalf("dangling references: %v", err)
	}
}

func TestEmbedGrayJPEG(t *testing.T) {
	doc := New()
	img, err := doc.EmbedJPEG(context.Background(), encodeJPEG(t, image.NewGray(image.Rect(0, 0, 8, 8))))
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if img.ColorSpace != "DeviceGray" {
		t.Fatalf("expected DeviceGray, got %s", img.ColorSpace)
	}
}

func TestEmbedJPEGErrors(t *testing.T) {
	doc := New()
	if _, err := doc.EmbedJPEG(context.Background(), []byte{0xFF, 0xD8, 0x00}); err == nil {
		t.Fatalf("expected error for truncated jpeg")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := doc.EmbedJPEG(ctx, encodeJPEG(t, rgbaImage(2, 2))); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if doc.Context().Len() != 2 {
		t.Fatalf("failed embeds must not register objects, have %d", doc.Context().Len())
	}
}
