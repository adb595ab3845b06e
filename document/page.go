package document

import (
	"fmt"

	"github.com/wudi/formkit/contentstream"
	"github.com/wudi/formkit/coords"
	"github.com/wudi/formkit/ir/raw"
)

// Page is a page node plus the bookkeeping needed to draw on it.
type Page struct {
	Node
	doc      *Document
	width    float64
	height   float64
	contents *raw.StreamObj
}

// Size returns the MediaBox width and height.
func (p *Page) Size() (float64, float64) { return p.width, p.height }

// Resources returns the page resource dictionary, creating an empty one if the
// page has none. Indirect resource dictionaries are resolved.
func (p *Page) Resources() *raw.DictObj {
	if obj, ok := p.Get("Resources"); ok {
		if d, ok := p.doc.ctx.ResolveDict(obj); ok {
			return d
		}
	}
	res := raw.Dict()
	p.Set("Resources", res)
	return res
}

func subDict(parent *raw.DictObj, ctx *Context, key string) *raw.DictObj {
	if obj, ok := parent.Get(raw.NameLiteral(key)); ok {
		if d, ok := ctx.ResolveDict(obj); ok {
			return d
		}
	}
	d := raw.Dict()
	parent.Set(raw.NameLiteral(key), d)
	return d
}

// AppendContent appends operations to the page content stream.
func (p *Page) AppendContent(ops []contentstream.Operation) {
	if p.contents == nil {
		p.contents = raw.NewStream(raw.Dict(), nil)
		ref := p.doc.ctx.Register(p.contents)
		p.Set("Contents", raw.RefTo(ref))
	}
	p.contents.Data = append(p.contents.Data, contentstream.Serialize(ops)...)
}

// Content returns the bytes appended so far.
func (p *Page) Content() []byte {
	if p.contents == nil {
		return nil
	}
	return p.contents.Data
}

// AddAnnotation appends an annotation to /Annots and points its /P back at the page.
func (p *Page) AddAnnotation(annot *Node) {
	var annots *raw.ArrayObj
	if obj, ok := p.Get("Annots"); ok {
		annots, _ = p.doc.ctx.Resolve(obj).(*raw.ArrayObj)
	}
	if annots == nil {
		annots = raw.NewArray()
		p.Set("Annots", annots)
	}
	annots.Append(annot.Reference())
	annot.Set("P", p.Reference())
}

// DrawImageOptions positions an image in user space.
type DrawImageOptions struct {
	X, Y          float64
	Width, Height float64
}

// DrawImage registers img as an XObject resource and paints it into the given box.
// It returns the resource name used.
func (p *Page) DrawImage(img *Image, opts DrawImageOptions) string {
	xobjects := subDict(p.Resources(), p.doc.ctx, "XObject")
	name := ""
	for i := 1; ; i++ {
		name = fmt.Sprintf("Im%d", i)
		existing, ok := xobjects.Get(raw.NameLiteral(name))
		if !ok {
			break
		}
		if ref, isRef := existing.(raw.RefObj); isRef && ref.R == img.Ref {
			break
		}
	}
	xobjects.Set(raw.NameLiteral(name), raw.RefTo(img.Ref))
	p.AppendContent([]contentstream.Operation{
		contentstream.Save(),
		contentstream.Concat(coords.Place(opts.X, opts.Y, opts.Width, opts.Height)),
		contentstream.PaintXObject(name),
		contentstream.Restore(),
	})
	return name
}
