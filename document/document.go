// Package document holds the object graph of a single PDF document: the
// indirect object registry, the catalog and page tree, and the primitives
// for adding pages, annotations, form fields and JPEG images.
package document

import (
	"fmt"
	"math"

	"github.com/wudi/formkit/ir/raw"
)

// Document is the root of one object graph.
type Document struct {
	ctx      *Context
	catalog  *Node
	pageTree *Node
	kids     *raw.ArrayObj
	pages    []*Page
	acroForm *Node
	fields   *raw.ArrayObj
}

// New creates an empty document with a catalog and page tree.
func New() *Document {
	ctx := NewContext()
	d := &Document{ctx: ctx, kids: raw.NewArray()}

	catalogRef := ctx.Alloc()
	pages := raw.Dict()
	pages.Set(raw.NameLiteral("Type"), raw.NameLiteral("Pages"))
	pages.Set(raw.NameLiteral("Kids"), d.kids)
	pages.Set(raw.NameLiteral("Count"), raw.NumberInt(0))
	d.pageTree = NewNode(ctx, pages)

	catalog := raw.Dict()
	catalog.Set(raw.NameLiteral("Type"), raw.NameLiteral("Catalog"))
	catalog.Set(raw.NameLiteral("Pages"), d.pageTree.Reference())
	ctx.Put(catalogRef, catalog)
	d.catalog = &Node{Ref: catalogRef, Dict: catalog}
	return d
}

func (d *Document) Context() *Context { return d.ctx }

func (d *Document) Catalog() *Node { return d.catalog }

// AddPage appends a page whose MediaBox is [0 0 width height].
func (d *Document) AddPage(width, height float64) (*Page, error) {
	if !validLength(width) || !validLength(height) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidDimensions, width, height)
	}
	dict := raw.Dict()
	dict.Set(raw.NameLiteral("Type"), raw.NameLiteral("Page"))
	dict.Set(raw.NameLiteral("Parent"), d.pageTree.Reference())
	dict.Set(raw.NameLiteral("MediaBox"), raw.Numbers(0, 0, width, height))
	dict.Set(raw.NameLiteral("Resources"), raw.Dict())

	p := &Page{Node: *NewNode(d.ctx, dict), doc: d, width: width, height: height}
	d.kids.Append(p.Reference())
	d.pages = append(d.pages, p)
	d.pageTree.Set("Count", raw.NumberInt(int64(len(d.pages))))
	return p, nil
}

func validLength(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Pages returns the current page list in document order.
func (d *Document) Pages() []*Page {
	out := make([]*Page, len(d.pages))
	copy(out, d.pages)
	return out
}

// FirstPage returns the first page or ErrNoPages.
func (d *Document) FirstPage() (*Page, error) {
	if len(d.pages) == 0 {
		return nil, ErrNoPages
	}
	return d.pages[0], nil
}

// AcroForm returns the interactive form dictionary, creating it on first use.
func (d *Document) AcroForm() *Node {
	if d.acroForm != nil {
		return d.acroForm
	}
	d.fields = raw.NewArray()
	dict := raw.Dict()
	dict.Set(raw.NameLiteral("Fields"), d.fields)
	d.acroForm = NewNode(d.ctx, dict)
	d.catalog.Set("AcroForm", d.acroForm.Reference())
	return d.acroForm
}

// AddField registers a field node in the AcroForm /Fields array.
func (d *Document) AddField(field *Node) {
	d.AcroForm()
	for _, it := range d.fields.Items {
		if ref, ok := it.(raw.RefObj); ok && ref.R == field.Ref {
			return
		}
	}
	d.fields.Append(field.Reference())
}

// Fields returns the AcroForm field nodes in /Fields order.
func (d *Document) Fields() []*Node {
	if d.fields == nil {
		return nil
	}
	var out []*Node
	for _, it := range d.fields.Items {
		ref, ok := it.(raw.RefObj)
		if !ok {
			continue
		}
		if dict, ok := d.ctx.ResolveDict(ref); ok {
			out = append(out, &Node{Ref: ref.R, Dict: dict})
		}
	}
	return out
}

// Field looks up a form field by its /T entry.
func (d *Document) Field(name string) (*Node, bool) {
	for _, f := range d.Fields() {
		t, _ := f.Get("T")
		if s, ok := t.(raw.String); ok && raw.DecodeText(s.Value()) == name {
			return f, true
		}
	}
	return nil, false
}
