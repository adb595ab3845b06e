package dom

import "github.com/wudi/formkit/document"

type PageProxy struct {
	index int
	page  *document.Page
}

func NewPageProxy(index int, p *document.Page) *PageProxy {
	return &PageProxy{index: index, page: p}
}

func (p *PageProxy) GetIndex() int { return p.index }

func (p *PageProxy) Width() float64 {
	w, _ := p.page.Size()
	return w
}

func (p *PageProxy) Height() float64 {
	_, h := p.page.Size()
	return h
}
