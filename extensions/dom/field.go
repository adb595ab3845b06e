package dom

import (
	"fmt"

	"github.com/wudi/formkit/document"
	"github.com/wudi/formkit/ir/raw"
)

// FieldProxy reads and writes a widget's /V entry as text.
type FieldProxy struct {
	name string
	node *document.Node
}

func NewFieldProxy(name string, node *document.Node) *FieldProxy {
	return &FieldProxy{name: name, node: node}
}

func (p *FieldProxy) Name() string { return p.name }

func (p *FieldProxy) GetValue() any {
	v, ok := p.node.Get("V")
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case raw.String:
		return raw.DecodeText(s.Value())
	case raw.NameObj:
		return s.Value()
	default:
		return ""
	}
}

func (p *FieldProxy) SetValue(val any) {
	var s string
	switch v := val.(type) {
	case string:
		s = v
	case nil:
	default:
		s = fmt.Sprint(v)
	}
	p.node.Set("V", raw.TextString(s))
}
