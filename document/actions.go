package document

import "github.com/wudi/formkit/ir/raw"

// JavaScript returns the script of the JavaScript action bound to event in the
// node's /AA table. Scripts stored as streams are returned undecoded.
func (c *Context) JavaScript(node *Node, event string) (string, bool) {
	aaObj, _ := node.Get("AA")
	aa, ok := c.ResolveDict(aaObj)
	if !ok {
		return "", false
	}
	entry, _ := aa.Get(raw.NameLiteral(event))
	action, ok := c.ResolveDict(entry)
	if !ok {
		return "", false
	}
	kind, _ := action.Get(raw.NameLiteral("S"))
	if n, ok := kind.(raw.NameObj); !ok || n.Value() != "JavaScript" {
		return "", false
	}
	js, _ := action.Get(raw.NameLiteral("JS"))
	switch v := c.Resolve(js).(type) {
	case raw.String:
		return raw.DecodeText(v.Value()), true
	case *raw.StreamObj:
		return string(v.Data), true
	}
	return "", false
}
