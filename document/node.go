package document

import "github.com/wudi/formkit/ir/raw"

// Node is a dictionary registered in a Context.
type Node struct {
	Ref  raw.ObjectRef
	Dict *raw.DictObj
}

// NewNode registers dict in ctx.
func NewNode(ctx *Context, dict *raw.DictObj) *Node {
	return &Node{Ref: ctx.Register(dict), Dict: dict}
}

// Set stores value under key; later writes to the same key overwrite earlier ones.
func (n *Node) Set(key string, value raw.Object) { n.Dict.Set(raw.NameLiteral(key), value) }

func (n *Node) Get(key string) (raw.Object, bool) { return n.Dict.Get(raw.NameLiteral(key)) }

// Reference returns an indirect reference to the node.
func (n *Node) Reference() raw.RefObj { return raw.RefTo(n.Ref) }
