package document

import (
	"fmt"
	"sort"

	"github.com/wudi/formkit/ir/raw"
)

// Context is the registry of indirect objects belonging to one document.
//
// A Context is not safe for concurrent use. All mutations of one document,
// including every builder call against it, must be serialized by the caller.
type Context struct {
	objects map[raw.ObjectRef]raw.Object
	objNum  int
}

func NewContext() *Context {
	return &Context{
		objects: make(map[raw.ObjectRef]raw.Object),
		objNum:  1,
	}
}

// Alloc reserves the next object number. The reference is dangling until Put.
func (c *Context) Alloc() raw.ObjectRef {
	ref := raw.ObjectRef{Num: c.objNum, Gen: 0}
	c.objNum++
	return ref
}

// Put stores obj under ref, replacing any previous object.
func (c *Context) Put(ref raw.ObjectRef, obj raw.Object) {
	if ref.Num >= c.objNum {
		c.objNum = ref.Num + 1
	}
	c.objects[ref] = obj
}

// Register allocates a reference for obj and stores it.
func (c *Context) Register(obj raw.Object) raw.ObjectRef {
	ref := c.Alloc()
	c.objects[ref] = obj
	return ref
}

func (c *Context) Lookup(ref raw.ObjectRef) (raw.Object, bool) {
	obj, ok := c.objects[ref]
	return obj, ok
}

// Resolve follows references until it reaches a direct object.
// Unknown references resolve to nil.
func (c *Context) Resolve(obj raw.Object) raw.Object {
	for i := 0; i < 32; i++ {
		ref, ok := obj.(raw.Reference)
		if !ok {
			return obj
		}
		next, ok := c.objects[ref.Ref()]
		if !ok {
			return nil
		}
		obj = next
	}
	return nil
}

// ResolveDict resolves obj and returns it when it is a dictionary.
func (c *Context) ResolveDict(obj raw.Object) (*raw.DictObj, bool) {
	d, ok := c.Resolve(obj).(*raw.DictObj)
	return d, ok
}

func (c *Context) Delete(ref raw.ObjectRef) { delete(c.objects, ref) }

func (c *Context) Len() int { return len(c.objects) }

// Refs returns all registered references in ascending object number order.
func (c *Context) Refs() []raw.ObjectRef {
	refs := make([]raw.ObjectRef, 0, len(c.objects))
	for ref := range c.objects {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Num != refs[j].Num {
			return refs[i].Num < refs[j].Num
		}
		return refs[i].Gen < refs[j].Gen
	})
	return refs
}

// CheckReferences verifies that every reference held by a registered object
// points at a registered object.
func (c *Context) CheckReferences() error {
	for _, ref := range c.Refs() {
		if missing, ok := c.findDangling(c.objects[ref]); ok {
			return fmt.Errorf("object %s references %s: %w", ref, missing, ErrDanglingReference)
		}
	}
	return nil
}

func (c *Context) findDangling(obj raw.Object) (raw.ObjectRef, bool) {
	switch v := obj.(type) {
	case raw.RefObj:
		if _, ok := c.objects[v.R]; !ok {
			return v.R, true
		}
	case *raw.ArrayObj:
		for _, it := range v.Items {
			if ref, ok := c.findDangling(it); ok {
				return ref, true
			}
		}
	case *raw.DictObj:
		for _, k := range v.Keys() {
			if ref, ok := c.findDangling(v.KV[k.Value()]); ok {
				return ref, true
			}
		}
	case *raw.StreamObj:
		if v.Dict != nil {
			return c.findDangling(v.Dict)
		}
	}
	return raw.ObjectRef{}, false
}
