package sway

import "math"

// DuringAPI is the mutation surface handed to a TransitionSpec.During
// callback. It is bound to one element for the length of one call; using it
// after the callback returns does nothing.
type DuringAPI struct {
	el         *Node
	shapeDirty bool
	styleDirty bool
}

// reservedKeys may not be set through the during API.
var reservedKeys = map[string]bool{
	"transition": true,
	"enterFrom":  true,
	"leaveTo":    true,
}

// duringCall runs the callback behind h against el unless a later transition
// replaced it.
func duringCall(el *Node, h *duringHandle) {
	if el.transition.during != h || h.fn == nil {
		return
	}
	api := &DuringAPI{el: el}
	h.fn(api)
	api.el = nil
	if api.shapeDirty {
		el.MarkShapeDirty()
	}
	if api.styleDirty {
		el.MarkStyleDirty()
	}
}

// Node returns the bound element, or nil once the callback has returned.
func (d *DuringAPI) Node() *Node {
	return d.el
}

// SetTransform writes one transform property.
func (d *DuringAPI) SetTransform(key string, v float64) *DuringAPI {
	if d.el == nil {
		return d
	}
	checkReserved(key)
	p := d.el.transformField(key)
	if p == nil {
		debugWarnf("prop %q is not a transform property", key)
		return d
	}
	*p = v
	d.el.transformDirty = true
	return d
}

// Transform reads one transform property.
func (d *DuringAPI) Transform(key string) float64 {
	if d.el == nil {
		return 0
	}
	checkReserved(key)
	p := d.el.transformField(key)
	if p == nil {
		debugWarnf("prop %q is not a transform property", key)
		return 0
	}
	return *p
}

// SetShape writes one shape property, creating the shape record if needed.
func (d *DuringAPI) SetShape(key string, v any) *DuringAPI {
	if d.el == nil {
		return d
	}
	checkReserved(key)
	d.el.setProp(propKey{NamespaceShape, key}, v)
	d.shapeDirty = true
	return d
}

// Shape reads one shape property.
func (d *DuringAPI) Shape(key string) any {
	if d.el == nil {
		return nil
	}
	checkReserved(key)
	return d.el.Shape[key]
}

// SetStyle writes one style property. Elements without a style record are
// left alone.
func (d *DuringAPI) SetStyle(key string, v any) *DuringAPI {
	if d.el == nil || d.el.Style == nil {
		return d
	}
	checkReserved(key)
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		debugWarnf("style %q set to NaN", key)
	}
	d.el.setProp(propKey{NamespaceStyle, key}, v)
	d.styleDirty = true
	return d
}

// Style reads one style property.
func (d *DuringAPI) Style(key string) any {
	if d.el == nil || d.el.Style == nil {
		return nil
	}
	checkReserved(key)
	return d.el.Style[key]
}

// SetExtra writes one extra property.
func (d *DuringAPI) SetExtra(key string, v any) *DuringAPI {
	if d.el == nil {
		return d
	}
	checkReserved(key)
	d.el.setProp(propKey{NamespaceExtra, key}, v)
	return d
}

// Extra reads one extra property.
func (d *DuringAPI) Extra(key string) any {
	if d.el == nil {
		return nil
	}
	checkReserved(key)
	return d.el.Extra[key]
}

func checkReserved(key string) {
	if reservedKeys[key] {
		debugWarnf("%q is reserved and cannot be used in during", key)
	}
}
