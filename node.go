package sway

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic — sway is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the drawable element the transition engine animates. A single flat
// struct is used for groups, paths and other displayables; Kind records which
// capabilities apply.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Kind Kind

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	OriginX  float64
	OriginY  float64
	Rotation float64

	// Property namespaces. Nil until first written.
	Shape Props
	Style Props
	Extra Props

	// Flags
	Invisible       bool
	Ignore          bool
	Silent          bool
	DisableMorphing bool

	// Metadata
	UserData any

	// Dirty tracking, cleared by the renderer.
	transformDirty bool
	shapeDirty     bool
	styleDirty     bool

	// Animation state
	animators  []*Animator
	transition transitionState
	oldStyle   Props
	morph      *morphState

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.transformDirty = true
}

// NewGroup creates a container node with no visual representation.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Kind: KindGroup}
	nodeDefaults(n)
	return n
}

// NewPath creates a morphable path node. The outline is stored under the
// "points" shape key and filled with fill at full opacity.
func NewPath(name string, points []Vec2, fill Color) *Node {
	n := &Node{
		Name:  name,
		Kind:  KindPath,
		Shape: Props{ShapePoints: append([]Vec2(nil), points...)},
		Style: Props{StyleFill: fill, StyleOpacity: 1.0},
	}
	nodeDefaults(n)
	return n
}

// NewDisplayable creates a styled node that takes part in fades but never in
// shape morphing.
func NewDisplayable(name string) *Node {
	n := &Node{Name: name, Kind: KindDisplayable, Style: Props{StyleOpacity: 1.0}}
	nodeDefaults(n)
	return n
}

// Well-known shape and style keys.
const (
	ShapePoints  = "points"
	StyleFill    = "fill"
	StyleStroke  = "stroke"
	StyleOpacity = "opacity"
)

// IsGroup reports whether n is a container.
func (n *Node) IsGroup() bool {
	return n.Kind == KindGroup
}

// Points returns the path outline, or nil when n has none.
func (n *Node) Points() []Vec2 {
	pts, _ := n.Shape[ShapePoints].([]Vec2)
	return pts
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("sway: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("sway: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("sway: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("sway: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("sway: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("sway: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Traverse visits the descendants of a group depth-first in child order, or
// the node itself when it is not a group. fn may not add or remove children
// of the node being visited.
func (n *Node) Traverse(fn func(*Node)) {
	if !n.IsGroup() {
		fn(n)
		return
	}
	for _, child := range n.children {
		fn(child)
		if child.IsGroup() {
			child.Traverse(fn)
		}
	}
}

// --- Disposal ---

// Dispose stops all animations, removes this node from its parent, marks it
// as disposed, and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.StopAnimation("")
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.morph = nil
	n.transition = transitionState{}
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Property access ---

// Attr assigns every property in props directly, without animation. Shape,
// style and extra values are merged into the existing records.
func (n *Node) Attr(props PropSet) {
	props.each(func(k propKey, v any) {
		n.setProp(k, cloneValue(v))
	})
}

// prop returns the current value of one property.
func (n *Node) prop(k propKey) (any, bool) {
	switch k.ns {
	case NamespaceTransform:
		p := n.transformField(k.key)
		if p == nil {
			return nil, false
		}
		return *p, true
	case NamespaceShape:
		v, ok := n.Shape[k.key]
		return v, ok
	case NamespaceStyle:
		v, ok := n.Style[k.key]
		return v, ok
	case NamespaceExtra:
		v, ok := n.Extra[k.key]
		return v, ok
	}
	return nil, false
}

// setProp writes one property and marks the matching namespace dirty.
func (n *Node) setProp(k propKey, v any) {
	switch k.ns {
	case NamespaceTransform:
		p := n.transformField(k.key)
		if p == nil {
			debugWarnf("%q is not a transform property (node %q)", k.key, n.Name)
			return
		}
		if f, ok := toFloat(v); ok {
			*p = f
			n.transformDirty = true
		}
	case NamespaceShape:
		if n.Shape == nil {
			n.Shape = Props{}
		}
		n.Shape[k.key] = v
		n.shapeDirty = true
	case NamespaceStyle:
		if n.Style == nil {
			n.Style = Props{}
		}
		n.Style[k.key] = v
		n.styleDirty = true
	case NamespaceExtra:
		if n.Extra == nil {
			n.Extra = Props{}
		}
		n.Extra[k.key] = v
	}
}

// transformField maps a transform property name to its field, or nil.
func (n *Node) transformField(key string) *float64 {
	switch key {
	case KeyX:
		return &n.X
	case KeyY:
		return &n.Y
	case KeyScaleX:
		return &n.ScaleX
	case KeyScaleY:
		return &n.ScaleY
	case KeyOriginX:
		return &n.OriginX
	case KeyOriginY:
		return &n.OriginY
	case KeyRotation:
		return &n.Rotation
	}
	return nil
}

// --- Dirty tracking ---

// MarkShapeDirty flags the shape for re-tessellation on the next draw.
func (n *Node) MarkShapeDirty() {
	n.shapeDirty = true
}

// MarkStyleDirty flags the style for repaint on the next draw.
func (n *Node) MarkStyleDirty() {
	n.styleDirty = true
}

// IsDirty reports whether any namespace changed since the last ClearDirty.
func (n *Node) IsDirty() bool {
	return n.transformDirty || n.shapeDirty || n.styleDirty
}

// ClearDirty resets all dirty flags. Called by renderers after drawing.
func (n *Node) ClearDirty() {
	n.transformDirty = false
	n.shapeDirty = false
	n.styleDirty = false
}

// --- Old style ---

// SaveOldStyle snapshots the current style. A later morph away from n
// animates from the snapshot instead of the live style, so transient
// changes such as a highlight are not carried into the transition.
func (n *Node) SaveOldStyle() {
	n.oldStyle = n.Style.Clone()
}

// OldStyle returns the style saved by SaveOldStyle, or nil.
func (n *Node) OldStyle() Props {
	return n.oldStyle
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
