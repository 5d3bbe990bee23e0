package sway

// Scene owns the node tree and ticks every animator in it once per frame.
// It is the frame clock of the engine; hosts call Update with the frame
// delta.
type Scene struct {
	root  *Node
	debug bool

	frame   uint64
	tickBuf []*Node
}

// NewScene creates a new scene with a pre-created root group.
func NewScene() *Scene {
	return &Scene{root: NewGroup("root")}
}

// Root returns the scene's root group.
func (s *Scene) Root() *Node {
	return s.root
}

// Frame returns the number of Update calls so far.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Update advances every animator in the tree by dt seconds. The node list is
// collected before ticking, so completion callbacks may detach nodes without
// disturbing the current frame; a node detached this frame is still ticked
// once.
func (s *Scene) Update(dt float32) {
	s.frame++
	s.tickBuf = append(s.tickBuf[:0], s.root)
	s.root.Traverse(func(n *Node) {
		if n != s.root {
			s.tickBuf = append(s.tickBuf, n)
		}
	})
	for _, n := range s.tickBuf {
		if !n.disposed {
			n.Update(dt)
		}
	}
	for i := range s.tickBuf {
		s.tickBuf[i] = nil
	}
}

// Animating reports whether any node in the tree has an active animator or
// an in-flight morph.
func (s *Scene) Animating() bool {
	busy := len(s.root.animators) > 0
	s.root.Traverse(func(n *Node) {
		if len(n.animators) > 0 || n.morph != nil {
			busy = true
		}
	})
	return busy
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are logged, invalid property keys and
// NaN style values are reported, and every animator start is checked for a
// single driver per property.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	SetDebug(enabled)
}

// DebugMode reports whether debug mode is enabled on this scene.
func (s *Scene) DebugMode() bool {
	return s.debug
}
