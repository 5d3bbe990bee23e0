package sway

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill.
var ColorWhite = Color{1, 1, 1, 1}

// lerp blends c toward to by t, channel by channel.
func (c Color) lerp(to Color, t float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
		A: c.A + (to.A-c.A)*t,
	}
}

// Vec2 is a 2D vector used for path points, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// boundsOf returns the bounding rectangle of points. Empty input yields a
// zero Rect.
func boundsOf(points []Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Kind distinguishes the capabilities of a Node. It is fixed at construction
// and never probed dynamically.
type Kind uint8

const (
	KindGroup       Kind = iota // container with no visual output
	KindPath                    // morphable geometry with shape and style
	KindDisplayable             // styled but not morphable (text, images)
)

// Namespace identifies one of the four property namespaces of a Node.
type Namespace uint8

const (
	NamespaceTransform Namespace = iota // x, y, scaleX, scaleY, originX, originY, rotation
	NamespaceShape                      // geometry record
	NamespaceStyle                      // paint record
	NamespaceExtra                      // free-form bag
)

// String returns the namespace name as used in transition selectors.
func (ns Namespace) String() string {
	switch ns {
	case NamespaceTransform:
		return "transform"
	case NamespaceShape:
		return "shape"
	case NamespaceStyle:
		return "style"
	case NamespaceExtra:
		return "extra"
	default:
		return "unknown"
	}
}

// Scope names. Callers may use any other string for their own tracks.
const (
	ScopeInit     = "init"
	ScopeUpdate   = "update"
	ScopeRemove   = "remove"
	ScopeKeyframe = "keyframe"
	ScopeMorph    = "morph"
)

// AnimationKind selects which family of configured timings applies.
type AnimationKind uint8

const (
	AnimationEnter  AnimationKind = iota // element appears
	AnimationUpdate                      // element changes
	AnimationLeave                       // element is removed
)

// Scope returns the animator scope used for animations of this kind.
func (k AnimationKind) Scope() string {
	switch k {
	case AnimationEnter:
		return ScopeInit
	case AnimationLeave:
		return ScopeRemove
	default:
		return ScopeUpdate
	}
}
