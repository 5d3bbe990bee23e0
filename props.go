package sway

import (
	"math"
	"reflect"
	"sort"
)

// Props is a free-form record of property values keyed by name. Used for the
// shape, style and extra namespaces of a Node.
//
// Values that animate smoothly: float64, Color, Vec2, []float64 and []Vec2
// (slices only when both ends have the same length). Any other value switches
// to its target when the animation finishes.
type Props map[string]any

// Clone returns a copy of p with slice values copied so the result shares no
// mutable state with p. Returns nil for a nil map.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// sortedKeys returns the keys of p in lexical order. Map iteration order is
// random; animator tracks and during callbacks need a stable order.
func (p Props) sortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TransformProps is a partial set of transform values keyed by transform
// property name (see TransformKeys).
type TransformProps map[string]float64

// Transform property names.
const (
	KeyX        = "x"
	KeyY        = "y"
	KeyScaleX   = "scaleX"
	KeyScaleY   = "scaleY"
	KeyOriginX  = "originX"
	KeyOriginY  = "originY"
	KeyRotation = "rotation"
)

// TransformKeys lists every transform property name in canonical order.
var TransformKeys = []string{KeyX, KeyY, KeyScaleX, KeyScaleY, KeyOriginX, KeyOriginY, KeyRotation}

func isTransformKey(key string) bool {
	for _, k := range TransformKeys {
		if k == key {
			return true
		}
	}
	return false
}

// PropSet is a partial set of Node properties grouped by namespace. Nil
// namespaces are left untouched.
type PropSet struct {
	Transform TransformProps
	Shape     Props
	Style     Props
	Extra     Props
}

// IsEmpty reports whether the set names no property at all.
func (s PropSet) IsEmpty() bool {
	return len(s.Transform) == 0 && len(s.Shape) == 0 && len(s.Style) == 0 && len(s.Extra) == 0
}

// propKey addresses one property of a Node.
type propKey struct {
	ns  Namespace
	key string
}

// each calls fn for every property in the set. Transform keys come first in
// canonical order, then shape, style and extra keys in lexical order.
func (s PropSet) each(fn func(k propKey, v any)) {
	for _, key := range TransformKeys {
		if v, ok := s.Transform[key]; ok {
			fn(propKey{NamespaceTransform, key}, v)
		}
	}
	for _, key := range s.Transform.unknownKeys() {
		fn(propKey{NamespaceTransform, key}, s.Transform[key])
	}
	for _, key := range s.Shape.sortedKeys() {
		fn(propKey{NamespaceShape, key}, s.Shape[key])
	}
	for _, key := range s.Style.sortedKeys() {
		fn(propKey{NamespaceStyle, key}, s.Style[key])
	}
	for _, key := range s.Extra.sortedKeys() {
		fn(propKey{NamespaceExtra, key}, s.Extra[key])
	}
}

// unknownKeys returns keys that are not transform property names. They are
// still reported so the assignment path can warn about them.
func (t TransformProps) unknownKeys() []string {
	var out []string
	for k := range t {
		if !isTransformKey(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// set stores v under k, allocating the namespace map when needed.
func (s *PropSet) set(k propKey, v any) {
	switch k.ns {
	case NamespaceTransform:
		f, ok := toFloat(v)
		if !ok {
			return
		}
		if s.Transform == nil {
			s.Transform = TransformProps{}
		}
		s.Transform[k.key] = f
	case NamespaceShape:
		if s.Shape == nil {
			s.Shape = Props{}
		}
		s.Shape[k.key] = v
	case NamespaceStyle:
		if s.Style == nil {
			s.Style = Props{}
		}
		s.Style[k.key] = v
	case NamespaceExtra:
		if s.Extra == nil {
			s.Extra = Props{}
		}
		s.Extra[k.key] = v
	}
}

// cloneValue copies slice values; everything else is returned unchanged.
func cloneValue(v any) any {
	switch x := v.(type) {
	case []float64:
		return append([]float64(nil), x...)
	case []Vec2:
		return append([]Vec2(nil), x...)
	case []Color:
		return append([]Color(nil), x...)
	default:
		return v
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// interpolateValue blends from toward to at t in [0, 1]. The second result is
// false when the pair cannot be blended; callers then hold from until t
// reaches 1.
func interpolateValue(from, to any, t float64) (any, bool) {
	switch f := from.(type) {
	case float64:
		if tv, ok := to.(float64); ok {
			return f + (tv-f)*t, true
		}
	case Color:
		if tv, ok := to.(Color); ok {
			return f.lerp(tv, t), true
		}
	case Vec2:
		if tv, ok := to.(Vec2); ok {
			return Vec2{f.X + (tv.X-f.X)*t, f.Y + (tv.Y-f.Y)*t}, true
		}
	case []float64:
		if tv, ok := to.([]float64); ok && len(tv) == len(f) {
			out := make([]float64, len(f))
			for i := range f {
				out[i] = f[i] + (tv[i]-f[i])*t
			}
			return out, true
		}
	case []Vec2:
		if tv, ok := to.([]Vec2); ok && len(tv) == len(f) {
			out := make([]Vec2, len(f))
			for i := range f {
				out[i] = Vec2{f[i].X + (tv[i].X-f[i].X)*t, f[i].Y + (tv[i].Y-f[i].Y)*t}
			}
			return out, true
		}
	}
	return nil, false
}

// isFiniteNumber reports whether v is a float64 that is neither NaN nor Inf.
func isFiniteNumber(v any) bool {
	f, ok := v.(float64)
	return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
