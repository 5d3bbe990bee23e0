package sway

// Selector names the properties a transition animates from their current
// values. At root level keys are transform property names or the namespace
// names "shape", "style" and "extra".
type Selector struct {
	All  bool
	Keys []string
}

// TransitionAll selects every property.
func TransitionAll() Selector {
	return Selector{All: true}
}

// TransitionKeys selects the named properties.
func TransitionKeys(keys ...string) Selector {
	return Selector{Keys: keys}
}

// IsZero reports whether the selector selects nothing.
func (s Selector) IsZero() bool {
	return !s.All && len(s.Keys) == 0
}

// Has reports whether key is selected.
func (s Selector) Has(key string) bool {
	if s.All {
		return true
	}
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// IsTransitionAll reports whether s selects every property.
func IsTransitionAll(s Selector) bool {
	return s.All
}

// NamespaceSpec declares the target values and transition overrides of the
// shape, style or extra namespace.
type NamespaceSpec struct {
	Props      Props
	Transition Selector
	EnterFrom  Props
	LeaveTo    Props
}

// TransitionSpec declares the target state of one element and how it
// transitions into and out of that state.
type TransitionSpec struct {
	Transform  TransformProps
	Transition Selector
	EnterFrom  TransformProps
	LeaveTo    TransformProps

	Shape *NamespaceSpec
	Style *NamespaceSpec
	Extra *NamespaceSpec

	// During is called on every animation frame with a mutation surface
	// bound to the element.
	During func(*DuringAPI)

	EnterAnimation  *AnimationOverride
	UpdateAnimation *AnimationOverride
	LeaveAnimation  *AnimationOverride

	// ClearStyle drops the previous style before applying Style.
	ClearStyle bool

	// Nil keeps the element's current value.
	Invisible *bool
	Ignore    *bool
	Silent    *bool
}

// transitionState is what an element remembers between transitions.
type transitionState struct {
	leaveTo        *PropSet
	leaveAnimation *AnimationOverride
	during         *duringHandle
}

// duringHandle gives a During callback an identity so a superseded one can
// be recognised.
type duringHandle struct {
	fn func(*DuringAPI)
}

// animatableStyleKeys are the style properties that transition when the
// whole style namespace is selected.
var animatableStyleKeys = map[string]bool{
	StyleFill:        true,
	StyleStroke:      true,
	StyleOpacity:     true,
	"fillOpacity":    true,
	"strokeOpacity":  true,
	"lineWidth":      true,
	"lineDashOffset": true,
	"shadowBlur":     true,
	"shadowOffsetX":  true,
	"shadowOffsetY":  true,
	"shadowColor":    true,
}

// ApplyUpdateTransition applies spec to el. Final values are assigned
// immediately; when animation is enabled the element then animates from the
// enterFrom values (isInit) or from its previous values of the selected
// properties (update). A running leave animation on el is stopped first, so
// a reused element is never detached by an earlier remove.
func ApplyUpdateTransition(el *Node, spec TransitionSpec, cfg AnimatableConfig, dataIndex int, isInit bool) {
	el.StopAnimation(ScopeRemove)
	hasAnimation := cfg != nil && cfg.AnimationEnabled()

	st := &el.transition
	st.during = nil
	if spec.During != nil {
		st.during = &duringHandle{fn: spec.During}
	}
	if spec.LeaveAnimation != nil {
		st.leaveAnimation = spec.LeaveAnimation
	}

	var from, final PropSet
	prepareTransformFinal(spec, &final)
	prepareShapeOrExtraFinal(NamespaceShape, spec.Shape, &final)
	prepareShapeOrExtraFinal(NamespaceExtra, spec.Extra, &final)

	if !isInit && hasAnimation {
		prepareTransformFrom(el, spec, &from)
		prepareShapeOrExtraFrom(NamespaceShape, el.Shape, spec, spec.Shape, &from)
		prepareShapeOrExtraFrom(NamespaceExtra, el.Extra, spec, spec.Extra, &from)
		prepareStyleFrom(el, spec, &from)
	}

	applyPropsDirectly(el, final, spec.Style, spec.ClearStyle)
	applyMiscProps(el, spec)

	if hasAnimation {
		if isInit {
			enterFrom := collectEnterFrom(spec)
			ac := elementAnimationConfig(AnimationEnter, el, spec.EnterAnimation, cfg, dataIndex)
			if ac.Duration > 0 {
				el.AnimateFrom(enterFrom, ac)
			}
		} else {
			ac := elementAnimationConfig(AnimationUpdate, el, spec.UpdateAnimation, cfg, dataIndex)
			if ac.Duration > 0 {
				el.AnimateFrom(from, ac)
			}
		}
	}

	UpdateLeaveTo(el, spec)

	if spec.Style != nil {
		el.MarkStyleDirty()
	} else {
		el.MarkDirty()
	}
}

// ApplyLeaveTransition animates el to the leaveTo values recorded by earlier
// transitions and detaches it from its parent afterwards. Without recorded
// values it is detached at once. onRemoved may be nil.
func ApplyLeaveTransition(el *Node, cfg AnimatableConfig, onRemoved func()) {
	if el == nil {
		return
	}
	done := func() {
		el.RemoveFromParent()
		if onRemoved != nil {
			onRemoved()
		}
	}
	leaveTo := el.transition.leaveTo
	if leaveTo == nil {
		done()
		return
	}
	ac := elementAnimationConfig(AnimationUpdate, el, el.transition.leaveAnimation, cfg, 0)
	ac.Scope = ScopeRemove
	ac.SetToFinal = false
	ac.Force = true
	ac.Done = done
	el.AnimateTo(*leaveTo, ac)
}

// UpdateLeaveTo merges the leaveTo values of spec into those already
// recorded on el.
func UpdateLeaveTo(el *Node, spec TransitionSpec) {
	merge := func(ns Namespace, props map[string]any) {
		if len(props) == 0 {
			return
		}
		if el.transition.leaveTo == nil {
			el.transition.leaveTo = &PropSet{}
		}
		for k, v := range props {
			el.transition.leaveTo.set(propKey{ns, k}, cloneValue(v))
		}
	}
	if len(spec.LeaveTo) > 0 {
		m := make(map[string]any, len(spec.LeaveTo))
		for k, v := range spec.LeaveTo {
			m[k] = v
		}
		merge(NamespaceTransform, m)
	}
	if spec.Shape != nil {
		merge(NamespaceShape, spec.Shape.LeaveTo)
	}
	if spec.Style != nil {
		merge(NamespaceStyle, spec.Style.LeaveTo)
	}
	if spec.Extra != nil {
		merge(NamespaceExtra, spec.Extra.LeaveTo)
	}
}

// elementAnimationConfig resolves the timing of a spec-driven animation. The
// per-kind override of the spec wins over the declared timings. When the
// result animates, the element's During callback is attached.
func elementAnimationConfig(kind AnimationKind, el *Node, override *AnimationOverride, cfg AnimatableConfig, dataIndex int) AnimateConfig {
	ac, _ := GetAnimationConfig(kind, cfg, dataIndex, nil)
	applyOverride(&ac, override)
	if ac.Duration > 0 {
		if h := el.transition.during; h != nil {
			ac.During = func(float64) { duringCall(el, h) }
			ac.Force = true
		}
		ac.SetToFinal = true
		ac.Scope = kind.Scope()
	}
	return ac
}

func collectEnterFrom(spec TransitionSpec) PropSet {
	var out PropSet
	for k, v := range spec.EnterFrom {
		out.set(propKey{NamespaceTransform, k}, v)
	}
	add := func(ns Namespace, s *NamespaceSpec) {
		if s == nil {
			return
		}
		for k, v := range s.EnterFrom {
			out.set(propKey{ns, k}, cloneValue(v))
		}
	}
	add(NamespaceShape, spec.Shape)
	add(NamespaceStyle, spec.Style)
	add(NamespaceExtra, spec.Extra)
	return out
}

func prepareTransformFinal(spec TransitionSpec, final *PropSet) {
	for _, key := range TransformKeys {
		if v, ok := spec.Transform[key]; ok {
			final.set(propKey{NamespaceTransform, key}, v)
		}
	}
	for _, key := range spec.Transform.unknownKeys() {
		debugWarnf("prop %q is not permitted in transform, only %v are", key, TransformKeys)
	}
}

func prepareTransformFrom(el *Node, spec TransitionSpec, from *PropSet) {
	keys := spec.Transition.Keys
	if spec.Transition.All {
		keys = TransformKeys
	}
	for _, key := range keys {
		switch key {
		case "shape", "style", "extra":
			continue
		}
		p := el.transformField(key)
		if p == nil {
			debugWarnf("prop %q is not permitted in transition, only %v are", key, TransformKeys)
			continue
		}
		from.set(propKey{NamespaceTransform, key}, *p)
	}
}

func prepareShapeOrExtraFinal(ns Namespace, s *NamespaceSpec, final *PropSet) {
	if s == nil {
		return
	}
	for k, v := range s.Props {
		final.set(propKey{ns, k}, cloneValue(v))
	}
}

func prepareShapeOrExtraFrom(ns Namespace, current Props, spec TransitionSpec, s *NamespaceSpec, from *PropSet) {
	if s == nil || current == nil {
		return
	}
	if !s.Transition.IsZero() {
		if s.Transition.All {
			for k, v := range current {
				from.set(propKey{ns, k}, cloneValue(v))
			}
			return
		}
		for _, k := range s.Transition.Keys {
			if v, ok := current[k]; ok {
				from.set(propKey{ns, k}, cloneValue(v))
			}
		}
		return
	}
	if spec.Transition.Has(ns.String()) {
		for k, v := range current {
			if nonStyleTransitionEnabled(s.Props[k], v) {
				from.set(propKey{ns, k}, cloneValue(v))
			}
		}
	}
}

// nonStyleTransitionEnabled reports whether a shape or extra value selected
// through the namespace name should animate: numbers when finite, compound
// values when they differ from the current one.
func nonStyleTransitionEnabled(optVal, elVal any) bool {
	switch optVal.(type) {
	case []float64, []Vec2, []Color, Color, Vec2:
		return !valuesEqual(optVal, elVal)
	}
	return isFiniteNumber(optVal)
}

func prepareStyleFrom(el *Node, spec TransitionSpec, from *PropSet) {
	s := spec.Style
	if s == nil || el.Style == nil {
		return
	}
	if !s.Transition.IsZero() && !s.Transition.All {
		for _, k := range s.Transition.Keys {
			if v, ok := el.Style[k]; ok {
				from.set(propKey{NamespaceStyle, k}, cloneValue(v))
			}
		}
		return
	}
	if el.IsGroup() {
		return
	}
	if spec.Transition.All || s.Transition.All || spec.Transition.Has("style") {
		for _, k := range s.Props.sortedKeys() {
			if !animatableStyleKeys[k] {
				continue
			}
			if v, ok := el.Style[k]; ok {
				from.set(propKey{NamespaceStyle, k}, cloneValue(v))
			}
		}
	}
}

// applyPropsDirectly assigns the final state. Style is merged (or replaced
// when clearStyle) first; running style animators keep writing into the new
// record since they address keys, not maps.
func applyPropsDirectly(el *Node, final PropSet, style *NamespaceSpec, clearStyle bool) {
	if !el.IsGroup() && style != nil {
		if clearStyle {
			el.Style = Props{}
		}
		for _, k := range style.Props.sortedKeys() {
			el.setProp(propKey{NamespaceStyle, k}, cloneValue(style.Props[k]))
		}
	}
	el.Attr(final)
}

func applyMiscProps(el *Node, spec TransitionSpec) {
	if spec.Silent != nil {
		el.Silent = *spec.Silent
	}
	if spec.Ignore != nil {
		el.Ignore = *spec.Ignore
	}
	if spec.Invisible != nil && !el.IsGroup() {
		el.Invisible = *spec.Invisible
	}
}
