package sway

// Remove animations that do not declare their own timing use these.
const (
	defaultRemoveDuration = 0.2
	defaultRemoveEasing   = "cubicOut"
)

// AnimateOpts carries the per-call options of InitProps, UpdateProps and
// RemoveElement.
type AnimateOpts struct {
	DataIndex int
	// Done runs once when the animation completes, or synchronously when
	// nothing animates.
	Done func()
	// During runs every frame with the eased percent, and once with 1 when
	// nothing animates.
	During func(percent float64)
	// RemoveOpt overrides the remove timing. Only used by RemoveElement.
	RemoveOpt *AnimationOverride
	// IsFrom treats props as start values and animates back to the
	// current ones.
	IsFrom bool
}

// GetAnimationConfig resolves duration, delay and easing for an animation of
// kind. ok is false when animation is disabled. A non-nil extra replaces the
// declared timings (defaults 0.2s, cubicOut, no delay); a payload override on
// cfg takes precedence over everything.
func GetAnimationConfig(kind AnimationKind, cfg AnimatableConfig, dataIndex int, extra *AnimationOverride) (AnimateConfig, bool) {
	if cfg == nil || !cfg.AnimationEnabled() {
		return AnimateConfig{}, false
	}

	var ac AnimateConfig
	if extra != nil {
		ac.Duration = defaultRemoveDuration
		ac.Easing = defaultRemoveEasing
		applyOverride(&ac, extra)
	} else {
		ac.Duration = cfg.AnimationDuration(kind, dataIndex)
		ac.Easing = cfg.AnimationEasing(kind)
		ac.Delay = cfg.AnimationDelay(kind, dataIndex)
	}
	if payload := cfg.PayloadAnimation(); payload != nil {
		applyOverride(&ac, payload)
	}
	if ac.Duration < 0 {
		ac.Duration = 0
	}
	return ac, true
}

func applyOverride(ac *AnimateConfig, o *AnimationOverride) {
	if o == nil {
		return
	}
	if o.Duration != nil {
		ac.Duration = *o.Duration
	}
	if o.Easing != "" {
		ac.Easing = o.Easing
	}
	if o.Delay != nil {
		ac.Delay = *o.Delay
	}
}

// animateOrSetProps is the single decision point of the arbiter: tween when
// enabled with a positive duration, otherwise assign synchronously and run
// the callbacks once.
func animateOrSetProps(kind AnimationKind, el *Node, props PropSet, cfg AnimatableConfig, opts AnimateOpts) {
	isRemove := kind == AnimationLeave
	if !isRemove {
		el.StopAnimation(ScopeRemove)
	}

	var extra *AnimationOverride
	if isRemove {
		extra = opts.RemoveOpt
		if extra == nil {
			extra = &AnimationOverride{}
		}
	}

	ac, ok := GetAnimationConfig(kind, cfg, opts.DataIndex, extra)
	if ok && ac.Duration > 0 {
		ac.Done = opts.Done
		ac.During = opts.During
		ac.Force = opts.Done != nil || opts.During != nil
		ac.SetToFinal = !isRemove
		ac.Scope = kind.Scope()
		if opts.IsFrom {
			el.AnimateFrom(props, ac)
		} else {
			el.AnimateTo(props, ac)
		}
		return
	}

	el.StopAnimation("")
	if !opts.IsFrom {
		el.Attr(props)
	}
	if opts.During != nil {
		opts.During(1)
	}
	if opts.Done != nil {
		opts.Done()
	}
}

// InitProps brings a newly created element to props, animating with the
// enter timings when enabled.
//
// Stops any remove animation on el and any animator touching the same
// properties.
func InitProps(el *Node, props PropSet, cfg AnimatableConfig, opts AnimateOpts) {
	animateOrSetProps(AnimationEnter, el, props, cfg, opts)
}

// UpdateProps moves an existing element to props, animating with the update
// timings when enabled.
//
// Stops any remove animation on el and any animator touching the same
// properties.
func UpdateProps(el *Node, props PropSet, cfg AnimatableConfig, opts AnimateOpts) {
	animateOrSetProps(AnimationUpdate, el, props, cfg, opts)
}

// RemoveElement animates el toward props in the remove scope. The caller
// detaches the element from opts.Done. Calling it again while the remove
// animation is running is a no-op.
func RemoveElement(el *Node, props PropSet, cfg AnimatableConfig, opts AnimateOpts) {
	if IsElementRemoved(el) {
		return
	}
	animateOrSetProps(AnimationLeave, el, props, cfg, opts)
}

// IsElementRemoved reports whether el is disposed or already running its
// remove animation.
func IsElementRemoved(el *Node) bool {
	return el.IsDisposed() || el.hasScope(ScopeRemove)
}

// RemoveElementWithFadeOut fades el out (every non-group descendant when el
// is a group) and detaches it from its parent when the fade completes.
func RemoveElementWithFadeOut(el *Node, cfg AnimatableConfig, dataIndex int) {
	doRemove := func() {
		el.RemoveFromParent()
	}
	if !el.IsGroup() {
		fadeOutDisplayable(el, cfg, dataIndex, doRemove)
		return
	}
	faded := false
	el.Traverse(func(d *Node) {
		if d.IsGroup() {
			return
		}
		faded = true
		// doRemove may run once per descendant; detaching twice is a no-op.
		fadeOutDisplayable(d, cfg, dataIndex, doRemove)
	})
	if !faded {
		doRemove()
	}
}

func fadeOutDisplayable(el *Node, cfg AnimatableConfig, dataIndex int, done func()) {
	RemoveElement(el, PropSet{Style: Props{StyleOpacity: 0.0}}, cfg, AnimateOpts{
		DataIndex: dataIndex,
		Done:      done,
	})
}
