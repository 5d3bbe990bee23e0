package sway

import (
	"github.com/tanema/gween"
)

// AnimateConfig controls a single property tween started with AnimateTo or
// AnimateFrom. Durations and delays are in seconds.
type AnimateConfig struct {
	Duration float64
	Delay    float64
	Easing   string // see Easing; empty means linear
	Scope    string // animator track name; empty means ScopeUpdate

	// Force keeps the animator alive for its full duration even when no
	// property actually changes, so During and Done still fire.
	Force bool
	// SetToFinal assigns the target values immediately when the tween
	// starts; the next frames overwrite them with interpolated values.
	SetToFinal bool

	Done   func()
	During func(percent float64)
	// Abort is called instead of Done when the animator is stopped early.
	Abort func()
}

// track is one property driven by an animator.
type track struct {
	key  propKey
	from any
	to   any
}

// Animator drives a set of properties on one Node from their start values to
// their end values. A gween tween running from 0 to 1 supplies the eased
// percent each frame. Animators are owned by their Node and advanced by
// Node.Update; there is no global animation manager.
type Animator struct {
	target *Node
	scope  string
	tracks []track
	tween  *gween.Tween
	delay  float32

	onDone   func()
	onDuring func(percent float64)
	onAbort  func()

	percent float64
	stopped bool
	Done    bool
}

// Scope returns the animator's track name.
func (a *Animator) Scope() string {
	return a.scope
}

// Percent returns the eased progress written on the last frame.
func (a *Animator) Percent() float64 {
	return a.percent
}

// Stopped reports whether the animator was stopped before finishing.
func (a *Animator) Stopped() bool {
	return a.stopped
}

// Drives reports whether the animator currently writes the given property.
func (a *Animator) Drives(ns Namespace, key string) bool {
	for _, tr := range a.tracks {
		if tr.key.ns == ns && tr.key.key == key {
			return true
		}
	}
	return false
}

// NumTracks returns the number of properties the animator still drives.
func (a *Animator) NumTracks() int {
	return len(a.tracks)
}

// Update advances the animator by dt seconds and writes interpolated values
// to the target. If the target has been disposed, Done is set and no writes
// occur. Completion callbacks are run by Node.Update, not here.
func (a *Animator) Update(dt float32) {
	if a.Done {
		return
	}
	if a.target != nil && a.target.IsDisposed() {
		a.Done = true
		return
	}
	if a.delay > 0 {
		a.delay -= dt
		if a.delay > 0 {
			return
		}
		dt = -a.delay
		a.delay = 0
	}

	val, finished := a.tween.Update(dt)
	p := float64(val)
	if finished {
		p = 1
	}
	a.apply(p)
	if a.onDuring != nil {
		a.onDuring(p)
	}
	a.Done = finished
}

// apply writes every track at progress p.
func (a *Animator) apply(p float64) {
	a.percent = p
	for _, tr := range a.tracks {
		if v, ok := interpolateValue(tr.from, tr.to, p); ok {
			a.target.setProp(tr.key, v)
			continue
		}
		if p >= 1 {
			a.target.setProp(tr.key, cloneValue(tr.to))
		} else {
			a.target.setProp(tr.key, cloneValue(tr.from))
		}
	}
}

// stopTracks drops the tracks for keys. It reports true when the animator
// had tracks and lost all of them.
func (a *Animator) stopTracks(keys []propKey) bool {
	if len(a.tracks) == 0 {
		return false
	}
	kept := a.tracks[:0]
	for _, tr := range a.tracks {
		if !containsKey(keys, tr.key) {
			kept = append(kept, tr)
		}
	}
	for i := len(kept); i < len(a.tracks); i++ {
		a.tracks[i] = track{}
	}
	a.tracks = kept
	return len(a.tracks) == 0
}

// stop halts the animator where it is. Values are left as last written.
func (a *Animator) stop() {
	if a.Done && !a.stopped {
		return
	}
	a.stopped = true
	a.Done = true
	if a.onAbort != nil {
		a.onAbort()
	}
}

func (a *Animator) keys() []propKey {
	out := make([]propKey, len(a.tracks))
	for i, tr := range a.tracks {
		out[i] = tr.key
	}
	return out
}

func containsKey(keys []propKey, k propKey) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}

// --- Node animation API ---

// AnimateTo tweens the properties in props from their current values to the
// given ones. Returns nil when nothing needs to run; in that case During and
// Done have already been called.
func (n *Node) AnimateTo(props PropSet, cfg AnimateConfig) *Animator {
	a := n.newAnimator(cfg)
	props.each(func(k propKey, to any) {
		cur, ok := n.prop(k)
		if !ok {
			n.setProp(k, cloneValue(to))
			return
		}
		if valuesEqual(cur, to) {
			return
		}
		a.tracks = append(a.tracks, track{key: k, from: cloneValue(cur), to: cloneValue(to)})
	})
	if cfg.SetToFinal {
		for _, tr := range a.tracks {
			n.setProp(tr.key, cloneValue(tr.to))
		}
	}
	return n.startAnimator(a, cfg)
}

// AnimateFrom tweens the properties in props from the given values back to
// their current values. Properties the node does not have are skipped. The
// start values are written immediately.
func (n *Node) AnimateFrom(props PropSet, cfg AnimateConfig) *Animator {
	a := n.newAnimator(cfg)
	props.each(func(k propKey, from any) {
		cur, ok := n.prop(k)
		if !ok || valuesEqual(cur, from) {
			return
		}
		a.tracks = append(a.tracks, track{key: k, from: cloneValue(from), to: cloneValue(cur)})
	})
	if cfg.Duration > 0 {
		a.apply(0)
	}
	return n.startAnimator(a, cfg)
}

func (n *Node) newAnimator(cfg AnimateConfig) *Animator {
	scope := cfg.Scope
	if scope == "" {
		scope = ScopeUpdate
	}
	return &Animator{
		target:   n,
		scope:    scope,
		delay:    float32(cfg.Delay),
		onDone:   cfg.Done,
		onDuring: cfg.During,
		onAbort:  cfg.Abort,
	}
}

// startAnimator registers a and makes it the sole driver of its properties.
// A non-remove animator first stops every remove-scope animator, even when
// it has nothing to tween: the node is being reused, not torn down. Then any other animator touching the same
// properties loses those tracks, and is aborted when none remain.
func (n *Node) startAnimator(a *Animator, cfg AnimateConfig) *Animator {
	if a.scope != ScopeRemove {
		n.StopAnimation(ScopeRemove)
	}
	if cfg.Duration <= 0 {
		for _, tr := range a.tracks {
			n.setProp(tr.key, cloneValue(tr.to))
		}
		a.percent = 1
		a.Done = true
		if a.onDuring != nil {
			a.onDuring(1)
		}
		if a.onDone != nil {
			a.onDone()
		}
		return nil
	}
	if len(a.tracks) == 0 && !cfg.Force {
		if a.onDone != nil {
			a.onDone()
		}
		return nil
	}

	if keys := a.keys(); len(keys) > 0 {
		kept := n.animators[:0]
		for _, ex := range n.animators {
			if ex.stopTracks(keys) {
				// Finished this frame but not yet collected: Update still
				// owes it a Done call.
				if ex.Done && !ex.stopped {
					kept = append(kept, ex)
					continue
				}
				ex.stop()
				continue
			}
			kept = append(kept, ex)
		}
		clearTail(n.animators, len(kept))
		n.animators = kept
	}

	a.tween = gween.New(0, 1, float32(cfg.Duration), Easing(cfg.Easing))
	n.animators = append(n.animators, a)
	if globalDebug {
		debugCheckSingleDriver(n)
	}
	return a
}

// StopAnimation stops every animator in scope, or all animators when scope
// is empty. Values are left as last written; Done callbacks do not fire.
func (n *Node) StopAnimation(scope string) {
	if len(n.animators) == 0 {
		return
	}
	var stopped []*Animator
	kept := n.animators[:0]
	for _, a := range n.animators {
		if scope == "" || a.scope == scope {
			stopped = append(stopped, a)
			continue
		}
		kept = append(kept, a)
	}
	clearTail(n.animators, len(kept))
	n.animators = kept
	for _, a := range stopped {
		a.stop()
	}
}

// StopAnimationDeep stops all animators on n and every descendant.
func (n *Node) StopAnimationDeep() {
	n.StopAnimation("")
	for _, child := range n.children {
		child.StopAnimationDeep()
	}
}

// Animators returns the active animators. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node) Animators() []*Animator {
	return n.animators
}

// hasScope reports whether an animator in scope is active.
func (n *Node) hasScope(scope string) bool {
	for _, a := range n.animators {
		if a.scope == scope {
			return true
		}
	}
	return false
}

// Update advances the node's animators (and any transient morph parts) by
// dt seconds. Finished animators are unregistered before their Done
// callbacks run, so a callback may start new animations on the node.
func (n *Node) Update(dt float32) {
	if n.morph != nil {
		n.morph.update(n, dt)
	}
	if len(n.animators) == 0 {
		return
	}
	active := append([]*Animator(nil), n.animators...)
	for _, a := range active {
		if !a.stopped {
			a.Update(dt)
		}
	}

	var finished []*Animator
	kept := n.animators[:0]
	for _, a := range n.animators {
		if a.Done {
			if !a.stopped {
				finished = append(finished, a)
			}
			continue
		}
		kept = append(kept, a)
	}
	clearTail(n.animators, len(kept))
	n.animators = kept

	for _, a := range finished {
		if a.onDone != nil {
			a.onDone()
		}
	}
}

// clearTail nils out s[from:] so dropped animators can be collected.
func clearTail(s []*Animator, from int) {
	for i := from; i < len(s); i++ {
		s[i] = nil
	}
}
