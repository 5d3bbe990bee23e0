package sway

import (
	"math/rand"
	"testing"
)

func ptr(v float64) *float64 { return &v }

// tick advances n frames of dt seconds.
func tick(el *Node, frames int, dt float32) {
	for i := 0; i < frames; i++ {
		el.Update(dt)
	}
}

func linearAnimation(d float64) SeriesAnimation {
	return SeriesAnimation{
		Enabled:        true,
		Duration:       Seconds(d),
		DurationUpdate: Seconds(d),
		Easing:         "linear",
		EasingUpdate:   "linear",
	}
}

// --- GetAnimationConfig ---

func TestGetAnimationConfigDisabled(t *testing.T) {
	if _, ok := GetAnimationConfig(AnimationUpdate, nil, 0, nil); ok {
		t.Error("nil config should disable animation")
	}
	cfg := DefaultSeriesAnimation()
	cfg.Enabled = false
	if _, ok := GetAnimationConfig(AnimationUpdate, cfg, 0, nil); ok {
		t.Error("disabled config should disable animation")
	}
}

func TestGetAnimationConfigByKind(t *testing.T) {
	cfg := DefaultSeriesAnimation()
	cfg.Delay = Timing{PerItem: func(i int) float64 { return 0.1 * float64(i) }}

	enter, _ := GetAnimationConfig(AnimationEnter, cfg, 3, nil)
	assertNear(t, "enter.Duration", enter.Duration, 1)
	assertNear(t, "enter.Delay", enter.Delay, 0.3)
	if enter.Easing != "cubicInOut" {
		t.Errorf("enter.Easing = %q", enter.Easing)
	}

	update, _ := GetAnimationConfig(AnimationUpdate, cfg, 3, nil)
	assertNear(t, "update.Duration", update.Duration, 0.5)
	assertNear(t, "update.Delay", update.Delay, 0)
}

func TestGetAnimationConfigRemoveDefaults(t *testing.T) {
	cfg := DefaultSeriesAnimation()
	ac, ok := GetAnimationConfig(AnimationLeave, cfg, 0, &AnimationOverride{})
	if !ok {
		t.Fatal("expected animation")
	}
	assertNear(t, "Duration", ac.Duration, defaultRemoveDuration)
	if ac.Easing != defaultRemoveEasing {
		t.Errorf("Easing = %q, want %q", ac.Easing, defaultRemoveEasing)
	}

	ac, _ = GetAnimationConfig(AnimationLeave, cfg, 0, &AnimationOverride{Duration: ptr(0.8)})
	assertNear(t, "override Duration", ac.Duration, 0.8)
}

func TestGetAnimationConfigPayloadWins(t *testing.T) {
	cfg := DefaultSeriesAnimation().WithPayload(&AnimationOverride{Duration: ptr(2), Easing: "bounceOut"})

	for _, kind := range []AnimationKind{AnimationEnter, AnimationUpdate} {
		ac, _ := GetAnimationConfig(kind, cfg, 0, nil)
		assertNear(t, "Duration", ac.Duration, 2)
		if ac.Easing != "bounceOut" {
			t.Errorf("kind %d: Easing = %q, want bounceOut", kind, ac.Easing)
		}
	}
	ac, _ := GetAnimationConfig(AnimationLeave, cfg, 0, &AnimationOverride{Duration: ptr(0.1)})
	assertNear(t, "remove Duration", ac.Duration, 2)
}

func TestGetAnimationConfigNegativeDurationClamped(t *testing.T) {
	cfg := linearAnimation(-1)
	ac, ok := GetAnimationConfig(AnimationUpdate, cfg, 0, nil)
	if !ok || ac.Duration != 0 {
		t.Errorf("Duration = %v ok=%t, want 0 true", ac.Duration, ok)
	}
}

// --- InitProps / UpdateProps ---

func TestUpdatePropsAnimates(t *testing.T) {
	el := NewGroup("el")
	var last float64
	done := 0
	UpdateProps(el, PropSet{Transform: TransformProps{KeyX: 100}}, linearAnimation(1), AnimateOpts{
		During: func(p float64) { last = p },
		Done:   func() { done++ },
	})
	if len(el.Animators()) != 1 || el.Animators()[0].Scope() != ScopeUpdate {
		t.Fatal("expected one update-scope animator")
	}
	tick(el, 4, 0.25)
	assertNear(t, "X", el.X, 100)
	if last != 1 || done != 1 {
		t.Errorf("last percent=%v done=%d, want 1 and 1", last, done)
	}
}

func TestInitPropsUsesInitScope(t *testing.T) {
	el := NewPath("p", nil, ColorWhite)
	InitProps(el, PropSet{Style: Props{StyleOpacity: 0.0}}, linearAnimation(1), AnimateOpts{IsFrom: true})
	if len(el.Animators()) != 1 || el.Animators()[0].Scope() != ScopeInit {
		t.Fatal("expected one init-scope animator")
	}
	if el.Style[StyleOpacity] != 0.0 {
		t.Errorf("opacity = %v, want start value 0", el.Style[StyleOpacity])
	}
	tick(el, 2, 0.5)
	if el.Style[StyleOpacity] != 1.0 {
		t.Errorf("opacity = %v, want 1", el.Style[StyleOpacity])
	}
}

func TestUpdatePropsDisabledAssigns(t *testing.T) {
	el := NewGroup("el")
	el.AnimateTo(PropSet{Transform: TransformProps{KeyY: 9}}, AnimateConfig{Duration: 1})

	calls := 0
	UpdateProps(el, PropSet{Transform: TransformProps{KeyX: 3}}, nil, AnimateOpts{
		During: func(p float64) {
			if p != 1 {
				t.Errorf("During percent = %v, want 1", p)
			}
			calls++
		},
		Done: func() { calls++ },
	})
	if el.X != 3 {
		t.Errorf("X = %v, want 3", el.X)
	}
	if calls != 2 {
		t.Errorf("callbacks = %d, want During and Done once each", calls)
	}
	if len(el.Animators()) != 0 {
		t.Error("snapping should stop every running animator")
	}
}

func TestIdempotentSnap(t *testing.T) {
	el := NewPath("p", nil, ColorWhite)
	snap := linearAnimation(0)
	UpdateProps(el, PropSet{Transform: TransformProps{KeyX: 10}, Style: Props{StyleOpacity: 0.2}}, snap, AnimateOpts{})
	UpdateProps(el, PropSet{Transform: TransformProps{KeyX: -4}, Style: Props{StyleOpacity: 0.7}}, snap, AnimateOpts{})
	if el.X != -4 || el.Style[StyleOpacity] != 0.7 {
		t.Errorf("got X=%v opacity=%v, want the second target", el.X, el.Style[StyleOpacity])
	}
	if len(el.Animators()) != 0 {
		t.Error("snapping should leave no animators")
	}
}

// --- RemoveElement ---

func TestRemoveIdempotence(t *testing.T) {
	parent := NewGroup("parent")
	el := NewPath("p", nil, ColorWhite)
	parent.AddChild(el)

	first, second := 0, 0
	RemoveElement(el, PropSet{Style: Props{StyleOpacity: 0.0}}, DefaultSeriesAnimation(), AnimateOpts{
		Done: func() { first++; el.RemoveFromParent() },
	})
	RemoveElement(el, PropSet{Style: Props{StyleOpacity: 0.0}}, DefaultSeriesAnimation(), AnimateOpts{
		Done: func() { second++ },
	})

	removeAnimators := 0
	for _, a := range el.Animators() {
		if a.Scope() == ScopeRemove {
			removeAnimators++
		}
	}
	if removeAnimators != 1 {
		t.Fatalf("remove animators = %d, want 1", removeAnimators)
	}
	if !IsElementRemoved(el) {
		t.Error("IsElementRemoved should be true while removing")
	}
	tick(el, 20, 0.05)
	if first != 1 || second != 0 {
		t.Errorf("first=%d second=%d, want 1 and 0", first, second)
	}
	if el.Parent != nil {
		t.Error("element should be detached")
	}
}

func TestRemoveElementUsesOverride(t *testing.T) {
	el := NewPath("p", nil, ColorWhite)
	RemoveElement(el, PropSet{Style: Props{StyleOpacity: 0.0}}, linearAnimation(5), AnimateOpts{
		RemoveOpt: &AnimationOverride{Duration: ptr(1), Easing: "linear"},
	})
	tick(el, 1, 0.5)
	if op := el.Style[StyleOpacity].(float64); op < 0.49 || op > 0.51 {
		t.Errorf("opacity = %v, want ~0.5 with the override duration", op)
	}
}

func TestReuseAfterRemoveRequest(t *testing.T) {
	parent := NewGroup("parent")
	el := NewPath("p", nil, ColorWhite)
	parent.AddChild(el)

	RemoveElement(el, PropSet{Style: Props{StyleOpacity: 0.0}}, DefaultSeriesAnimation(), AnimateOpts{
		Done: func() { el.RemoveFromParent() },
	})
	tick(el, 1, 0.05)

	updated := false
	UpdateProps(el, PropSet{Transform: TransformProps{KeyX: 30}}, DefaultSeriesAnimation(), AnimateOpts{
		Done: func() { updated = true },
	})
	if el.hasScope(ScopeRemove) {
		t.Fatal("remove animator should be stopped")
	}
	tick(el, 40, 0.05)
	if el.Parent != parent {
		t.Error("element should not be detached")
	}
	if !updated {
		t.Error("update animation should complete")
	}
	assertNear(t, "X", el.X, 30)
}

func TestRemoveElementWithFadeOutGroup(t *testing.T) {
	root := NewGroup("root")
	g := NewGroup("g")
	a := NewPath("a", nil, ColorWhite)
	b := NewPath("b", nil, ColorWhite)
	root.AddChild(g)
	g.AddChild(a)
	g.AddChild(b)

	RemoveElementWithFadeOut(g, DefaultSeriesAnimation(), 0)
	if g.Parent == nil {
		t.Fatal("group should stay attached while fading")
	}
	for i := 0; i < 10; i++ {
		a.Update(0.05)
		b.Update(0.05)
	}
	if g.Parent != nil {
		t.Error("group should be detached after the fade")
	}
	if a.Style[StyleOpacity] != 0.0 {
		t.Errorf("a opacity = %v, want 0", a.Style[StyleOpacity])
	}
}

func TestRemoveElementWithFadeOutEmptyGroup(t *testing.T) {
	root := NewGroup("root")
	g := NewGroup("g")
	root.AddChild(g)
	RemoveElementWithFadeOut(g, DefaultSeriesAnimation(), 0)
	if g.Parent != nil {
		t.Error("an empty group should be detached at once")
	}
}

// --- Single driver under random call sequences ---

func TestNoOrphanedDrivers(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := linearAnimation(0.4)
	props := []PropSet{
		{Transform: TransformProps{KeyX: 10}},
		{Transform: TransformProps{KeyX: 20, KeyY: 5}},
		{Style: Props{StyleOpacity: 0.3}},
		{Transform: TransformProps{KeyY: -3}, Style: Props{StyleOpacity: 0.9, StyleFill: Color{0, 0, 1, 1}}},
	}

	for run := 0; run < 50; run++ {
		el := NewPath("p", []Vec2{{0, 0}, {1, 0}, {1, 1}}, ColorWhite)
		for step := 0; step < 30; step++ {
			ps := props[rng.Intn(len(props))]
			switch rng.Intn(3) {
			case 0:
				InitProps(el, ps, cfg, AnimateOpts{})
			case 1:
				UpdateProps(el, ps, cfg, AnimateOpts{})
			default:
				RemoveElement(el, ps, cfg, AnimateOpts{})
			}
			if err := singleDriver(el); err != "" {
				t.Fatalf("run %d step %d: %s", run, step, err)
			}
			el.Update(float32(rng.Intn(3)) * 0.1)
			if err := singleDriver(el); err != "" {
				t.Fatalf("run %d step %d after tick: %s", run, step, err)
			}
		}
	}
}

func singleDriver(el *Node) string {
	seen := make(map[propKey]bool)
	for _, a := range el.Animators() {
		if a.Done {
			continue
		}
		for _, k := range a.keys() {
			if seen[k] {
				return k.ns.String() + "." + k.key + " has two drivers"
			}
			seen[k] = true
		}
	}
	return ""
}
