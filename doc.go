// Package sway plans and runs animated transitions on a retained 2D scene
// graph.
//
// Every visual element is a [Node]: a group, a morphable path, or another
// styled displayable. Nodes carry a transform and three free-form property
// records (shape, style, extra). Animations are property-scoped tweens (via
// [gween]) owned by the node they drive and ticked by [Scene.Update].
//
// # Animating elements
//
// [InitProps], [UpdateProps] and [RemoveElement] decide per call whether to
// tween or to assign directly, from an [AnimatableConfig] such as
// [SeriesAnimation]. Every property has at most one driver: starting an
// animation stops whatever else was driving the same properties, and any
// non-remove animation cancels a pending removal.
//
//	scene := sway.NewScene()
//	bar := sway.NewPath("bar", pts, sway.Color{R: 0.3, G: 0.6, B: 1, A: 1})
//	scene.Root().AddChild(bar)
//
//	cfg := sway.DefaultSeriesAnimation()
//	sway.UpdateProps(bar, sway.PropSet{
//		Transform: sway.TransformProps{sway.KeyY: 40},
//	}, cfg, sway.AnimateOpts{})
//
//	for scene.Animating() {
//		scene.Update(1.0 / 60)
//	}
//
// # Declarative transitions
//
// [ApplyUpdateTransition] applies a [TransitionSpec] to an element: final
// values are assigned at once and the selected properties animate from their
// previous values. [ApplyLeaveTransition] plays the recorded leaveTo values
// before detaching the element. A spec's During callback receives a
// [DuringAPI] bound to the element for that one call.
//
// # Universal transitions
//
// A [Transitioner] matches the items of old and new [SeriesData] by group key
// with a [DataDiffer] and morphs old elements into new ones, merging and
// splitting paths when the counts differ ([PrepareMorphBatches],
// [ApplyMorphAnimation]). Shape interpolation is done by a [Morpher];
// [PolygonMorpher] is the default.
//
// The ebitenhost package runs a scene in an Ebitengine window and the ecs
// module republishes transition events on a [Donburi] world.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package sway
