package sway

import "math"

// MorphConfig is the animation config handed to CombineMorph and
// SeparateMorph.
type MorphConfig struct {
	AnimateConfig
	DivideShape DivideShape
	// IndividualDelay, when set, gives the delay of the index-th of count
	// individual morphs.
	IndividualDelay func(index, count int) float64
}

func (c MorphConfig) individual(index, count int) AnimateConfig {
	ac := c.AnimateConfig
	if c.IndividualDelay != nil {
		ac.Delay = c.IndividualDelay(index, count)
	}
	return ac
}

// MorphResult pairs the transitional sources and targets a combine or
// separate morph animates between. The slices have equal length.
type MorphResult struct {
	FromIndividuals []*Node
	ToIndividuals   []*Node
}

// Morpher computes in-between shapes. Implementations animate the shape
// namespace only; ApplyMorphAnimation animates the rest.
type Morpher interface {
	// MorphPath animates the shape of to from the shape of from.
	MorphPath(from, to *Node, cfg AnimateConfig)
	// CombineMorph merges many into one.
	CombineMorph(many []*Node, one *Node, cfg MorphConfig) MorphResult
	// SeparateMorph splits one into many.
	SeparateMorph(one *Node, many []*Node, cfg MorphConfig) MorphResult
	// IsCombineMorphing reports whether p is in the middle of a combine.
	IsCombineMorphing(p *Node) bool
}

// morphState holds the transient parts a path is drawn as while it combines
// several sources. The parts are not in the tree; the owner ticks them.
type morphState struct {
	parts     []*Node
	combining bool
}

// update ticks the parts and drops the state once none is animating.
func (m *morphState) update(n *Node, dt float32) {
	active := false
	for _, p := range m.parts {
		p.Update(dt)
		if len(p.animators) > 0 {
			active = true
		}
	}
	if !active {
		n.morph = nil
		n.MarkShapeDirty()
	}
}

// MorphParts returns the transient parts n is drawn as while it combines, or
// nil. Their points are in the local space of n.
func (n *Node) MorphParts() []*Node {
	if n.morph == nil {
		return nil
	}
	return n.morph.parts
}

// PolygonMorpher morphs the "points" outline of path nodes. Outlines with
// different vertex counts are resampled by arc length to a common count.
type PolygonMorpher struct{}

var _ Morpher = PolygonMorpher{}

// MorphPath implements Morpher.
func (PolygonMorpher) MorphPath(from, to *Node, cfg AnimateConfig) {
	morphPoints(mapPoints(from.Points(), from, to), to, cfg)
}

// IsCombineMorphing implements Morpher.
func (PolygonMorpher) IsCombineMorphing(p *Node) bool {
	return p != nil && p.morph != nil && p.morph.combining
}

// CombineMorph divides one into a part per source and morphs every part from
// its source. While the parts animate, one is drawn as its parts. A source
// that is itself combining contributes its own parts.
func (pm PolygonMorpher) CombineMorph(many []*Node, one *Node, cfg MorphConfig) MorphResult {
	type source struct {
		node  *Node
		space *Node
	}
	var sources []source
	for _, m := range many {
		if pm.IsCombineMorphing(m) {
			for _, p := range m.morph.parts {
				sources = append(sources, source{p, m})
			}
			continue
		}
		sources = append(sources, source{m, m})
	}
	if len(sources) == 0 {
		return MorphResult{}
	}

	parts := divideShape(one, len(sources), cfg.DivideShape)
	res := MorphResult{
		FromIndividuals: make([]*Node, len(sources)),
		ToIndividuals:   parts,
	}
	active := false
	for i, s := range sources {
		res.FromIndividuals[i] = s.node
		morphPoints(mapPoints(s.node.Points(), s.space, one), parts[i], cfg.individual(i, len(sources)))
		if len(parts[i].animators) > 0 {
			active = true
		}
	}
	if active {
		one.morph = &morphState{parts: parts, combining: true}
		one.MarkShapeDirty()
	}
	return res
}

// SeparateMorph divides one into a part per target and morphs every target
// from its part.
func (PolygonMorpher) SeparateMorph(one *Node, many []*Node, cfg MorphConfig) MorphResult {
	if len(many) == 0 {
		return MorphResult{}
	}
	parts := divideShape(one, len(many), cfg.DivideShape)
	for i, m := range many {
		morphPoints(mapPoints(parts[i].Points(), one, m), m, cfg.individual(i, len(many)))
	}
	return MorphResult{
		FromIndividuals: parts,
		ToIndividuals:   append([]*Node(nil), many...),
	}
}

// morphPoints animates the outline of to from src, given in the local space
// of to. The original outline is restored when the morph completes.
func morphPoints(src []Vec2, to *Node, cfg AnimateConfig) {
	orig := to.Points()
	if len(src) == 0 || len(orig) == 0 {
		return
	}
	dst := orig
	if len(src) != len(orig) {
		n := max(len(src), len(orig))
		src = resamplePolygon(src, n)
		dst = resamplePolygon(orig, n)
	}
	to.setProp(propKey{NamespaceShape, ShapePoints}, dst)

	ac := cfg
	ac.Scope = ScopeMorph
	ac.SetToFinal = false
	done := cfg.Done
	ac.Done = func() {
		if len(dst) != len(orig) {
			to.setProp(propKey{NamespaceShape, ShapePoints}, append([]Vec2(nil), orig...))
		}
		if done != nil {
			done()
		}
	}
	to.AnimateFrom(PropSet{Shape: Props{ShapePoints: src}}, ac)
}

// resamplePolygon returns n points spaced evenly along the closed outline of
// pts, starting at pts[0].
func resamplePolygon(pts []Vec2, n int) []Vec2 {
	out := make([]Vec2, n)
	if n == 0 || len(pts) == 0 {
		return out
	}
	m := len(pts)
	seg := make([]float64, m)
	total := 0.0
	for i := range pts {
		a, b := pts[i], pts[(i+1)%m]
		seg[i] = math.Hypot(b.X-a.X, b.Y-a.Y)
		total += seg[i]
	}
	if total == 0 {
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}
	step := total / float64(n)
	j, acc := 0, 0.0
	for i := range out {
		d := step * float64(i)
		for j < m-1 && acc+seg[j] < d {
			acc += seg[j]
			j++
		}
		a, b := pts[j], pts[(j+1)%m]
		t := 0.0
		if seg[j] > 0 {
			t = (d - acc) / seg[j]
		}
		out[i] = Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
	}
	return out
}

// divideShape cuts p into count detached copies. Clone keeps the whole
// outline on each copy with an opacity that stacks back to the original;
// split cuts the outline into equal vertical strips of its bounds.
func divideShape(p *Node, count int, mode DivideShape) []*Node {
	pts := p.Points()
	out := make([]*Node, count)

	opacity := 1.0
	if v, ok := p.Style[StyleOpacity].(float64); ok {
		opacity = v
	}

	if mode == DivideClone {
		approx := 1 - math.Pow(1-opacity, 1/float64(count))
		for i := range out {
			c := clonePath(p, pts)
			c.Style[StyleOpacity] = approx
			out[i] = c
		}
		return out
	}

	b := boundsOf(pts)
	w := b.Width / float64(count)
	for i := range out {
		x0 := b.X + w*float64(i)
		strip := clipPolygonX(pts, x0, x0+w)
		if len(strip) < 3 {
			strip = []Vec2{{x0, b.Y}, {x0 + w, b.Y}, {x0 + w, b.Y + b.Height}, {x0, b.Y + b.Height}}
		}
		out[i] = clonePath(p, strip)
	}
	return out
}

// clonePath returns a detached path with p's transform and style and the
// given outline.
func clonePath(p *Node, pts []Vec2) *Node {
	c := &Node{
		Name:     p.Name,
		Kind:     KindPath,
		X:        p.X,
		Y:        p.Y,
		ScaleX:   p.ScaleX,
		ScaleY:   p.ScaleY,
		OriginX:  p.OriginX,
		OriginY:  p.OriginY,
		Rotation: p.Rotation,
		Shape:    Props{ShapePoints: append([]Vec2(nil), pts...)},
		Style:    p.Style.Clone(),
	}
	c.ID = nextNodeID()
	if c.Style == nil {
		c.Style = Props{}
	}
	return c
}

// clipPolygonX clips a closed polygon to the band minX <= x <= maxX
// (Sutherland-Hodgman against two vertical edges).
func clipPolygonX(pts []Vec2, minX, maxX float64) []Vec2 {
	clip := func(in []Vec2, inside func(Vec2) bool, edgeX float64) []Vec2 {
		if len(in) == 0 {
			return nil
		}
		var out []Vec2
		prev := in[len(in)-1]
		for _, cur := range in {
			curIn, prevIn := inside(cur), inside(prev)
			if curIn != prevIn {
				t := (edgeX - prev.X) / (cur.X - prev.X)
				out = append(out, Vec2{edgeX, prev.Y + (cur.Y-prev.Y)*t})
			}
			if curIn {
				out = append(out, cur)
			}
			prev = cur
		}
		return out
	}
	res := clip(pts, func(v Vec2) bool { return v.X >= minX }, minX)
	return clip(res, func(v Vec2) bool { return v.X <= maxX }, maxX)
}
