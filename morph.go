package sway

// PathList is the morphable paths found under one element, in traversal
// order.
type PathList []*Node

// PathsOf collects the visible, non-ignored path nodes under el that have not
// opted out of morphing. A path el yields itself.
func PathsOf(el *Node) PathList {
	if el == nil {
		return nil
	}
	var out PathList
	el.Traverse(func(n *Node) {
		if n.Kind == KindPath && !n.DisableMorphing && !n.Invisible && !n.Ignore {
			out = append(out, n)
		}
	})
	return out
}

// PathsOfAll collects one PathList per element.
func PathsOfAll(els []*Node) []PathList {
	out := make([]PathList, 0, len(els))
	for _, el := range els {
		out = append(out, PathsOf(el))
	}
	return out
}

// MorphSide is one side of a morph: either the paths of a single element or
// one path list per element of a plural side.
type MorphSide struct {
	Paths  PathList
	Groups []PathList
	plural bool
}

// SingleSide wraps the paths of one element.
func SingleSide(paths PathList) MorphSide {
	return MorphSide{Paths: paths}
}

// PluralSide wraps the path lists of several elements.
func PluralSide(groups []PathList) MorphSide {
	return MorphSide{Groups: groups, plural: true}
}

// IsPlural reports whether the side came from several elements.
func (s MorphSide) IsPlural() bool {
	return s.plural
}

// Len is the number of paths of a single side or of groups of a plural side.
func (s MorphSide) Len() int {
	if s.plural {
		return len(s.Groups)
	}
	return len(s.Paths)
}

// MorphBatch pairs one path of the singular side with the plural-side paths
// it merges from or splits into.
type MorphBatch struct {
	One  *Node
	Many []*Node
}

// PrepareMorphBatches seeds one batch per path of one and deals each list of
// many round-robin across them, every list starting again at the first
// batch. Empty batches are then refilled, last to first, with the back half
// (rounded down) of a donor batch holding more than one path. Donors are taken in order from the front; when the current
// donor cannot give, the scan restarts at the first batch, and stops for
// good when that one cannot give either.
//
// The total number of many paths across all batches always equals the input
// total.
func PrepareMorphBatches(one []*Node, many []PathList) []MorphBatch {
	batchCount := len(one)
	if batchCount == 0 {
		return nil
	}
	batches := make([]MorphBatch, batchCount)
	for i, p := range one {
		batches[i].One = p
	}

	for _, list := range many {
		for k, p := range list {
			b := &batches[k%batchCount]
			b.Many = append(b.Many, p)
		}
	}

	off := 0
	for i := batchCount - 1; i >= 0; i-- {
		if len(batches[i].Many) > 0 {
			continue
		}
		if off >= batchCount {
			off = 0
		}
		if len(batches[off].Many) <= 1 {
			if off == 0 {
				return batches
			}
			off = 0
			if len(batches[0].Many) <= 1 {
				return batches
			}
		}
		src := batches[off].Many
		keep := (len(src) + 1) / 2
		batches[i].Many = append([]*Node(nil), src[keep:]...)
		batches[off].Many = src[:keep:keep]
		off++
	}
	return batches
}

// MorphOptions configures ApplyMorphAnimation.
type MorphOptions struct {
	DivideShape DivideShape
	// Animation supplies the update timings; nothing morphs when it is nil,
	// disabled or resolves to a zero duration.
	Animation AnimatableConfig
	DataIndex int
	// Delay staggers individual morphs; receives the morph index and count.
	Delay func(index, count int) float64
	// Morpher defaults to PolygonMorpher.
	Morpher Morpher
	// AnimateOtherProps animates what the morph primitive does not (style,
	// transform) on each individual pair. Defaults to animating the style of
	// the target individual from the raw source style.
	AnimateOtherProps func(fromInd, toInd, rawFrom, rawTo *Node, cfg AnimateConfig)
}

// ApplyMorphAnimation morphs the paths of from into those of to. When one
// side is plural it is the many side of the batches; otherwise the side with
// strictly more paths is. Does nothing when either side is empty.
func ApplyMorphAnimation(from, to MorphSide, opts MorphOptions) {
	if from.Len() == 0 || to.Len() == 0 {
		return
	}
	ac, ok := GetAnimationConfig(AnimationUpdate, opts.Animation, opts.DataIndex, nil)
	if !ok || ac.Duration <= 0 {
		return
	}
	ac.SetToFinal = true

	r := morphRun{
		cfg:     ac,
		divide:  opts.DivideShape,
		delay:   opts.Delay,
		morpher: opts.Morpher,
		other:   opts.AnimateOtherProps,
	}
	if r.morpher == nil {
		r.morpher = PolygonMorpher{}
	}
	if r.other == nil {
		r.other = updateMorphingPathProps
	}

	var batches []MorphBatch
	var fromIsMany bool
	switch {
	case from.IsPlural():
		fromIsMany = true
		batches = PrepareMorphBatches(to.Paths, from.Groups)
	case to.IsPlural():
		batches = PrepareMorphBatches(from.Paths, to.Groups)
	default:
		fromIsMany = len(from.Paths) > len(to.Paths)
		if fromIsMany {
			batches = PrepareMorphBatches(to.Paths, []PathList{from.Paths})
		} else {
			batches = PrepareMorphBatches(from.Paths, []PathList{to.Paths})
		}
	}

	count := 0
	for _, b := range batches {
		count += len(b.Many)
	}
	index := 0
	for _, b := range batches {
		r.batch(b, fromIsMany, index, count, false)
		index += len(b.Many)
	}
}

type morphRun struct {
	cfg     AnimateConfig
	divide  DivideShape
	delay   func(index, count int) float64
	morpher Morpher
	other   func(fromInd, toInd, rawFrom, rawTo *Node, cfg AnimateConfig)
}

// individual returns the config of the index-th of count morphs.
func (r *morphRun) individual(index, count int) AnimateConfig {
	cfg := r.cfg
	if r.delay != nil {
		cfg.Delay = r.delay(index, count)
	}
	return cfg
}

func (r *morphRun) batch(b MorphBatch, fromIsMany bool, index, count int, forceManyOne bool) {
	if len(b.Many) == 1 && !forceManyOne {
		from, to := b.One, b.Many[0]
		if fromIsMany {
			from, to = b.Many[0], b.One
		}
		if r.morpher.IsCombineMorphing(from) {
			// Keep combining from the parts already in flight.
			r.batch(MorphBatch{One: to, Many: []*Node{from}}, true, index, count, true)
			return
		}
		cfg := r.individual(index, count)
		r.morpher.MorphPath(from, to, cfg)
		r.other(from, to, from, to, cfg)
		return
	}

	mc := MorphConfig{AnimateConfig: r.cfg, DivideShape: r.divide}
	if r.delay != nil {
		mc.IndividualDelay = func(i, n int) float64 {
			return r.delay(i+index, count)
		}
	}
	var res MorphResult
	if fromIsMany {
		res = r.morpher.CombineMorph(b.Many, b.One, mc)
	} else {
		res = r.morpher.SeparateMorph(b.One, b.Many, mc)
	}

	n := len(res.FromIndividuals)
	if len(res.ToIndividuals) < n {
		n = len(res.ToIndividuals)
	}
	for k := 0; k < n; k++ {
		raw := b.One
		if len(b.Many) > 0 {
			raw = b.Many[min(k, len(b.Many)-1)]
		}
		rawFrom, rawTo := b.One, raw
		if fromIsMany {
			rawFrom, rawTo = raw, b.One
		}
		r.other(res.FromIndividuals[k], res.ToIndividuals[k], rawFrom, rawTo, r.individual(k, n))
	}
}

// updateMorphingPathProps animates the style of the target individual from
// the raw source style, preferring the one saved by SaveOldStyle.
func updateMorphingPathProps(_, toInd, rawFrom, _ *Node, cfg AnimateConfig) {
	style := rawFrom.OldStyle()
	if style == nil {
		style = rawFrom.Style
	}
	if style == nil {
		return
	}
	toInd.AnimateFrom(PropSet{Style: style.Clone()}, cfg)
}
