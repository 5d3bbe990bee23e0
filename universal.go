package sway

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// TransitionSeries is one side of a series transition. Dim, when set,
// replaces the series' group-id dimension.
type TransitionSeries struct {
	Data *SeriesData
	Dim  string
}

// SeriesFinder selects a series by ID or by index.
type SeriesFinder struct {
	SeriesID    string
	SeriesIndex *int
	// Dimension overrides the group-id dimension of the found series.
	Dimension string
}

func (f SeriesFinder) find(series []*SeriesData) int {
	for i, s := range series {
		if f.SeriesIndex != nil && *f.SeriesIndex == s.SeriesIndex {
			return i
		}
		if f.SeriesID != "" && f.SeriesID == s.SeriesID {
			return i
		}
	}
	return -1
}

// SeriesTransition explicitly pairs an old series with a new one.
type SeriesTransition struct {
	From SeriesFinder
	To   SeriesFinder
}

// UpdateParams describes a data replacement: the series before and after,
// and optional explicit pairings that replace series-key matching.
type UpdateParams struct {
	OldSeries        []*SeriesData
	NewSeries        []*SeriesData
	SeriesTransition []SeriesTransition
}

// TransitionEvent reports one relation the Transitioner acted on.
type TransitionEvent struct {
	Kind RelationKind
	Old  []*Node
	New  []*Node
	// FadeIn is set when no old element existed and the new ones faded in
	// instead of morphing.
	FadeIn bool
}

// EventSink receives a TransitionEvent for every relation a Transitioner
// animates.
type EventSink interface {
	OnTransition(ev TransitionEvent)
}

// Transitioner matches old and new series items by group key and morphs the
// old elements into the new ones. It holds no per-run state and may be
// reused for any number of data replacements.
type Transitioner struct {
	morpher Morpher
	sink    EventSink
	logger  *log.Logger
}

// TransitionerOption configures a Transitioner.
type TransitionerOption func(*Transitioner)

// WithMorpher replaces the default PolygonMorpher.
func WithMorpher(m Morpher) TransitionerOption {
	return func(t *Transitioner) { t.morpher = m }
}

// WithEventSink reports every animated relation to sink.
func WithEventSink(sink EventSink) TransitionerOption {
	return func(t *Transitioner) { t.sink = sink }
}

// WithLogger logs matched series batches and relations at debug level.
func WithLogger(l *log.Logger) TransitionerOption {
	return func(t *Transitioner) { t.logger = l }
}

// NewTransitioner creates a Transitioner.
func NewTransitioner(opts ...TransitionerOption) *Transitioner {
	t := &Transitioner{morpher: PolygonMorpher{}}
	for _, o := range opts {
		o(t)
	}
	return t
}

// OnDataReplaced runs the universal transition for one data replacement.
// Explicit series transitions are used when given; otherwise series are
// paired by their universal transition series key.
func (t *Transitioner) OnDataReplaced(p UpdateParams) {
	if len(p.OldSeries) == 0 || len(p.NewSeries) == 0 {
		return
	}
	if len(p.SeriesTransition) > 0 {
		for _, st := range p.SeriesTransition {
			from := st.From.find(p.OldSeries)
			to := st.To.find(p.NewSeries)
			if from < 0 || to < 0 {
				continue
			}
			t.TransitionBetween(
				[]TransitionSeries{{Data: p.OldSeries[from], Dim: st.From.Dimension}},
				[]TransitionSeries{{Data: p.NewSeries[to], Dim: st.To.Dimension}},
			)
		}
		return
	}
	for _, b := range findSeriesBatches(p) {
		t.debugf("series batch %q: %d old, %d new", b.key, len(b.old), len(b.new))
		t.TransitionBetween(b.old, b.new)
	}
}

func (t *Transitioner) debugf(format string, args ...any) {
	if t.logger != nil {
		t.logger.Debugf(format, args...)
	}
}

// seriesBatch is a set of old series transitioning into a set of new ones.
type seriesBatch struct {
	key      string
	old, new []TransitionSeries
}

// seriesKey returns the transition key of s and whether it names several
// series. Several keys are order independent.
func seriesKey(s *SeriesData) (string, []string) {
	keys := s.UniversalTransition.SeriesKey
	switch len(keys) {
	case 0:
		return s.SeriesID, nil
	case 1:
		return keys[0], nil
	}
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return strings.Join(sorted, ","), keys
}

// findSeriesBatches pairs series across a replacement. A new series with the
// same key as an old one transitions from it. A new series with several keys
// merges the old series named by them; several new series whose keys are
// members of one old series' key set split it.
func findSeriesBatches(p UpdateParams) []*seriesBatch {
	var order []*seriesBatch
	batches := make(map[string]*seriesBatch)
	set := func(key string, b *seriesBatch) {
		if _, ok := batches[key]; !ok {
			order = append(order, b)
		} else {
			for i, o := range order {
				if o.key == key {
					order[i] = b
				}
			}
		}
		batches[key] = b
	}

	type splitSource struct {
		key  string
		data *SeriesData
	}
	oldByKey := make(map[string]*SeriesData)
	oldForSplit := make(map[string]splitSource)
	for _, s := range p.OldSeries {
		key, members := seriesKey(s)
		oldByKey[key] = s
		for _, m := range members {
			oldForSplit[m] = splitSource{key: key, data: s}
		}
	}

	for _, s := range p.NewSeries {
		if !s.UniversalTransition.Enabled {
			continue
		}
		key, members := seriesKey(s)
		if old, ok := oldByKey[key]; ok {
			set(key, &seriesBatch{
				key: key,
				old: []TransitionSeries{{Data: old}},
				new: []TransitionSeries{{Data: s}},
			})
			continue
		}
		if members != nil {
			var olds []TransitionSeries
			for _, m := range members {
				if old, ok := oldByKey[m]; ok {
					olds = append(olds, TransitionSeries{Data: old})
				}
			}
			if len(olds) > 0 {
				set(key, &seriesBatch{key: key, old: olds, new: []TransitionSeries{{Data: s}}})
			}
			continue
		}
		if src, ok := oldForSplit[key]; ok {
			b := batches[src.key]
			if b == nil {
				b = &seriesBatch{key: src.key, old: []TransitionSeries{{Data: src.data}}}
				set(src.key, b)
			}
			b.new = append(b.new, TransitionSeries{Data: s})
		}
	}
	return order
}

// diffItem addresses one item of a flattened series list.
type diffItem struct {
	data  *SeriesData
	dim   string
	index int
}

func (d diffItem) element() *Node {
	return d.data.ItemElement(d.index)
}

func flattenDiffItems(list []TransitionSeries) []diffItem {
	var items []diffItem
	for _, s := range list {
		dim := s.Dim
		if dim == "" {
			dim = s.Data.GroupIDDimension
		}
		for i := 0; i < s.Data.Len(); i++ {
			items = append(items, diffItem{data: s.Data, dim: dim, index: i})
		}
	}
	return items
}

func findKeyDim(items []diffItem) string {
	for _, it := range items {
		if it.dim != "" {
			return it.dim
		}
	}
	return ""
}

// TransitionBetween matches the items of the old series with those of the
// new ones by group key and animates every match: the new elements morph
// from the old ones, which are detached at once. New elements without an old
// counterpart fade in; old elements without a new one are left to their own
// leave animation.
func (t *Transitioner) TransitionBetween(oldList, newList []TransitionSeries) {
	oldItems := flattenDiffItems(oldList)
	newItems := flattenDiffItems(newList)

	oldKeyDim := findKeyDim(oldItems)
	newKeyDim := findKeyDim(newItems)
	keyGetter := func(items []diffItem, own, other string) func(int) string {
		dim := own
		if dim == "" {
			dim = other
		}
		return func(i int) string {
			it := items[i]
			return it.data.groupKey(it.index, dim)
		}
	}

	run := transitionRun{t: t, oldItems: oldItems, newItems: newItems}
	NewDataDiffer(
		len(oldItems), len(newItems),
		keyGetter(oldItems, oldKeyDim, newKeyDim),
		keyGetter(newItems, newKeyDim, oldKeyDim),
		DiffMultiple,
	).
		OnUpdate(run.updateOneToOne).
		OnUpdateManyToOne(run.updateManyToOne).
		OnUpdateOneToMany(run.updateOneToMany).
		OnUpdateManyToMany(run.updateManyToMany).
		Execute()
}

// transitionRun is the state of one TransitionBetween call.
type transitionRun struct {
	t        *Transitioner
	oldItems []diffItem
	newItems []diffItem
}

func (r *transitionRun) morph(from, to MorphSide, series *SeriesData, dataIndex int) {
	ut := series.UniversalTransition
	ApplyMorphAnimation(from, to, MorphOptions{
		DivideShape: ut.DivideShape,
		Animation:   series.Animation,
		DataIndex:   dataIndex,
		Delay:       ut.Delay,
		Morpher:     r.t.morpher,
	})
}

func (r *transitionRun) emit(ev TransitionEvent) {
	r.t.debugf("%s: %d old, %d new, fade-in %t", ev.Kind, len(ev.Old), len(ev.New), ev.FadeIn)
	if r.t.sink != nil {
		r.t.sink.OnTransition(ev)
	}
}

func (r *transitionRun) updateOneToOne(newIndex, oldIndex int) {
	oldItem := r.oldItems[oldIndex]
	newItem := r.newItems[newIndex]
	oldEl := oldItem.element()
	newEl := newItem.element()
	if oldEl == newEl || newEl == nil {
		return
	}
	stopAnimation(newEl)
	if oldEl == nil {
		fadeInElement(newEl, newItem.data, newItem.index)
		r.emit(TransitionEvent{Kind: RelationUpdate, New: []*Node{newEl}, FadeIn: true})
		return
	}
	stopAnimation(oldEl)
	removeEl(oldEl)
	r.morph(SingleSide(PathsOf(oldEl)), SingleSide(PathsOf(newEl)), newItem.data, newItem.index)
	r.emit(TransitionEvent{Kind: RelationUpdate, Old: []*Node{oldEl}, New: []*Node{newEl}})
}

func (r *transitionRun) updateManyToOne(newIndex int, oldIndices []int) {
	newItem := r.newItems[newIndex]
	newEl := newItem.element()
	if newEl == nil {
		return
	}
	var oldEls []*Node
	for _, i := range oldIndices {
		if el := r.oldItems[i].element(); el != nil && el != newEl {
			oldEls = append(oldEls, el)
		}
	}
	stopAnimation(newEl)
	if len(oldEls) == 0 {
		fadeInElement(newEl, newItem.data, newItem.index)
		r.emit(TransitionEvent{Kind: RelationManyToOne, New: []*Node{newEl}, FadeIn: true})
		return
	}
	for _, el := range oldEls {
		stopAnimation(el)
		removeEl(el)
	}
	r.morph(PluralSide(PathsOfAll(oldEls)), SingleSide(PathsOf(newEl)), newItem.data, newItem.index)
	r.emit(TransitionEvent{Kind: RelationManyToOne, Old: oldEls, New: []*Node{newEl}})
}

func (r *transitionRun) updateOneToMany(newIndices []int, oldIndex int) {
	oldEl := r.oldItems[oldIndex].element()
	var newEls []*Node
	for _, i := range newIndices {
		if el := r.newItems[i].element(); el != nil && el != oldEl {
			newEls = append(newEls, el)
		}
	}
	if len(newEls) == 0 {
		return
	}
	first := r.newItems[newIndices[0]]
	series := first.data
	for _, el := range newEls {
		stopAnimation(el)
	}
	if oldEl == nil {
		for _, el := range newEls {
			fadeInElement(el, series, first.index)
		}
		r.emit(TransitionEvent{Kind: RelationOneToMany, New: newEls, FadeIn: true})
		return
	}
	stopAnimation(oldEl)
	removeEl(oldEl)
	r.morph(SingleSide(PathsOf(oldEl)), PluralSide(PathsOfAll(newEls)), series, first.index)
	r.emit(TransitionEvent{Kind: RelationOneToMany, Old: []*Node{oldEl}, New: newEls})
}

// updateManyToMany resolves a key shared on both sides by item identity.
func (r *transitionRun) updateManyToMany(newIndices, oldIndices []int) {
	NewDataDiffer(
		len(oldIndices), len(newIndices),
		func(i int) string {
			it := r.oldItems[oldIndices[i]]
			return it.data.ItemID(it.index)
		},
		func(i int) string {
			it := r.newItems[newIndices[i]]
			return it.data.ItemID(it.index)
		},
		DiffOneToOne,
	).OnUpdate(func(newIndex, oldIndex int) {
		r.updateOneToOne(newIndices[newIndex], oldIndices[oldIndex])
	}).Execute()
}

// stopAnimation stops every animator on el and its descendants.
func stopAnimation(el *Node) {
	el.StopAnimationDeep()
}

// removeEl detaches el immediately, keeping its on-screen placement so its
// paths can still serve as morph sources.
func removeEl(el *Node) {
	if el.Parent == nil {
		return
	}
	el.bakeTransform()
	el.Parent.RemoveChild(el)
}

// fadeInElement fades in every path under el.
func fadeInElement(el *Node, series *SeriesData, dataIndex int) {
	el.Traverse(func(n *Node) {
		if n.Kind != KindPath {
			return
		}
		InitProps(n, PropSet{Style: Props{StyleOpacity: 0.0}}, series.Animation, AnimateOpts{
			DataIndex: dataIndex,
			IsFrom:    true,
		})
	})
}
