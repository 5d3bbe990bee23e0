package sway

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testSeries builds a series with one path element per group key, attached
// under root.
func testSeries(root *Node, id string, groups ...string) *SeriesData {
	s := &SeriesData{
		SeriesID:            id,
		Animation:           linearAnimation(1),
		UniversalTransition: UniversalTransitionOptions{Enabled: true, DivideShape: DivideSplit},
	}
	for i, g := range groups {
		s.Items = append(s.Items, DataItem{ID: fmt.Sprintf("%s-%d", id, i), GroupID: g})
		el := NewPath(fmt.Sprintf("%s%d", id, i), nil, ColorWhite)
		if root != nil {
			root.AddChild(el)
		}
		s.SetItemElement(i, el)
	}
	return s
}

type recordingSink struct {
	events []TransitionEvent
}

func (s *recordingSink) OnTransition(ev TransitionEvent) {
	s.events = append(s.events, ev)
}

func (s *recordingSink) summary() []string {
	var out []string
	for _, ev := range s.events {
		out = append(out, fmt.Sprintf("%s %s->%s fade=%t", ev.Kind, names(ev.Old), names(ev.New), ev.FadeIn))
	}
	return out
}

// --- findSeriesBatches ---

func batchSummary(batches []*seriesBatch) []string {
	ids := func(list []TransitionSeries) string {
		var s []string
		for _, ts := range list {
			s = append(s, ts.Data.SeriesID)
		}
		return strings.Join(s, ",")
	}
	var out []string
	for _, b := range batches {
		out = append(out, fmt.Sprintf("%s: %s => %s", b.key, ids(b.old), ids(b.new)))
	}
	return out
}

func TestFindSeriesBatches(t *testing.T) {
	withKeys := func(s *SeriesData, keys ...string) *SeriesData {
		s.UniversalTransition.SeriesKey = keys
		return s
	}
	tests := []struct {
		name string
		p    UpdateParams
		want []string
	}{
		{
			name: "same series id",
			p: UpdateParams{
				OldSeries: []*SeriesData{testSeries(nil, "s1"), testSeries(nil, "s2")},
				NewSeries: []*SeriesData{testSeries(nil, "s2"), testSeries(nil, "s3")},
			},
			want: []string{"s2: s2 => s2"},
		},
		{
			name: "shared series key",
			p: UpdateParams{
				OldSeries: []*SeriesData{withKeys(testSeries(nil, "old"), "k")},
				NewSeries: []*SeriesData{withKeys(testSeries(nil, "new"), "k")},
			},
			want: []string{"k: old => new"},
		},
		{
			name: "merge",
			p: UpdateParams{
				OldSeries: []*SeriesData{testSeries(nil, "a"), testSeries(nil, "b")},
				NewSeries: []*SeriesData{withKeys(testSeries(nil, "ab"), "b", "a")},
			},
			want: []string{"a,b: b,a => ab"},
		},
		{
			name: "split",
			p: UpdateParams{
				OldSeries: []*SeriesData{withKeys(testSeries(nil, "ab"), "a", "b")},
				NewSeries: []*SeriesData{testSeries(nil, "a"), testSeries(nil, "b")},
			},
			want: []string{"a,b: ab => a,b"},
		},
		{
			name: "disabled new series",
			p: UpdateParams{
				OldSeries: []*SeriesData{testSeries(nil, "s1")},
				NewSeries: []*SeriesData{func() *SeriesData {
					s := testSeries(nil, "s1")
					s.UniversalTransition.Enabled = false
					return s
				}()},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, batchSummary(findSeriesBatches(tt.p))); diff != "" {
				t.Errorf("batches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeriesKeyOrderIndependent(t *testing.T) {
	a := &SeriesData{UniversalTransition: UniversalTransitionOptions{SeriesKey: []string{"y", "x"}}}
	b := &SeriesData{UniversalTransition: UniversalTransitionOptions{SeriesKey: []string{"x", "y"}}}
	ka, _ := seriesKey(a)
	kb, _ := seriesKey(b)
	if ka != kb {
		t.Errorf("keys %q and %q should match", ka, kb)
	}
}

// --- OnDataReplaced ---

func TestOnDataReplacedManyToOne(t *testing.T) {
	root := NewGroup("root")
	oldS := testSeries(root, "s", "a", "a")
	newS := testSeries(root, "s", "a")
	oldEls := []*Node{oldS.ItemElement(0), oldS.ItemElement(1)}

	m := &recordingMorpher{}
	sink := &recordingSink{}
	NewTransitioner(WithMorpher(m), WithEventSink(sink)).OnDataReplaced(UpdateParams{
		OldSeries: []*SeriesData{oldS},
		NewSeries: []*SeriesData{newS},
	})

	if diff := cmp.Diff([]string{"updateManyToOne s0,s1->s0 fade=false"}, sink.summary()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"combine s0,s1->s0"}, m.calls); diff != "" {
		t.Errorf("morph calls mismatch (-want +got):\n%s", diff)
	}
	for _, el := range oldEls {
		if el.Parent != nil {
			t.Errorf("%s should be detached", el.Name)
		}
	}
}

func TestOnDataReplacedDisjointKeys(t *testing.T) {
	root := NewGroup("root")
	sink := &recordingSink{}
	m := &recordingMorpher{}
	NewTransitioner(WithMorpher(m), WithEventSink(sink)).OnDataReplaced(UpdateParams{
		OldSeries: []*SeriesData{testSeries(root, "s", "x")},
		NewSeries: []*SeriesData{testSeries(root, "s", "y")},
	})
	if len(sink.events) != 0 || len(m.calls) != 0 {
		t.Errorf("events %v, calls %v: added and removed items are not morphed", sink.summary(), m.calls)
	}
}

func TestOnDataReplacedOneToMany(t *testing.T) {
	root := NewGroup("root")
	m := &recordingMorpher{}
	sink := &recordingSink{}
	NewTransitioner(WithMorpher(m), WithEventSink(sink)).OnDataReplaced(UpdateParams{
		OldSeries: []*SeriesData{testSeries(root, "s", "a")},
		NewSeries: []*SeriesData{testSeries(root, "s", "a", "a", "a")},
	})
	if diff := cmp.Diff([]string{"separate s0->s0,s1,s2"}, m.calls); diff != "" {
		t.Errorf("morph calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"updateOneToMany s0->s0,s1,s2 fade=false"}, sink.summary()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestOnDataReplacedManyToManyPairsByID(t *testing.T) {
	root := NewGroup("root")
	oldS := testSeries(root, "s", "a", "a")
	newS := testSeries(root, "s", "a", "a")
	// Swap identities so pairing must follow ids, not positions.
	newS.Items[0].ID, newS.Items[1].ID = "s-1", "s-0"
	oldEls := []*Node{oldS.ItemElement(0), oldS.ItemElement(1)}
	newEls := []*Node{newS.ItemElement(0), newS.ItemElement(1)}
	oldEls[0].Name, oldEls[1].Name = "old0", "old1"
	newEls[0].Name, newEls[1].Name = "new0", "new1"

	m := &recordingMorpher{}
	NewTransitioner(WithMorpher(m)).OnDataReplaced(UpdateParams{
		OldSeries: []*SeriesData{oldS},
		NewSeries: []*SeriesData{newS},
	})
	if diff := cmp.Diff([]string{"path old0->new1", "path old1->new0"}, m.calls); diff != "" {
		t.Errorf("morph calls mismatch (-want +got):\n%s", diff)
	}
}

func TestOnDataReplacedFadesInWithoutOldElement(t *testing.T) {
	root := NewGroup("root")
	oldS := testSeries(root, "s", "a")
	oldS.SetItemElement(0, nil)
	newS := testSeries(root, "s", "a")
	newEl := newS.ItemElement(0)

	sink := &recordingSink{}
	m := &recordingMorpher{}
	NewTransitioner(WithMorpher(m), WithEventSink(sink)).OnDataReplaced(UpdateParams{
		OldSeries: []*SeriesData{oldS},
		NewSeries: []*SeriesData{newS},
	})
	if diff := cmp.Diff([]string{"update ->s0 fade=true"}, sink.summary()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if len(m.calls) != 0 {
		t.Errorf("calls = %v, nothing to morph from", m.calls)
	}
	if newEl.Style[StyleOpacity] != 0.0 {
		t.Errorf("opacity = %v, want 0 at the start of the fade", newEl.Style[StyleOpacity])
	}
	tick(newEl, 2, 0.5)
	assertNear(t, "opacity", newEl.Style[StyleOpacity].(float64), 1)
}

func TestOnDataReplacedSameElementSkipped(t *testing.T) {
	root := NewGroup("root")
	oldS := testSeries(root, "s", "a")
	newS := testSeries(nil, "s", "a")
	newS.SetItemElement(0, oldS.ItemElement(0))
	m := &recordingMorpher{}
	NewTransitioner(WithMorpher(m)).OnDataReplaced(UpdateParams{
		OldSeries: []*SeriesData{oldS},
		NewSeries: []*SeriesData{newS},
	})
	if len(m.calls) != 0 || oldS.ItemElement(0).Parent != root {
		t.Error("an element reused across snapshots should be left alone")
	}
}

func TestOnDataReplacedExplicitSeriesTransition(t *testing.T) {
	root := NewGroup("root")
	oldS := testSeries(root, "old", "x")
	newS := testSeries(root, "new", "x")
	newS.UniversalTransition.Enabled = false
	idx := 0
	newS.SeriesIndex = idx

	m := &recordingMorpher{}
	NewTransitioner(WithMorpher(m)).OnDataReplaced(UpdateParams{
		OldSeries: []*SeriesData{oldS},
		NewSeries: []*SeriesData{newS},
		SeriesTransition: []SeriesTransition{
			{From: SeriesFinder{SeriesID: "old"}, To: SeriesFinder{SeriesIndex: &idx}},
			{From: SeriesFinder{SeriesID: "missing"}, To: SeriesFinder{SeriesID: "new"}},
		},
	})
	if diff := cmp.Diff([]string{"path old0->new0"}, m.calls); diff != "" {
		t.Errorf("morph calls mismatch (-want +got):\n%s", diff)
	}
}

func TestOnDataReplacedDimensionKey(t *testing.T) {
	root := NewGroup("root")
	oldS := testSeries(root, "s", "", "")
	oldS.Items[0].Values = map[string]any{"region": "north"}
	oldS.Items[1].Values = map[string]any{"region": "south"}
	oldS.GroupIDDimension = "region"
	newS := testSeries(root, "s", "")
	newS.Items[0].Values = map[string]any{"region": "south"}

	m := &recordingMorpher{}
	NewTransitioner(WithMorpher(m)).OnDataReplaced(UpdateParams{
		OldSeries: []*SeriesData{oldS},
		NewSeries: []*SeriesData{newS},
	})
	// The new series has no dimension of its own and borrows the old one.
	if diff := cmp.Diff([]string{"path s1->s0"}, m.calls); diff != "" {
		t.Errorf("morph calls mismatch (-want +got):\n%s", diff)
	}
}

func TestOnDataReplacedEmpty(t *testing.T) {
	m := &recordingMorpher{}
	tr := NewTransitioner(WithMorpher(m))
	tr.OnDataReplaced(UpdateParams{NewSeries: []*SeriesData{testSeries(nil, "s", "a")}})
	tr.OnDataReplaced(UpdateParams{OldSeries: []*SeriesData{testSeries(nil, "s", "a")}})
	if len(m.calls) != 0 {
		t.Errorf("calls = %v, want none", m.calls)
	}
}

func TestTransitionerIsReusable(t *testing.T) {
	tr := NewTransitioner(WithMorpher(&recordingMorpher{}))
	root := NewGroup("root")
	for i := 0; i < 3; i++ {
		sink := &recordingSink{}
		tr.sink = sink
		tr.OnDataReplaced(UpdateParams{
			OldSeries: []*SeriesData{testSeries(root, "s", "a")},
			NewSeries: []*SeriesData{testSeries(root, "s", "a")},
		})
		if len(sink.events) != 1 {
			t.Fatalf("run %d: events = %d, want 1", i, len(sink.events))
		}
	}
}

func TestRemoveElKeepsPlacement(t *testing.T) {
	root := NewGroup("root")
	root.SetPosition(50, 0)
	el := NewPath("p", nil, ColorWhite)
	el.SetPosition(10, 5)
	root.AddChild(el)

	removeEl(el)
	if el.Parent != nil {
		t.Fatal("element should be detached")
	}
	assertNear(t, "X", el.X, 60)
	assertNear(t, "Y", el.Y, 5)
	removeEl(el) // detached: no-op
	assertNear(t, "X", el.X, 60)
}
