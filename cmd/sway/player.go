package main

import (
	"github.com/charmbracelet/log"

	"github.com/phanxgames/sway"
)

// player applies scenario frames to a scene one at a time. Matched items
// morph through the Transitioner; unmatched old items fade out and
// unmatched new items fade in.
type player struct {
	scene  *sway.Scene
	tr     *sway.Transitioner
	opts   sway.Options
	sc     *scenario
	logger *log.Logger

	current []*sway.SeriesData
	next    int
	counts  map[sway.RelationKind]int
}

func newPlayer(sc *scenario, opts sway.Options, logger *log.Logger) *player {
	p := &player{
		scene:  sway.NewScene(),
		opts:   opts,
		sc:     sc,
		logger: logger,
		counts: make(map[sway.RelationKind]int),
	}
	p.tr = sway.NewTransitioner(sway.WithEventSink(p), sway.WithLogger(logger))
	return p
}

// OnTransition implements sway.EventSink.
func (p *player) OnTransition(ev sway.TransitionEvent) {
	p.counts[ev.Kind]++
}

// done reports whether every frame has been applied.
func (p *player) done() bool {
	return p.next >= len(p.sc.Frames)
}

// advance applies the next frame.
func (p *player) advance() error {
	frame := p.sc.Frames[p.next]
	series, err := frame.build(p.opts)
	if err != nil {
		return err
	}
	p.next++

	root := p.scene.Root()
	for _, s := range series {
		for i := 0; i < s.Len(); i++ {
			root.AddChild(s.ItemElement(i))
		}
	}

	if p.current == nil {
		for _, s := range series {
			for i := 0; i < s.Len(); i++ {
				fadeIn(s.ItemElement(i), s, i)
			}
		}
		p.current = series
		p.logger.Debug("frame applied", "frame", p.next, "series", len(series))
		return nil
	}

	clear(p.counts)
	p.tr.OnDataReplaced(sway.UpdateParams{
		OldSeries:        p.current,
		NewSeries:        series,
		SeriesTransition: frame.seriesTransitions(),
	})

	// Old elements still attached were not morphed away.
	for _, s := range p.current {
		for i := 0; i < s.Len(); i++ {
			if el := s.ItemElement(i); el.Parent != nil {
				sway.RemoveElementWithFadeOut(el, s.Animation, i)
			}
		}
	}
	// New elements nothing animates yet appear with a fade.
	for _, s := range series {
		for i := 0; i < s.Len(); i++ {
			if el := s.ItemElement(i); len(el.Animators()) == 0 && el.MorphParts() == nil {
				fadeIn(el, s, i)
			}
		}
	}
	p.current = series
	p.logger.Debug("frame applied", "frame", p.next, "series", len(series),
		"update", p.counts[sway.RelationUpdate],
		"manyToOne", p.counts[sway.RelationManyToOne],
		"oneToMany", p.counts[sway.RelationOneToMany])
	return nil
}

func fadeIn(el *sway.Node, s *sway.SeriesData, i int) {
	sway.InitProps(el, sway.PropSet{Style: sway.Props{sway.StyleOpacity: 0.0}}, s.Animation, sway.AnimateOpts{
		DataIndex: i,
		IsFrom:    true,
	})
}

// settle ticks the scene at dt until nothing animates or maxFrames pass.
// It returns the number of ticks.
func (p *player) settle(dt float32, maxFrames int) int {
	n := 0
	for n < maxFrames && p.scene.Animating() {
		p.scene.Update(dt)
		n++
	}
	return n
}
