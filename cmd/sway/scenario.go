package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/sway"
)

// scenario is a sequence of data snapshots played one after another.
type scenario struct {
	Frames []scenarioFrame `yaml:"frames" toml:"frames" json:"frames"`
}

type scenarioFrame struct {
	Series []scenarioSeries `yaml:"series" toml:"series" json:"series"`
	// Transitions pairs series explicitly instead of by series key.
	Transitions []scenarioTransition `yaml:"transitions" toml:"transitions" json:"transitions"`
}

type scenarioSeries struct {
	ID               string           `yaml:"id" toml:"id" json:"id"`
	SeriesKey        []string         `yaml:"seriesKey" toml:"seriesKey" json:"seriesKey"`
	DataGroupID      string           `yaml:"dataGroupId" toml:"dataGroupId" json:"dataGroupId"`
	GroupIDDimension string           `yaml:"groupIdDimension" toml:"groupIdDimension" json:"groupIdDimension"`
	Items            []map[string]any `yaml:"items" toml:"items" json:"items"`
}

type scenarioTransition struct {
	From    string `yaml:"from" toml:"from" json:"from"`
	To      string `yaml:"to" toml:"to" json:"to"`
	FromDim string `yaml:"fromDimension" toml:"fromDimension" json:"fromDimension"`
	ToDim   string `yaml:"toDimension" toml:"toDimension" json:"toDimension"`
}

// loadScenario reads a scenario from a YAML, TOML or JSON file, chosen by
// extension.
func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return parseScenario(data, filepath.Ext(path))
}

func parseScenario(data []byte, ext string) (*scenario, error) {
	var sc scenario
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("parse scenario toml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("parse scenario json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("parse scenario yaml: %w", err)
		}
	}
	if len(sc.Frames) == 0 {
		return nil, fmt.Errorf("scenario has no frames")
	}
	return &sc, nil
}

// build converts the frame's series into SeriesData with one rectangle path
// per item. Items read the dimensions x, y, w, h and an optional "#rrggbb"
// fill.
func (f scenarioFrame) build(opts sway.Options) ([]*sway.SeriesData, error) {
	out := make([]*sway.SeriesData, len(f.Series))
	for si, s := range f.Series {
		items, err := sway.DecodeItems(s.Items)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.ID, err)
		}
		ut := opts.UniversalTransition
		if len(s.SeriesKey) > 0 {
			ut.SeriesKey = s.SeriesKey
		}
		sd := &sway.SeriesData{
			SeriesID:            s.ID,
			SeriesIndex:         si,
			DataGroupID:         s.DataGroupID,
			GroupIDDimension:    s.GroupIDDimension,
			Items:               items,
			Animation:           opts.Animation,
			UniversalTransition: ut,
		}
		for i := range items {
			el, err := itemElement(s.ID, sd, i)
			if err != nil {
				return nil, fmt.Errorf("series %q item %d: %w", s.ID, i, err)
			}
			sd.SetItemElement(i, el)
		}
		out[si] = sd
	}
	return out, nil
}

func (f scenarioFrame) seriesTransitions() []sway.SeriesTransition {
	out := make([]sway.SeriesTransition, len(f.Transitions))
	for i, t := range f.Transitions {
		out[i] = sway.SeriesTransition{
			From: sway.SeriesFinder{SeriesID: t.From, Dimension: t.FromDim},
			To:   sway.SeriesFinder{SeriesID: t.To, Dimension: t.ToDim},
		}
	}
	return out
}

func itemElement(seriesID string, sd *sway.SeriesData, i int) (*sway.Node, error) {
	dim := func(name string) float64 {
		v, _ := sd.Dimension(i, name)
		f, _ := number(v)
		return f
	}
	w, h := dim("w"), dim("h")
	fill := sway.ColorWhite
	if v, ok := sd.Dimension(i, "fill"); ok {
		s, _ := v.(string)
		c, err := parseHexColor(s)
		if err != nil {
			return nil, err
		}
		fill = c
	}
	el := sway.NewPath(seriesID+"/"+sd.ItemID(i), []sway.Vec2{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}, fill)
	el.SetPosition(dim("x"), dim("y"))
	return el, nil
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	return 0, false
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa".
func parseHexColor(s string) (sway.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return sway.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return sway.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return sway.Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
