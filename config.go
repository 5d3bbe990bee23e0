package sway

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// AnimatableConfig supplies the declared animation timings of a series or
// component. Implementations are plain values; SeriesAnimation is the stock
// one.
type AnimatableConfig interface {
	// AnimationEnabled reports whether anything should animate at all.
	AnimationEnabled() bool
	// AnimationDuration returns the duration in seconds for kind at the
	// given item index.
	AnimationDuration(kind AnimationKind, dataIndex int) float64
	// AnimationEasing returns the easing name for kind.
	AnimationEasing(kind AnimationKind) string
	// AnimationDelay returns the delay in seconds for kind at the given item
	// index.
	AnimationDelay(kind AnimationKind, dataIndex int) float64
	// PayloadAnimation returns an override forced by an interactive
	// operation such as a resize, or nil.
	PayloadAnimation() *AnimationOverride
}

// AnimationOverride replaces individual fields of a resolved animation
// config. Nil pointers and empty strings leave the field alone.
type AnimationOverride struct {
	Duration *float64 `yaml:"duration" toml:"duration" json:"duration,omitempty"`
	Easing   string   `yaml:"easing" toml:"easing" json:"easing,omitempty"`
	Delay    *float64 `yaml:"delay" toml:"delay" json:"delay,omitempty"`
}

// Timing is a constant value or a function of the item index.
type Timing struct {
	Value   float64
	PerItem func(dataIndex int) float64
}

// At resolves the timing for one item.
func (t Timing) At(dataIndex int) float64 {
	if t.PerItem != nil {
		return t.PerItem(dataIndex)
	}
	return t.Value
}

// Seconds returns a constant Timing.
func Seconds(v float64) Timing {
	return Timing{Value: v}
}

// UnmarshalYAML accepts a plain number.
func (t *Timing) UnmarshalYAML(value *yaml.Node) error {
	return value.Decode(&t.Value)
}

// UnmarshalTOML accepts an integer or float.
func (t *Timing) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case float64:
		t.Value = x
	case int64:
		t.Value = float64(x)
	default:
		return fmt.Errorf("timing: unsupported value %v", v)
	}
	return nil
}

// UnmarshalJSON accepts a plain number.
func (t *Timing) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &t.Value)
}

// SeriesAnimation is the declared animation configuration of one series.
// Enter timings apply to init animations, update timings to updates.
type SeriesAnimation struct {
	Enabled        bool               `yaml:"enabled" toml:"enabled" json:"enabled"`
	Duration       Timing             `yaml:"duration" toml:"duration" json:"duration"`
	DurationUpdate Timing             `yaml:"durationUpdate" toml:"durationUpdate" json:"durationUpdate"`
	Easing         string             `yaml:"easing" toml:"easing" json:"easing"`
	EasingUpdate   string             `yaml:"easingUpdate" toml:"easingUpdate" json:"easingUpdate"`
	Delay          Timing             `yaml:"delay" toml:"delay" json:"delay"`
	DelayUpdate    Timing             `yaml:"delayUpdate" toml:"delayUpdate" json:"delayUpdate"`
	Payload        *AnimationOverride `yaml:"payload" toml:"payload" json:"payload,omitempty"`
}

// DefaultSeriesAnimation returns the stock timings: 1s enter, 0.5s update,
// cubicInOut easing, no delay.
func DefaultSeriesAnimation() SeriesAnimation {
	return SeriesAnimation{
		Enabled:        true,
		Duration:       Seconds(1),
		DurationUpdate: Seconds(0.5),
		Easing:         "cubicInOut",
		EasingUpdate:   "cubicInOut",
	}
}

// AnimationEnabled implements AnimatableConfig.
func (s SeriesAnimation) AnimationEnabled() bool {
	return s.Enabled
}

// AnimationDuration implements AnimatableConfig.
func (s SeriesAnimation) AnimationDuration(kind AnimationKind, dataIndex int) float64 {
	if kind == AnimationUpdate {
		return s.DurationUpdate.At(dataIndex)
	}
	return s.Duration.At(dataIndex)
}

// AnimationEasing implements AnimatableConfig.
func (s SeriesAnimation) AnimationEasing(kind AnimationKind) string {
	if kind == AnimationUpdate {
		return s.EasingUpdate
	}
	return s.Easing
}

// AnimationDelay implements AnimatableConfig.
func (s SeriesAnimation) AnimationDelay(kind AnimationKind, dataIndex int) float64 {
	if kind == AnimationUpdate {
		return s.DelayUpdate.At(dataIndex)
	}
	return s.Delay.At(dataIndex)
}

// PayloadAnimation implements AnimatableConfig.
func (s SeriesAnimation) PayloadAnimation() *AnimationOverride {
	return s.Payload
}

// WithPayload returns a copy of s whose payload override is p.
func (s SeriesAnimation) WithPayload(p *AnimationOverride) SeriesAnimation {
	s.Payload = p
	return s
}

// DivideShape selects how one path is divided when it morphs into or out of
// several.
type DivideShape string

const (
	DivideSplit DivideShape = "split" // cut the shape into strips
	DivideClone DivideShape = "clone" // overlay translucent copies
)

// UniversalTransitionOptions configures cross-series morphing for one series.
type UniversalTransitionOptions struct {
	Enabled bool `yaml:"enabled" toml:"enabled" json:"enabled"`
	// SeriesKey pairs series across updates. One key matches the series with
	// the same key; several keys match a merge/split with those series.
	// Empty means the series ID.
	SeriesKey   []string    `yaml:"seriesKey" toml:"seriesKey" json:"seriesKey"`
	DivideShape DivideShape `yaml:"divideShape" toml:"divideShape" json:"divideShape"`
	// Delay staggers individual morphs; receives the morph index and count.
	Delay func(index, count int) float64 `yaml:"-" toml:"-" json:"-"`
}

// Options is the file form of the animation and transition configuration.
type Options struct {
	Animation           SeriesAnimation            `yaml:"animation" toml:"animation" json:"animation"`
	UniversalTransition UniversalTransitionOptions `yaml:"universalTransition" toml:"universalTransition" json:"universalTransition"`
}

// DefaultOptions returns the stock animation timings with universal
// transitions enabled and split division.
func DefaultOptions() Options {
	return Options{
		Animation: DefaultSeriesAnimation(),
		UniversalTransition: UniversalTransitionOptions{
			Enabled:     true,
			DivideShape: DivideSplit,
		},
	}
}

// LoadOptions reads options from a YAML, TOML or JSON file, chosen by
// extension (YAML by default). Fields absent from the file keep the values of
// DefaultOptions.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	return ParseOptions(data, filepath.Ext(path))
}

// ParseOptions decodes options in the format named by ext (".yaml", ".yml",
// ".toml" or ".json").
func ParseOptions(data []byte, ext string) (Options, error) {
	opts := DefaultOptions()
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &opts); err != nil {
			return Options{}, fmt.Errorf("parse options toml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &opts); err != nil {
			return Options{}, fmt.Errorf("parse options json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return Options{}, fmt.Errorf("parse options yaml: %w", err)
		}
	}
	if opts.UniversalTransition.DivideShape == "" {
		opts.UniversalTransition.DivideShape = DivideSplit
	}
	return opts, nil
}
