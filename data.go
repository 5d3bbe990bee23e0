package sway

import (
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// DataItem is one item of a series snapshot.
type DataItem struct {
	ID      string `mapstructure:"id"`
	GroupID string `mapstructure:"groupId"`
	// Values holds the item's dimension values by dimension name.
	Values map[string]any `mapstructure:",remain"`

	element *Node
}

// SeriesData is a snapshot of one logical series: its items, the element
// each item is rendered as, and the series-level transition settings.
type SeriesData struct {
	SeriesID    string
	SeriesIndex int
	// DataGroupID groups every item of the series under one key.
	DataGroupID string
	// GroupIDDimension names the dimension whose value is an item's group
	// key.
	GroupIDDimension string

	Items []DataItem

	Animation           AnimatableConfig
	UniversalTransition UniversalTransitionOptions
}

// Len returns the number of items.
func (s *SeriesData) Len() int {
	return len(s.Items)
}

// ItemElement returns the element item i is rendered as, or nil when it has
// none (filtered or not yet rendered).
func (s *SeriesData) ItemElement(i int) *Node {
	if i < 0 || i >= len(s.Items) {
		return nil
	}
	return s.Items[i].element
}

// SetItemElement records the element item i is rendered as.
func (s *SeriesData) SetItemElement(i int, el *Node) {
	s.Items[i].element = el
}

// ItemID returns the identity of item i, falling back to its index.
func (s *SeriesData) ItemID(i int) string {
	if id := s.Items[i].ID; id != "" {
		return id
	}
	return "e\x00" + strconv.Itoa(i)
}

// Dimension returns the value of dimension dim of item i.
func (s *SeriesData) Dimension(i int, dim string) (any, bool) {
	v, ok := s.Items[i].Values[dim]
	return v, ok
}

// groupKey resolves the key item i is matched by: its own group id, then
// the value of keyDim, then the series group id, then the item identity.
func (s *SeriesData) groupKey(i int, keyDim string) string {
	if g := s.Items[i].GroupID; g != "" {
		return g
	}
	if keyDim != "" {
		if v, ok := s.Dimension(i, keyDim); ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	if s.DataGroupID != "" {
		return s.DataGroupID
	}
	return s.ItemID(i)
}

// DecodeItems converts loosely typed item records (as read from YAML, TOML or
// JSON) into DataItems. "id" and "groupId" may be numbers; every other field
// becomes a dimension value.
func DecodeItems(raw []map[string]any) ([]DataItem, error) {
	items := make([]DataItem, len(raw))
	for i, r := range raw {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &items[i],
		})
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if err := dec.Decode(r); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return items, nil
}
