package sway

// DiffMode selects how a DataDiffer treats items that share a key.
type DiffMode uint8

const (
	// DiffOneToOne pairs items sharing a key in order; extras are added or
	// removed.
	DiffOneToOne DiffMode = iota
	// DiffMultiple reports every group of items sharing a key as one
	// relation, including many-to-one, one-to-many and many-to-many.
	DiffMultiple
)

// RelationKind classifies one outcome of a diff.
type RelationKind uint8

const (
	RelationUpdate RelationKind = iota
	RelationManyToOne
	RelationOneToMany
	RelationManyToMany
	RelationRemove
	RelationAdd
)

func (k RelationKind) String() string {
	switch k {
	case RelationUpdate:
		return "update"
	case RelationManyToOne:
		return "updateManyToOne"
	case RelationOneToMany:
		return "updateOneToMany"
	case RelationManyToMany:
		return "updateManyToMany"
	case RelationRemove:
		return "remove"
	case RelationAdd:
		return "add"
	default:
		return "unknown"
	}
}

// Relation is one classified match between old and new items. Add has no old
// indices and Remove no new ones.
type Relation struct {
	Kind       RelationKind
	NewIndices []int
	OldIndices []int
}

// DataDiffer matches two ordered item sequences by key and reports the
// relations between them. Callbacks are registered with the On methods and
// fired by Execute, bucketed by kind in RelationKind order. Within a bucket,
// relations follow the first appearance of their key in the old sequence;
// adds follow the new sequence.
type DataDiffer struct {
	oldCount, newCount int
	oldKey, newKey     func(index int) string
	mode               DiffMode

	onAdd        func(newIndex int)
	onRemove     func(oldIndex int)
	onUpdate     func(newIndex, oldIndex int)
	onManyToOne  func(newIndex int, oldIndices []int)
	onOneToMany  func(newIndices []int, oldIndex int)
	onManyToMany func(newIndices, oldIndices []int)
}

// NewDataDiffer creates a differ over oldCount old and newCount new items,
// keyed by the given functions.
func NewDataDiffer(oldCount, newCount int, oldKey, newKey func(index int) string, mode DiffMode) *DataDiffer {
	return &DataDiffer{
		oldCount: oldCount,
		newCount: newCount,
		oldKey:   oldKey,
		newKey:   newKey,
		mode:     mode,
	}
}

// OnAdd registers the callback for new items without an old counterpart.
func (d *DataDiffer) OnAdd(fn func(newIndex int)) *DataDiffer {
	d.onAdd = fn
	return d
}

// OnRemove registers the callback for old items without a new counterpart.
func (d *DataDiffer) OnRemove(fn func(oldIndex int)) *DataDiffer {
	d.onRemove = fn
	return d
}

// OnUpdate registers the callback for one-to-one matches.
func (d *DataDiffer) OnUpdate(fn func(newIndex, oldIndex int)) *DataDiffer {
	d.onUpdate = fn
	return d
}

// OnUpdateManyToOne registers the callback for several old items merging into
// one new item. DiffMultiple only.
func (d *DataDiffer) OnUpdateManyToOne(fn func(newIndex int, oldIndices []int)) *DataDiffer {
	d.onManyToOne = fn
	return d
}

// OnUpdateOneToMany registers the callback for one old item splitting into
// several new items. DiffMultiple only.
func (d *DataDiffer) OnUpdateOneToMany(fn func(newIndices []int, oldIndex int)) *DataDiffer {
	d.onOneToMany = fn
	return d
}

// OnUpdateManyToMany registers the callback for a key shared by several old
// and several new items. DiffMultiple only.
func (d *DataDiffer) OnUpdateManyToMany(fn func(newIndices, oldIndices []int)) *DataDiffer {
	d.onManyToMany = fn
	return d
}

// Execute computes the relations and fires the registered callbacks.
func (d *DataDiffer) Execute() {
	for _, r := range d.Relations() {
		switch r.Kind {
		case RelationUpdate:
			if d.onUpdate != nil {
				d.onUpdate(r.NewIndices[0], r.OldIndices[0])
			}
		case RelationManyToOne:
			if d.onManyToOne != nil {
				d.onManyToOne(r.NewIndices[0], r.OldIndices)
			}
		case RelationOneToMany:
			if d.onOneToMany != nil {
				d.onOneToMany(r.NewIndices, r.OldIndices[0])
			}
		case RelationManyToMany:
			if d.onManyToMany != nil {
				d.onManyToMany(r.NewIndices, r.OldIndices)
			}
		case RelationRemove:
			if d.onRemove != nil {
				d.onRemove(r.OldIndices[0])
			}
		case RelationAdd:
			if d.onAdd != nil {
				d.onAdd(r.NewIndices[0])
			}
		}
	}
}

// Relations computes the relation stream without firing callbacks.
func (d *DataDiffer) Relations() []Relation {
	var buckets [RelationAdd + 1][]Relation
	emit := func(kind RelationKind, newIdx, oldIdx []int) {
		buckets[kind] = append(buckets[kind], Relation{Kind: kind, NewIndices: newIdx, OldIndices: oldIdx})
	}

	newIdx := indexKeys(d.newCount, d.newKey)

	if d.mode == DiffMultiple {
		oldIdx := indexKeys(d.oldCount, d.oldKey)
		for _, key := range oldIdx.keys {
			o := oldIdx.byKey[key]
			n := newIdx.byKey[key]
			switch {
			case len(o) > 1 && len(n) == 1:
				emit(RelationManyToOne, n, o)
			case len(o) == 1 && len(n) > 1:
				emit(RelationOneToMany, n, o)
			case len(o) == 1 && len(n) == 1:
				emit(RelationUpdate, n, o)
			case len(o) > 1 && len(n) > 1:
				emit(RelationManyToMany, n, o)
			default:
				for _, i := range o {
					emit(RelationRemove, nil, []int{i})
				}
				continue
			}
			delete(newIdx.byKey, key)
		}
	} else {
		for i := 0; i < d.oldCount; i++ {
			key := d.oldKey(i)
			q := newIdx.byKey[key]
			if len(q) == 0 {
				emit(RelationRemove, nil, []int{i})
				continue
			}
			emit(RelationUpdate, []int{q[0]}, []int{i})
			newIdx.byKey[key] = q[1:]
		}
	}

	for _, key := range newIdx.keys {
		for _, j := range newIdx.byKey[key] {
			emit(RelationAdd, []int{j}, nil)
		}
		delete(newIdx.byKey, key)
	}

	var out []Relation
	for _, b := range buckets {
		out = append(out, b...)
	}
	return out
}

// keyIndex groups item indices by key, remembering first-appearance order.
type keyIndex struct {
	keys  []string
	byKey map[string][]int
}

func indexKeys(count int, keyFn func(int) string) keyIndex {
	ki := keyIndex{byKey: make(map[string][]int, count)}
	for i := 0; i < count; i++ {
		key := keyFn(i)
		if _, ok := ki.byKey[key]; !ok {
			ki.keys = append(ki.keys, key)
		}
		ki.byKey[key] = append(ki.byKey[key], i)
	}
	return ki
}
