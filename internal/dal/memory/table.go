package memory

import (
	"cmp"
	"maps"
	"slices"
)

// table is the row set a repository works on: the live rows or the rows
// as seen from inside a unit of work.
type table[K cmp.Ordered, V any] interface {
	get(id K) (V, bool)
	put(id K, row V)
	remove(id K) bool
	// all returns the rows ordered by key.
	all() []V
}

// liveTable holds committed rows.
type liveTable[K cmp.Ordered, V any] map[K]V

func (t liveTable[K, V]) get(id K) (V, bool) {
	row, ok := t[id]
	return row, ok
}

func (t liveTable[K, V]) put(id K, row V) {
	t[id] = row
}

func (t liveTable[K, V]) remove(id K) bool {
	_, ok := t[id]
	delete(t, id)

	return ok
}

func (t liveTable[K, V]) all() []V {
	rows := make([]V, 0, len(t))
	for _, id := range slices.Sorted(maps.Keys(t)) {
		rows = append(rows, t[id])
	}

	return rows
}

// overlay records the writes of a unit of work on top of a live table.
// Only touched rows are kept, the base is read through.
type overlay[K cmp.Ordered, V any] struct {
	base    liveTable[K, V]
	written map[K]V
	removed map[K]struct{}
}

func newOverlay[K cmp.Ordered, V any](base liveTable[K, V]) *overlay[K, V] {
	return &overlay[K, V]{
		base:    base,
		written: make(map[K]V),
		removed: make(map[K]struct{}),
	}
}

func (o *overlay[K, V]) get(id K) (V, bool) {
	if _, ok := o.removed[id]; ok {
		var zero V
		return zero, false
	}
	if row, ok := o.written[id]; ok {
		return row, true
	}

	return o.base.get(id)
}

func (o *overlay[K, V]) put(id K, row V) {
	delete(o.removed, id)
	o.written[id] = row
}

func (o *overlay[K, V]) remove(id K) bool {
	_, ok := o.get(id)
	delete(o.written, id)
	o.removed[id] = struct{}{}

	return ok
}

func (o *overlay[K, V]) all() []V {
	merged := make(liveTable[K, V], len(o.base)+len(o.written))
	for id, row := range o.base {
		if _, ok := o.removed[id]; !ok {
			merged[id] = row
		}
	}
	maps.Copy(merged, o.written)

	return merged.all()
}

// commit applies the recorded writes to the base. Rows the unit of work
// never touched keep whatever was written to them meanwhile.
func (o *overlay[K, V]) commit() {
	for id := range o.removed {
		delete(o.base, id)
	}
	maps.Copy(o.base, o.written)
}
