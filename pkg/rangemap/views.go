package rangemap

import "iter"

// Views are lazy windows onto a RangeMap: they hold no state of their
// own and re-derive their contents from Ranges on every iteration, so
// they reflect later mutation of the parent.

// KeysView is a read-only view of the bounds that start each mapped
// sub-range.
type KeysView[K, V any] struct {
	m *RangeMap[K, V]
}

// Keys returns a view of the range start bounds.
func (m *RangeMap[K, V]) Keys() KeysView[K, V] {
	return KeysView[K, V]{m: m}
}

// Mapping returns the underlying RangeMap.
func (v KeysView[K, V]) Mapping() *RangeMap[K, V] { return v.m }

func (v KeysView[K, V]) Len() int { return v.m.Len() }

// Contains reports whether key is mapped, anywhere in its range, not
// only at a range start.
func (v KeysView[K, V]) Contains(key K) bool { return v.m.Has(key) }

func (v KeysView[K, V]) All() iter.Seq[Bound[K]] {
	return func(yield func(Bound[K]) bool) {
		seq, err := v.m.Ranges(Unbounded[K](), Unbounded[K]())
		if err != nil {
			return
		}
		for r := range seq {
			if !yield(r.Start) {
				return
			}
		}
	}
}

// ValuesView is a read-only view of the values, one per mapped
// sub-range.
type ValuesView[K, V any] struct {
	m *RangeMap[K, V]
}

// Values returns a view of the mapped values.
func (m *RangeMap[K, V]) Values() ValuesView[K, V] {
	return ValuesView[K, V]{m: m}
}

// Mapping returns the underlying RangeMap.
func (v ValuesView[K, V]) Mapping() *RangeMap[K, V] { return v.m }

func (v ValuesView[K, V]) Len() int { return v.m.Len() }

func (v ValuesView[K, V]) Contains(value V) bool {
	for got := range v.All() {
		if v.m.equal(got, value) {
			return true
		}
	}
	return false
}

func (v ValuesView[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		seq, err := v.m.Ranges(Unbounded[K](), Unbounded[K]())
		if err != nil {
			return
		}
		for r := range seq {
			if !yield(r.Value) {
				return
			}
		}
	}
}

// ItemsView is a read-only view of (range start, value) pairs, one per
// mapped sub-range.
type ItemsView[K, V any] struct {
	m *RangeMap[K, V]
}

// Items returns a view of the (range start, value) pairs.
func (m *RangeMap[K, V]) Items() ItemsView[K, V] {
	return ItemsView[K, V]{m: m}
}

// Mapping returns the underlying RangeMap.
func (v ItemsView[K, V]) Mapping() *RangeMap[K, V] { return v.m }

func (v ItemsView[K, V]) Len() int { return v.m.Len() }

// Contains reports whether key is mapped to value.
func (v ItemsView[K, V]) Contains(key K, value V) bool {
	got, err := v.m.Get(key)
	return err == nil && v.m.equal(got, value)
}

func (v ItemsView[K, V]) All() iter.Seq2[Bound[K], V] {
	return func(yield func(Bound[K], V) bool) {
		seq, err := v.m.Ranges(Unbounded[K](), Unbounded[K]())
		if err != nil {
			return
		}
		for r := range seq {
			if !yield(r.Start, r.Value) {
				return
			}
		}
	}
}
