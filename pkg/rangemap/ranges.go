package rangemap

import "iter"

// Ranges returns a lazy, restartable sequence of the mapped sub-ranges
// intersected with [start, stop), in increasing order. Unmapped spans are
// skipped, never yielded. Every derived read (views, GetRange, equality
// of listings) is built on this.
//
// The sequence reads the live backing arrays; mutating the map while a
// yielded iteration is still in progress is undefined. Restarting the
// sequence after a mutation reflects the new state.
func (m *RangeMap[K, V]) Ranges(start, stop Bound[K]) (iter.Seq[MappedRange[K, V]], error) {
	if err := m.checkSpan(start, stop); err != nil {
		return nil, err
	}
	return func(yield func(MappedRange[K, V]) bool) {
		startLoc := m.bisectRight(start)
		stopLoc := len(m.keys)
		if !stop.IsUnbounded() {
			stopLoc = m.bisectLeft(stop)
		}
		// Candidate bounds are start, the breakpoints strictly inside the
		// span, then stop; candidate values start with the one governing
		// the point start.
		n := stopLoc - startLoc + 1
		cur := start
		for i := 0; i < n; i++ {
			s := m.values[startLoc+i-1]
			next := stop
			if i < n-1 {
				next = At(m.keys[startLoc+i])
			}
			if s.ok {
				if !yield(MappedRange[K, V]{Start: cur, Stop: next, Value: s.value}) {
					return
				}
			}
			cur = next
		}
	}, nil
}

// GetRange returns a new RangeMap holding the mappings of [start, stop),
// sharing no state with m. The receiver's compare and equal functions are
// carried over; its default value is not.
func (m *RangeMap[K, V]) GetRange(start, stop Bound[K]) (*RangeMap[K, V], error) {
	seq, err := m.Ranges(start, stop)
	if err != nil {
		return nil, err
	}
	out := m.newLike()
	for r := range seq {
		out.splice(slot[V]{value: r.Value, ok: true}, r.Start, r.Stop)
	}
	return out, nil
}

// All returns a sequence of (range start, value) pairs, one per mapped
// sub-range.
func (m *RangeMap[K, V]) All() iter.Seq2[Bound[K], V] {
	return m.Items().All()
}
