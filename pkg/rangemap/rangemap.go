// Package rangemap provides RangeMap, an ordered container mapping every
// point of an orderable key domain to at most one value. The mapping is
// stored as a flat sorted array of breakpoints, one per change of value,
// so lookups are O(log n) and mutations are O(n) array splices.
//
// A RangeMap is not safe for concurrent mutation; callers needing that
// must serialize access externally.
package rangemap

import (
	"cmp"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"
)

// slot is the value side of one breakpoint. ok is false for spans that
// currently have no mapping.
type slot[V any] struct {
	value V
	ok    bool
}

// RangeMap maps half-open ranges [start, stop) of K to values of V.
//
// Internally keys and values are parallel slices: values[i] governs the
// interval [keys[i], keys[i+1]), with keys[0] a placeholder slot standing
// for negative infinity (never compared against real keys) and the last
// interval extending to positive infinity.
type RangeMap[K, V any] struct {
	compare func(K, K) int
	equal   func(V, V) bool
	keys    []K
	values  []slot[V]
}

// New returns an empty RangeMap: no key is mapped.
func New[K cmp.Ordered, V comparable]() *RangeMap[K, V] {
	return NewFunc[K, V](cmp.Compare[K], func(a, b V) bool { return a == b })
}

// NewWithDefault returns a RangeMap with every key mapped to def.
// Ranges deleted later are removed, not reset to def.
func NewWithDefault[K cmp.Ordered, V comparable](def V) *RangeMap[K, V] {
	m := New[K, V]()
	m.values[0] = slot[V]{value: def, ok: true}
	return m
}

// NewFunc returns an empty RangeMap for key and value types outside the
// cmp.Ordered / comparable constraints. compare must define a total order
// on K; a nil compare makes every comparing operation fail with
// ErrUnorderable. A nil equal falls back to reflect.DeepEqual.
func NewFunc[K, V any](compare func(K, K) int, equal func(V, V) bool) *RangeMap[K, V] {
	if equal == nil {
		equal = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}
	return &RangeMap[K, V]{
		compare: compare,
		equal:   equal,
		keys:    make([]K, 1),
		values:  make([]slot[V], 1),
	}
}

// NewFuncWithDefault is NewFunc with every key initially mapped to def.
func NewFuncWithDefault[K, V any](compare func(K, K) int, equal func(V, V) bool, def V) *RangeMap[K, V] {
	m := NewFunc[K, V](compare, equal)
	m.values[0] = slot[V]{value: def, ok: true}
	return m
}

// FromMap builds a RangeMap from a table of range starts to values. Each
// start opens a range extending to the next greater start, the last one
// extending to positive infinity.
func FromMap[K cmp.Ordered, V comparable](starts map[K]V) *RangeMap[K, V] {
	m := New[K, V]()
	for _, k := range slices.Sorted(maps.Keys(starts)) {
		m.Set(starts[k], At(k), Unbounded[K]())
	}
	return m
}

// FromRanges builds a RangeMap from (start, stop, value) triples. Later
// entries win where they overlap earlier ones.
func FromRanges[K cmp.Ordered, V comparable](ranges []MappedRange[K, V]) (*RangeMap[K, V], error) {
	m := New[K, V]()
	for _, r := range ranges {
		if err := m.Set(r.Value, r.Start, r.Stop); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// newLike returns an empty RangeMap sharing the receiver's compare and
// equal functions but none of its state.
func (m *RangeMap[K, V]) newLike() *RangeMap[K, V] {
	return &RangeMap[K, V]{
		compare: m.compare,
		equal:   m.equal,
		keys:    make([]K, 1),
		values:  make([]slot[V], 1),
	}
}

// bisectLeft returns the index of the slot whose key equals the bound, or
// of the first slot with a greater key. The placeholder slot 0 sorts
// before everything.
func (m *RangeMap[K, V]) bisectLeft(b Bound[K]) int {
	k, ok := b.Value()
	if !ok {
		return 0
	}
	i, _ := slices.BinarySearchFunc(m.keys[1:], k, m.compare)
	return i + 1
}

// bisectRight returns the index after the rightmost slot whose key is <=
// the bound.
func (m *RangeMap[K, V]) bisectRight(b Bound[K]) int {
	k, ok := b.Value()
	if !ok {
		return 1
	}
	i := sort.Search(len(m.keys)-1, func(i int) bool {
		return m.compare(m.keys[i+1], k) > 0
	})
	return i + 1
}

// checkSpan validates a [start, stop) span argument.
func (m *RangeMap[K, V]) checkSpan(start, stop Bound[K]) error {
	if m.compare == nil && (!start.IsUnbounded() || !stop.IsUnbounded()) {
		return ErrUnorderable
	}
	startKey, hasStart := start.Value()
	stopKey, hasStop := stop.Value()
	if hasStart && hasStop && m.compare(stopKey, startKey) <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidRange, spanString(start, stop))
	}
	return nil
}

func (m *RangeMap[K, V]) slotEqual(a, b slot[V]) bool {
	if a.ok != b.ok {
		return false
	}
	if !a.ok {
		return true
	}
	return m.equal(a.value, b.value)
}

// boundAt returns the bound standing for the key of slot i.
func (m *RangeMap[K, V]) boundAt(i int) Bound[K] {
	if i == 0 {
		return Unbounded[K]()
	}
	return At(m.keys[i])
}

// Get returns the value governing key, or ErrNotFound if key falls in an
// unmapped span.
func (m *RangeMap[K, V]) Get(key K) (V, error) {
	var zero V
	if m.compare == nil {
		return zero, ErrUnorderable
	}
	s := m.values[m.bisectRight(At(key))-1]
	if !s.ok {
		return zero, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return s.value, nil
}

// GetOr returns the value governing key, or fallback if key is unmapped.
func (m *RangeMap[K, V]) GetOr(key K, fallback V) V {
	v, err := m.Get(key)
	if err != nil {
		return fallback
	}
	return v
}

// Has reports whether key is mapped.
func (m *RangeMap[K, V]) Has(key K) bool {
	_, err := m.Get(key)
	return err == nil
}

// Set maps every key in [start, stop) to value, leaving keys outside the
// span untouched. An unbounded start or stop extends the span to infinity
// on that side.
func (m *RangeMap[K, V]) Set(value V, start, stop Bound[K]) error {
	if err := m.checkSpan(start, stop); err != nil {
		return err
	}
	m.splice(slot[V]{value: value, ok: true}, start, stop)
	return nil
}

// splice replaces the span [start, stop) with s, coalescing with equal
// neighbours so no two adjacent slots ever share a value. Bounds must
// already be validated.
func (m *RangeMap[K, V]) splice(s slot[V], start, stop Bound[K]) {
	startIndex := m.bisectLeft(start)
	if !start.IsUnbounded() {
		// If the slot left of the insertion point already carries this
		// value, absorb it: the new entry starts where that one did.
		if m.slotEqual(m.values[startIndex-1], s) {
			startIndex--
			start = m.boundAt(startIndex)
		}
	}

	var newKeys []K
	var newValues []slot[V]
	var stopIndex int
	startKey, _ := start.Value() // zero placeholder when unbounded
	if stopKey, ok := stop.Value(); !ok {
		newKeys = []K{startKey}
		newValues = []slot[V]{s}
		stopIndex = len(m.keys)
	} else {
		stopIndex = m.bisectRight(stop)
		// The value governing the point stop spills over: it must be
		// re-asserted right after the new entry, unless it already equals
		// the new value, in which case the two runs merge.
		spill := m.values[stopIndex-1]
		if m.slotEqual(spill, s) {
			newKeys = []K{startKey}
			newValues = []slot[V]{s}
		} else {
			newKeys = []K{startKey, stopKey}
			newValues = []slot[V]{s, spill}
		}
	}
	m.keys = slices.Replace(m.keys, startIndex, stopIndex, newKeys...)
	m.values = slices.Replace(m.values, startIndex, stopIndex, newValues...)
}

// Delete unmaps every key in [start, stop). Unlike Empty it requires the
// whole span to be mapped: if any sub-span is unmapped it fails with
// ErrPartialCoverage and leaves the map unchanged.
func (m *RangeMap[K, V]) Delete(start, stop Bound[K]) error {
	if err := m.checkSpan(start, stop); err != nil {
		return err
	}
	startLoc := m.bisectRight(start) - 1
	stopLoc := len(m.keys)
	if !stop.IsUnbounded() {
		stopLoc = m.bisectLeft(stop)
	}
	for _, s := range m.values[startLoc:stopLoc] {
		if !s.ok {
			return fmt.Errorf("%w: %s", ErrPartialCoverage, spanString(start, stop))
		}
	}
	m.splice(slot[V]{}, start, stop)
	return nil
}

// Empty unmaps every key in [start, stop). Spans that are already
// unmapped are silently skipped.
func (m *RangeMap[K, V]) Empty(start, stop Bound[K]) error {
	if err := m.checkSpan(start, stop); err != nil {
		return err
	}
	m.splice(slot[V]{}, start, stop)
	return nil
}

// Clear removes every mapping.
func (m *RangeMap[K, V]) Clear() {
	m.keys = make([]K, 1)
	m.values = make([]slot[V], 1)
}

// Len returns the number of mapped breakpoints.
func (m *RangeMap[K, V]) Len() int {
	n := 0
	for _, s := range m.values {
		if s.ok {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no key at all is mapped.
func (m *RangeMap[K, V]) IsEmpty() bool {
	return len(m.keys) == 1 && !m.values[0].ok
}

// Start returns the lowest bound with a mapping. ok is false when the map
// is empty; an unbounded result means the map extends to negative
// infinity.
func (m *RangeMap[K, V]) Start() (Bound[K], bool) {
	if m.values[0].ok {
		return Unbounded[K](), true
	}
	if len(m.keys) > 1 {
		return At(m.keys[1]), true
	}
	return Bound[K]{}, false
}

// End returns the bound after the last mapping. ok is false when the map
// is empty; an unbounded result means the map extends to positive
// infinity.
func (m *RangeMap[K, V]) End() (Bound[K], bool) {
	last := len(m.values) - 1
	if m.values[last].ok {
		return Unbounded[K](), true
	}
	if last > 0 {
		return At(m.keys[last]), true
	}
	return Bound[K]{}, false
}

// Equal reports whether m and other hold structurally identical mappings.
// Because adjacent equal runs always coalesce, structural equality is
// semantic equality.
func (m *RangeMap[K, V]) Equal(other *RangeMap[K, V]) bool {
	if other == nil || len(m.keys) != len(other.keys) {
		return false
	}
	for i := 1; i < len(m.keys); i++ {
		if m.compare(m.keys[i], other.keys[i]) != 0 {
			return false
		}
	}
	for i, s := range m.values {
		if !m.slotEqual(s, other.values[i]) {
			return false
		}
	}
	return true
}

func (m *RangeMap[K, V]) String() string {
	var b strings.Builder
	b.WriteString("RangeMap{")
	first := true
	seq, err := m.Ranges(Unbounded[K](), Unbounded[K]())
	if err == nil {
		for r := range seq {
			if !first {
				b.WriteString(", ")
			}
			b.WriteString(r.String())
			first = false
		}
	}
	b.WriteByte('}')
	return b.String()
}
