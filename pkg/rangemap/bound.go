package rangemap

import (
	"fmt"
	"strings"
)

// Bound is one end of a range: either a concrete key or unbounded
// (extending to infinity on that side).
//
// The zero Bound is unbounded.
type Bound[K any] struct {
	key     K
	bounded bool
}

// At returns a Bound at key k.
func At[K any](k K) Bound[K] {
	return Bound[K]{key: k, bounded: true}
}

// Unbounded returns a Bound extending to infinity.
func Unbounded[K any]() Bound[K] {
	return Bound[K]{}
}

// Value returns the key and whether the bound is bounded.
func (b Bound[K]) Value() (K, bool) {
	return b.key, b.bounded
}

func (b Bound[K]) IsUnbounded() bool {
	return !b.bounded
}

func (b Bound[K]) String() string {
	if !b.bounded {
		return "∞"
	}
	return fmt.Sprint(b.key)
}

// MappedRange is one maximal contiguous half-open interval [Start, Stop)
// sharing a single value. It is produced by RangeMap.Ranges and never
// describes an unmapped span.
type MappedRange[K, V any] struct {
	Start Bound[K]
	Stop  Bound[K]
	Value V
}

func (r MappedRange[K, V]) String() string {
	var b strings.Builder
	if r.Start.IsUnbounded() {
		b.WriteString("(-∞")
	} else {
		b.WriteByte('[')
		fmt.Fprint(&b, r.Start.key)
	}
	b.WriteString(", ")
	if r.Stop.IsUnbounded() {
		b.WriteString("∞)")
	} else {
		fmt.Fprint(&b, r.Stop.key)
		b.WriteByte(')')
	}
	fmt.Fprintf(&b, " -> %v", r.Value)
	return b.String()
}

func spanString[K any](start, stop Bound[K]) string {
	var b strings.Builder
	if start.IsUnbounded() {
		b.WriteString("(-∞, ")
	} else {
		fmt.Fprintf(&b, "[%v, ", start.key)
	}
	if stop.IsUnbounded() {
		b.WriteString("∞)")
	} else {
		fmt.Fprintf(&b, "%v)", stop.key)
	}
	return b.String()
}
