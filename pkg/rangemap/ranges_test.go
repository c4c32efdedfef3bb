package rangemap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func listRanges[K, V any](t *testing.T, m *RangeMap[K, V], start, stop Bound[K]) []MappedRange[K, V] {
	t.Helper()
	seq, err := m.Ranges(start, stop)
	assert.NoError(t, err)
	var out []MappedRange[K, V]
	for r := range seq {
		out = append(out, r)
	}
	return out
}

func rangeStrings[K, V any](rs []MappedRange[K, V]) []string {
	if len(rs) == 0 {
		return nil
	}
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}
	return out
}

func TestRanges(t *testing.T) {
	cases := map[string]struct {
		build func() *RangeMap[int, string]
		start Bound[int]
		stop  Bound[int]
		want  []string
	}{
		"Empty": {
			build: New[int, string],
			start: Unbounded[int](), stop: Unbounded[int](),
			want: nil,
		},
		"DefaultOnly": {
			build: func() *RangeMap[int, string] { return NewWithDefault[int, string]("z") },
			start: Unbounded[int](), stop: Unbounded[int](),
			want: []string{"(-∞, ∞) -> z"},
		},
		"SkipsGaps": {
			build: func() *RangeMap[int, string] {
				m := FromMap(map[int]string{1: "a", 2: "b", 3: "c"})
				if err := m.Delete(At(2), At(3)); err != nil {
					panic(err)
				}
				return m
			},
			start: Unbounded[int](), stop: Unbounded[int](),
			want: []string{"[1, 2) -> a", "[3, ∞) -> c"},
		},
		"ClipsToSpan": {
			build: func() *RangeMap[int, string] {
				return FromMap(map[int]string{1: "a", 5: "b", 9: "c"})
			},
			start: At(3), stop: At(7),
			want: []string{"[3, 5) -> a", "[5, 7) -> b"},
		},
		"SpanInsideOneRun": {
			build: func() *RangeMap[int, string] {
				return FromMap(map[int]string{1: "a"})
			},
			start: At(3), stop: At(7),
			want: []string{"[3, 7) -> a"},
		},
		"SpanBeforeEverything": {
			build: func() *RangeMap[int, string] {
				return FromMap(map[int]string{10: "a"})
			},
			start: At(1), stop: At(5),
			want: nil,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := rangeStrings(listRanges(t, tc.build(), tc.start, tc.stop))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ranges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRangesRestartable(t *testing.T) {
	m := FromMap(map[int]string{1: "a", 5: "b"})
	seq, err := m.Ranges(Unbounded[int](), Unbounded[int]())
	assert.NoError(t, err)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, first, second)

	// A restart after mutation reflects the new state.
	mustSet(t, m, "a", At(5), Unbounded[int]())
	third := 0
	for range seq {
		third++
	}
	assert.Equal(t, 1, third)
}

func TestRangesInvalid(t *testing.T) {
	m := FromMap(map[int]string{1: "a"})
	_, err := m.Ranges(At(5), At(5))
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = m.Ranges(At(5), At(3))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRoundTrip(t *testing.T) {
	builds := map[string]func() *RangeMap[int, string]{
		"Empty":    New[int, string],
		"Default":  func() *RangeMap[int, string] { return NewWithDefault[int, string]("z") },
		"Plain":    func() *RangeMap[int, string] { return FromMap(map[int]string{1: "a", 2: "b", 5: "c"}) },
		"WithGaps": func() *RangeMap[int, string] {
			m := NewWithDefault[int, string]("z")
			for _, e := range []struct {
				k int
				v string
			}{{1, "a"}, {2, "b"}, {5, "c"}} {
				if err := m.Set(e.v, At(e.k), Unbounded[int]()); err != nil {
					panic(err)
				}
			}
			if err := m.Delete(At(2), At(5)); err != nil {
				panic(err)
			}
			return m
		},
	}
	for name, build := range builds {
		t.Run(name, func(t *testing.T) {
			m := build()
			rebuilt, err := FromRanges(listRanges(t, m, Unbounded[int](), Unbounded[int]()))
			assert.NoError(t, err)
			assert.True(t, m.Equal(rebuilt), "got %v, want %v", rebuilt, m)
		})
	}
}

func TestGetRange(t *testing.T) {
	m := FromMap(map[int]string{1: "a", 2: "b", 3: "c", 4: "d", 5: "e"})

	sub, err := m.GetRange(At(2), At(4))
	assert.NoError(t, err)
	assert.Equal(t, "b", sub.GetOr(2, ""))
	assert.Equal(t, "c", sub.GetOr(3, ""))
	assert.False(t, sub.Has(1))
	assert.False(t, sub.Has(4))

	// Extraction at exact breakpoints matches the parent's listing.
	got := rangeStrings(listRanges(t, sub, Unbounded[int](), Unbounded[int]()))
	want := rangeStrings(listRanges(t, m, At(2), At(4)))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sub-map ranges mismatch (-want +got):\n%s", diff)
	}

	// The sub-map is independent of the parent.
	mustSet(t, sub, "x", At(2), At(3))
	assert.Equal(t, "b", m.GetOr(2, ""))

	_, err = m.GetRange(At(4), At(2))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestFromRangesLaterWins(t *testing.T) {
	m, err := FromRanges([]MappedRange[int, string]{
		{At(1), At(10), "a"},
		{At(3), At(6), "b"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "a", m.GetOr(2, ""))
	assert.Equal(t, "b", m.GetOr(3, ""))
	assert.Equal(t, "b", m.GetOr(5, ""))
	assert.Equal(t, "a", m.GetOr(6, ""))
	checkInvariants(t, m)
}
