package rangemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysView(t *testing.T) {
	m := New[int, string]()
	mustSet(t, m, "a", At(1), At(5))

	keys := m.Keys()
	assert.Equal(t, 1, keys.Len())
	assert.Same(t, m, keys.Mapping())

	// Contains matches any mapped key, not only range starts.
	assert.True(t, keys.Contains(3))
	assert.False(t, keys.Contains(-10))
	assert.False(t, keys.Contains(5))

	mustSet(t, m, "z", Unbounded[int](), At(1))
	var got []string
	for b := range keys.All() {
		got = append(got, b.String())
	}
	assert.Equal(t, []string{"∞", "1"}, got)
	assert.True(t, keys.Contains(-10))
}

func TestValuesView(t *testing.T) {
	m := FromMap(map[int]string{1: "a", 2: "b"})
	values := m.Values()

	assert.Equal(t, 2, values.Len())
	assert.True(t, values.Contains("a"))
	assert.True(t, values.Contains("b"))
	assert.False(t, values.Contains("z"))

	var got []string
	for v := range values.All() {
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestItemsView(t *testing.T) {
	m := FromMap(map[int]string{1: "a", 2: "b"})
	items := m.Items()

	assert.True(t, items.Contains(1, "a"))
	assert.True(t, items.Contains(3, "b"))
	assert.False(t, items.Contains(1, "b"))
	assert.False(t, items.Contains(0, "a"))

	var starts []string
	var vals []string
	for b, v := range items.All() {
		starts = append(starts, b.String())
		vals = append(vals, v)
	}
	assert.Equal(t, []string{"1", "2"}, starts)
	assert.Equal(t, []string{"a", "b"}, vals)
}

func TestViewsAreLive(t *testing.T) {
	m := FromMap(map[int]string{1: "a"})
	values := m.Values()

	mustSet(t, m, "b", At(5), Unbounded[int]())
	assert.True(t, values.Contains("b"))
	assert.Equal(t, 2, values.Len())

	assert.NoError(t, m.Delete(At(1), At(5)))
	assert.False(t, values.Contains("a"))
}
