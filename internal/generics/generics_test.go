package generics

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeysFunc(t *testing.T) {
	m := map[int]string{1: "1", 5: "5", 3: "3"}
	// Since the builtin map iterator in Go is deliberately non-deterministic, we
	// run it a bunch of times to show it is stably sorted.
	want := []int{5, 3, 1}
	for range 100 {
		got := slices.Collect(SortedKeysFunc(m, func(a, b int) int { return cmp.Compare(b, a) }))
		assert.Equal(t, want, got)
	}
}

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := MakeSet[int](10)
	assert.Len(t, s, 0)

	// Check inserting and recovery.
	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))

	s2 := SetWith(5, 7)
	assert.Len(t, s2, 2)
	assert.True(t, s2.Has(5))
	assert.False(t, s2.Has(3))

	delete(s, 7)
	assert.Equal(t, SetWith(3), s)
	assert.NotEqual(t, s2, s)
}
