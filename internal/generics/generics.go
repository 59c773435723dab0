// Package generics implements generic data structure functions missing from the stdlib.
package generics

import (
	"iter"
	"maps"
	"slices"
)

// SortedKeysFunc returns an iterator over the keys of the given map, sorted with cmp.
//
// It extracts the keys, sort them and then iterate over, so it's convenient but not fast.
func SortedKeysFunc[M interface{ ~map[K]V }, K comparable, V any](m M, cmp func(a, b K) int) iter.Seq[K] {
	sortedKeys := slices.Collect(maps.Keys(m))
	slices.SortFunc(sortedKeys, cmp)
	return slices.Values(sortedKeys)
}

// Set implements a Set for the key type T.
type Set[T comparable] map[T]struct{}

// MakeSet returns an empty Set of the given type. Size is optional, and if given
// will reserve the expected size.
func MakeSet[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// SetWith creates a Set[T] with the given elements inserted.
func SetWith[T comparable](elements ...T) Set[T] {
	s := MakeSet[T](len(elements))
	s.Insert(elements...)
	return s
}

// Has returns true if Set s has the given key.
func (s Set[T]) Has(key T) bool {
	_, found := s[key]
	return found
}

// Insert keys into set.
func (s Set[T]) Insert(keys ...T) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}
