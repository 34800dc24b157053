package domain

import (
	"cmp"
	"slices"
)

// Set is an unordered collection of distinct values
type Set[T comparable] map[T]struct{}

// NewSet creates a set holding the given values
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Contains reports whether v is in the set. A nil set contains nothing.
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of values
func (s Set[T]) Len() int {
	return len(s)
}

// Sorted returns the values in ascending order
func Sorted[T cmp.Ordered](s Set[T]) []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
