package model

import (
	"sort"
	"strings"
)

// URLSet is a set of URL records deduplicated by exact string equality
// after trimming surrounding whitespace.
// The zero value is not usable; create one with NewURLSet.
type URLSet struct {
	items map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{items: make(map[string]struct{})}
}

// Add trims s and inserts it. Empty strings are ignored.
// It reports whether s was newly added.
func (s *URLSet) Add(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	return true
}

// AddAll inserts every element of values.
func (s *URLSet) AddAll(values []string) {
	for _, v := range values {
		s.Add(v)
	}
}

// Contains reports whether v (after trimming) is in the set.
func (s *URLSet) Contains(v string) bool {
	_, ok := s.items[strings.TrimSpace(v)]
	return ok
}

// Len returns the number of elements.
func (s *URLSet) Len() int {
	return len(s.items)
}

// Sorted returns the elements in ascending byte order.
// Output files are always written in this order.
func (s *URLSet) Sorted() []string {
	out := make([]string, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
