package orphans

import "sort"

// PathSet is an unordered set of folded file paths.
type PathSet map[string]struct{}

// NewPathSet returns a set holding paths.
func NewPathSet(paths ...string) PathSet {
	set := make(PathSet, len(paths))
	for _, p := range paths {
		set.Add(p)
	}
	return set
}

// Add inserts path and reports whether it was new.
func (s PathSet) Add(path string) bool {
	if _, ok := s[path]; ok {
		return false
	}
	s[path] = struct{}{}
	return true
}

// Has reports whether path is in the set. A nil set contains nothing.
func (s PathSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}

func (s PathSet) Len() int { return len(s) }

// Sorted returns the members in ascending byte order.
func (s PathSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Difference returns the members of s that are not in other.
func (s PathSet) Difference(other PathSet) PathSet {
	out := make(PathSet)
	for p := range s {
		if !other.Has(p) {
			out[p] = struct{}{}
		}
	}
	return out
}

// SymmetricDifference returns the members found in exactly one of s and other.
func (s PathSet) SymmetricDifference(other PathSet) PathSet {
	out := s.Difference(other)
	for p := range other {
		if !s.Has(p) {
			out[p] = struct{}{}
		}
	}
	return out
}
