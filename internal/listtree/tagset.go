package listtree

import "sort"

// TagSet is the set of collapsed section tags. The zero value is usable for
// lookups; use NewTagSet before adding.
type TagSet map[string]struct{}

func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

func (s TagSet) Add(tag string)    { s[tag] = struct{}{} }
func (s TagSet) Remove(tag string) { delete(s, tag) }
func (s TagSet) Len() int          { return len(s) }

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
