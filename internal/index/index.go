// Package index maintains the category and hierarchy lookup structures
// over record ids. Both are in-memory multimaps: categories are sets,
// hierarchies are append-only ordered lists. Entries are never
// retracted, so ids here may no longer exist in storage; consumers
// filter dangling ids instead of erroring.
package index

import (
	"sort"
	"sync"
)

// Org groups record ids by category name and hierarchy name.
type Org struct {
	mu          sync.RWMutex
	categories  map[string]map[string]bool
	hierarchies map[string][]string
	hierSeen    map[string]map[string]bool
}

// NewOrg creates an empty organization index.
func NewOrg() *Org {
	return &Org{
		categories:  make(map[string]map[string]bool),
		hierarchies: make(map[string][]string),
		hierSeen:    make(map[string]map[string]bool),
	}
}

// Add places id into each named category bucket and, when hierarchy is
// non-empty, appends it to that hierarchy. Both inserts are idempotent.
func (o *Org) Add(id string, categories []string, hierarchy string) {
	if id == "" {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, c := range categories {
		if c == "" {
			continue
		}
		set, ok := o.categories[c]
		if !ok {
			set = make(map[string]bool)
			o.categories[c] = set
		}
		set[id] = true
	}

	if hierarchy == "" {
		return
	}
	seen, ok := o.hierSeen[hierarchy]
	if !ok {
		seen = make(map[string]bool)
		o.hierSeen[hierarchy] = seen
	}
	if !seen[id] {
		seen[id] = true
		o.hierarchies[hierarchy] = append(o.hierarchies[hierarchy], id)
	}
}

// ByCategory returns the ids in a category, sorted. Unknown names
// return an empty slice.
func (o *Org) ByCategory(name string) []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	set := o.categories[name]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ByHierarchy returns the ids in a hierarchy in insertion order.
// Unknown names return an empty slice.
func (o *Org) ByHierarchy(name string) []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	ids := make([]string, len(o.hierarchies[name]))
	copy(ids, o.hierarchies[name])
	return ids
}

// Categories returns all category names, sorted.
func (o *Org) Categories() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names := make([]string, 0, len(o.categories))
	for n := range o.categories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Hierarchies returns all hierarchy names, sorted.
func (o *Org) Hierarchies() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names := make([]string, 0, len(o.hierarchies))
	for n := range o.hierarchies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
