package menu

import (
	"iter"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// MaxRecentFiles is the number of recent file slots in the file menu.
const MaxRecentFiles = 9

// RecentFiles is a bounded most-recently-used list of ROM paths. Paths are
// compared as exact strings; callers normalize them first.
type RecentFiles struct {
	lru *simplelru.LRU[string, struct{}]
}

// NewRecentFiles returns an empty list holding at most MaxRecentFiles paths.
func NewRecentFiles() *RecentFiles {
	lru, err := simplelru.NewLRU[string, struct{}](MaxRecentFiles, nil)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &RecentFiles{lru: lru}
}

// Touch moves path to the front, inserting it if absent. The oldest entry is
// dropped when the list is full.
func (r *RecentFiles) Touch(path string) {
	r.lru.Add(path, struct{}{})
}

// Remove drops path from the list, reporting whether it was present.
func (r *RecentFiles) Remove(path string) bool {
	return r.lru.Remove(path)
}

// Len returns the number of entries.
func (r *RecentFiles) Len() int {
	return r.lru.Len()
}

// Entries yields the paths, most recent first. Each iteration starts over
// from the current contents.
func (r *RecentFiles) Entries() iter.Seq[string] {
	return func(yield func(string) bool) {
		keys := r.lru.Keys() // oldest first
		for i := len(keys) - 1; i >= 0; i-- {
			if !yield(keys[i]) {
				return
			}
		}
	}
}

// At returns the i-th most recent path, the target of menu slot i.
func (r *RecentFiles) At(i int) (string, bool) {
	keys := r.lru.Keys()
	if i < 0 || i >= len(keys) {
		return "", false
	}
	return keys[len(keys)-1-i], true
}

// Slice returns the paths most recent first, for persistence.
func (r *RecentFiles) Slice() []string {
	out := make([]string, 0, r.lru.Len())
	for p := range r.Entries() {
		out = append(out, p)
	}
	return out
}

// Load replaces the contents with paths given most recent first. Empty and
// duplicate paths are skipped, paths past the first MaxRecentFiles distinct
// ones are dropped.
func (r *RecentFiles) Load(paths []string) {
	r.lru.Purge()
	kept := make([]string, 0, MaxRecentFiles)
	seen := make(map[string]bool, MaxRecentFiles)
	for _, p := range paths {
		if len(kept) == MaxRecentFiles {
			break
		}
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		kept = append(kept, p)
	}
	for i := len(kept) - 1; i >= 0; i-- {
		r.lru.Add(kept[i], struct{}{})
	}
}
