package hash40

import (
	"sort"
	"sync"
)

// Label pairs a known hash with its preimage string.
type Label struct {
	Hash Hash40
	Name string
}

// Corpus is the process-wide set of known labels, populated once at startup
// and read-only afterwards. Rendering and resolution may read it from
// different goroutines, so access goes through a read lock; if the corpus
// cannot be acquired the caller degrades to derived hashes instead of
// blocking the editor.
type Corpus struct {
	mu     sync.RWMutex
	sorted []string
	byName map[string]Hash40
	byHash map[Hash40]string
}

// NewCorpus builds a corpus from label pairs. Names are deduplicated and kept
// in ascending lexicographic order for prefix search.
func NewCorpus(labels []Label) *Corpus {
	c := &Corpus{
		byName: make(map[string]Hash40, len(labels)),
		byHash: make(map[Hash40]string, len(labels)),
	}
	for _, l := range labels {
		if _, dup := c.byName[l.Name]; dup {
			continue
		}
		c.byName[l.Name] = l.Hash
		c.byHash[l.Hash] = l.Name
		c.sorted = append(c.sorted, l.Name)
	}
	sort.Strings(c.sorted)
	return c
}

// Len returns the number of known labels.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sorted)
}

// snapshot gives read access to the corpus contents. ok is false when the
// corpus is absent; resolution then proceeds with derived hashes rather than
// failing.
func (c *Corpus) snapshot() (view corpusView, ok bool) {
	if c == nil {
		return corpusView{}, false
	}
	c.mu.RLock()
	return corpusView{c: c}, true
}

// corpusView holds the read lock over the corpus until release is called.
type corpusView struct {
	c *Corpus
}

func (v corpusView) release() {
	v.c.mu.RUnlock()
}

func (v corpusView) hashOf(name string) (Hash40, bool) {
	h, ok := v.c.byName[name]
	return h, ok
}

func (v corpusView) nameOf(h Hash40) (string, bool) {
	n, ok := v.c.byHash[h]
	return n, ok
}

// withPrefix returns up to limit labels beginning with prefix, ascending.
func (v corpusView) withPrefix(prefix string, limit int) []string {
	sorted := v.c.sorted
	start := sort.SearchStrings(sorted, prefix)
	var out []string
	for i := start; i < len(sorted) && (limit <= 0 || len(out) < limit); i++ {
		if len(sorted[i]) < len(prefix) || sorted[i][:len(prefix)] != prefix {
			break
		}
		out = append(out, sorted[i])
	}
	return out
}
