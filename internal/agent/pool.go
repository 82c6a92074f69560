package agent

import "github.com/mhrezaei/newsbrief/internal/helpers"

// pool is the deduplicated accumulation of fetched documents across all
// search iterations of one run. It is owned by a single controller and is
// never mutated from more than one goroutine.
type pool struct {
	maxSize int
	seen    map[string]struct{}
	docs    []Document
}

func newPool(maxSize int) *pool {
	return &pool{maxSize: maxSize, seen: make(map[string]struct{})}
}

// add appends the novel documents from batch, preserving batch order and
// stopping at remaining capacity. Documents whose URL was already seen in
// this run are dropped. Returns how many documents were appended.
func (p *pool) add(batch []Document) int {
	added := 0
	for _, doc := range batch {
		if p.full() {
			break
		}
		key := poolKey(doc.URL)
		if _, dup := p.seen[key]; dup {
			continue
		}
		p.seen[key] = struct{}{}
		p.docs = append(p.docs, doc)
		added++
	}
	return added
}

func (p *pool) size() int  { return len(p.docs) }
func (p *pool) full() bool { return len(p.docs) >= p.maxSize }

// contains reports whether a URL (canonicalised) belongs to the pool.
func (p *pool) contains(url string) bool {
	_, ok := p.seen[poolKey(url)]
	return ok
}

// documents returns the accumulated pool in insertion order. The returned
// slice is a copy so callers cannot mutate the pool.
func (p *pool) documents() []Document {
	out := make([]Document, len(p.docs))
	copy(out, p.docs)
	return out
}

func poolKey(rawURL string) string {
	canonical, err := helpers.CanonicalURL(rawURL)
	if err != nil {
		return rawURL
	}
	return canonical
}
