package ingest

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// contentDedupe remembers the last stored content hash per document id.
type contentDedupe struct {
	mu  sync.Mutex
	lru *lru.Cache[string, uint64]
}

func newContentDedupe(size int) *contentDedupe {
	if size <= 0 {
		size = 4096
	}
	c, _ := lru.New[string, uint64](size)
	return &contentDedupe{lru: c}
}

// seen reports whether id was last stored with content hash h.
func (d *contentDedupe) seen(id string, h uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	last, ok := d.lru.Get(id)
	return ok && last == h
}

func (d *contentDedupe) remember(id string, h uint64) {
	d.mu.Lock()
	d.lru.Add(id, h)
	d.mu.Unlock()
}
